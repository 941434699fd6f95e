// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kpoint enumerates the plane-wave momentum basis used by the HEG
// solver: integer lattice points within a momentum cutoff, their index
// look-up table, and the set of pairwise differences used to key the HCI
// excitation queue.
package kpoint

import "sort"

// Point is an integer 3D momentum vector labelling a plane-wave orbital.
// Components are small enough to fit in an 8-bit signed integer for any
// cutoff the solver is run with.
type Point struct {
	X, Y, Z int8
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y, -p.Z}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

// SquaredNorm returns kx²+ky²+kz² in lattice units.
func (p Point) SquaredNorm() int {
	return int(p.X)*int(p.X) + int(p.Y)*int(p.Y) + int(p.Z)*int(p.Z)
}

// Scale returns p scaled by the momentum unit k_unit, as a Cartesian vector.
func (p Point) Scale(kUnit float64) [3]float64 {
	return [3]float64{float64(p.X) * kUnit, float64(p.Y) * kUnit, float64(p.Z) * kUnit}
}

// SquaredNormScaled returns ‖p·kUnit‖², used by the Hamiltonian's kinetic
// and exchange sums.
func (p Point) SquaredNormScaled(kUnit float64) float64 {
	v := p.Scale(kUnit)
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Grid enumerates every integer lattice point within a momentum cutoff,
// in deterministic ascending (norm², x, y, z) order, along with an index
// look-up table and the set of pairwise differences.
type Grid struct {
	rcut        float64
	points      []Point
	index       map[Point]int
	differences []Point
}

// NewGrid builds the grid of plane-wave orbitals with kx²+ky²+kz² ≤ rcut².
func NewGrid(rcut float64) *Grid {
	g := &Grid{rcut: rcut}
	g.generatePoints()
	g.buildIndex()
	g.generateDifferences()
	return g
}

// generatePoints enumerates all integer triples within the cutoff sphere
// and sorts them deterministically by (norm², x, y, z).
func (g *Grid) generatePoints() {
	bound := int(g.rcut)
	rcutSq := g.rcut * g.rcut
	var pts []Point
	for i := -bound; i <= bound; i++ {
		for j := -bound; j <= bound; j++ {
			for k := -bound; k <= bound; k++ {
				norm := i*i + j*j + k*k
				if float64(norm) <= rcutSq {
					pts = append(pts, Point{int8(i), int8(j), int8(k)})
				}
			}
		}
	}
	sort.Slice(pts, func(a, b int) bool {
		na, nb := pts[a].SquaredNorm(), pts[b].SquaredNorm()
		if na != nb {
			return na < nb
		}
		if pts[a].X != pts[b].X {
			return pts[a].X < pts[b].X
		}
		if pts[a].Y != pts[b].Y {
			return pts[a].Y < pts[b].Y
		}
		return pts[a].Z < pts[b].Z
	})
	g.points = pts
}

func (g *Grid) buildIndex() {
	g.index = make(map[Point]int, len(g.points))
	for i, p := range g.points {
		g.index[p] = i
	}
}

// generateDifferences builds the unique set {p-q : p,q in points}, which is
// closed under negation by construction.
func (g *Grid) generateDifferences() {
	seen := make(map[Point]bool)
	var diffs []Point
	for _, p := range g.points {
		for _, q := range g.points {
			d := p.Sub(q)
			if !seen[d] {
				seen[d] = true
				diffs = append(diffs, d)
			}
		}
	}
	sort.Slice(diffs, func(a, b int) bool {
		na, nb := diffs[a].SquaredNorm(), diffs[b].SquaredNorm()
		if na != nb {
			return na < nb
		}
		if diffs[a].X != diffs[b].X {
			return diffs[a].X < diffs[b].X
		}
		if diffs[a].Y != diffs[b].Y {
			return diffs[a].Y < diffs[b].Y
		}
		return diffs[a].Z < diffs[b].Z
	})
	g.differences = diffs
}

// Points returns the ordered list of plane-wave orbitals.
func (g *Grid) Points() []Point {
	return g.points
}

// NumPoints returns the number of spatial orbitals, N. The single-particle
// basis including spin has size 2N.
func (g *Grid) NumPoints() int {
	return len(g.points)
}

// IndexOf returns the position of p in Points(), and whether it was found.
func (g *Grid) IndexOf(p Point) (int, bool) {
	i, ok := g.index[p]
	return i, ok
}

// Differences returns the ordered, duplicate-free set of pairwise
// differences between points in the grid.
func (g *Grid) Differences() []Point {
	return g.differences
}

// Rcut returns the cutoff the grid was constructed with.
func (g *Grid) Rcut() float64 {
	return g.rcut
}
