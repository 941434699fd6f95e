// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kpoint

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_grid01(tst *testing.T) {

	chk.PrintTitle("grid01: generation and sorting")

	g := NewGrid(2.0)
	if g.NumPoints() == 0 {
		tst.Errorf("grid must be non-empty for rcut=2.0")
		return
	}

	// origin must be first (smallest squared norm, then lexicographic)
	pts := g.Points()
	if !pts[0].IsZero() {
		tst.Errorf("first point must be the origin, got %v", pts[0])
	}

	// ascending by squared norm
	for i := 1; i < len(pts); i++ {
		if pts[i-1].SquaredNorm() > pts[i].SquaredNorm() {
			tst.Errorf("points not sorted by squared norm at index %d: %v > %v", i, pts[i-1], pts[i])
		}
	}

	// every generated point must respect the cutoff
	for _, p := range pts {
		if p.SquaredNormScaled(1) > g.Rcut()*g.Rcut()+1e-12 {
			tst.Errorf("point %v exceeds rcut=%g", p, g.Rcut())
		}
	}
}

func Test_grid02(tst *testing.T) {

	chk.PrintTitle("grid02: index lookup is consistent with Points")

	g := NewGrid(1.5)
	for i, p := range g.Points() {
		j, ok := g.IndexOf(p)
		if !ok {
			tst.Errorf("point %v (position %d) not found in index", p, i)
			continue
		}
		if j != i {
			tst.Errorf("index mismatch for %v: IndexOf=%d, position=%d", p, j, i)
		}
	}

	// a point outside the grid must not resolve
	huge := Point{X: 100, Y: 100, Z: 100}
	if _, ok := g.IndexOf(huge); ok {
		tst.Errorf("unexpectedly found far-away point %v in grid", huge)
	}
}

func Test_grid03(tst *testing.T) {

	chk.PrintTitle("grid03: differences are closed under negation")

	g := NewGrid(1.5)
	diffSet := make(map[Point]bool, len(g.Differences()))
	for _, d := range g.Differences() {
		diffSet[d] = true
	}
	for d := range diffSet {
		if !diffSet[d.Neg()] {
			tst.Errorf("difference set not symmetric: %v present but %v missing", d, d.Neg())
		}
	}
}

func Test_point01(tst *testing.T) {

	chk.PrintTitle("point01: arithmetic")

	a := Point{X: 1, Y: -2, Z: 3}
	b := Point{X: -1, Y: 4, Z: 0}

	sum := a.Add(b)
	chk.Ints(tst, "a+b", []int{int(sum.X), int(sum.Y), int(sum.Z)}, []int{0, 2, 3})

	diff := a.Sub(b)
	chk.Ints(tst, "a-b", []int{int(diff.X), int(diff.Y), int(diff.Z)}, []int{2, -6, 3})

	if !a.Sub(a).IsZero() {
		tst.Errorf("a-a should be zero")
	}

	if a.SquaredNorm() != 1+4+9 {
		tst.Errorf("squared norm of %v: got %d, want 14", a, a.SquaredNorm())
	}
}
