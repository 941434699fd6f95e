// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package davidson implements the iterative subspace eigensolver used to
// find the lowest eigenvalue of the large, sparse, symmetric projected
// Hamiltonian built by the variational driver. The solver is exposed only
// through its contract in the surrounding spec (construction from a
// diagonal, an apply operator and a size; diagonalize returns iterations
// consumed and exposes the lowest eigenpair) — this is a reference
// implementation against that contract, not a tuned production solver.
package davidson

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// ApplyFunc computes H·v for a vector v of the solver's dimension.
type ApplyFunc func(v []float64) []float64

// residualTol is the convergence threshold on the residual norm
// ‖H x - θ x‖, below which the lowest Ritz pair is accepted.
const residualTol = 1.0e-9

// Solver finds the lowest eigenpair of a symmetric operator given only as
// a diagonal (for preconditioning) and a matrix-vector product.
type Solver struct {
	diagonal []float64
	apply    ApplyFunc
	size     int
	verbose  bool

	lowestEigenvalue  float64
	lowestEigenvector []float64
}

// New constructs a Solver for an operator of the given size, with the
// supplied diagonal (for Davidson preconditioning) and apply operator
// (H·v).
func New(diagonal []float64, apply ApplyFunc, size int) *Solver {
	if len(diagonal) != size {
		chk.Panic("davidson: diagonal size mismatch: got %d, want %d", len(diagonal), size)
	}
	return &Solver{diagonal: diagonal, apply: apply, size: size}
}

// SetVerbose turns on per-iteration progress printing from the master.
func (s *Solver) SetVerbose(v bool) {
	s.verbose = v
}

// LowestEigenvalue returns the eigenvalue found by the last Diagonalize
// call.
func (s *Solver) LowestEigenvalue() float64 {
	return s.lowestEigenvalue
}

// LowestEigenvector returns the eigenvector found by the last Diagonalize
// call.
func (s *Solver) LowestEigenvector() []float64 {
	return s.lowestEigenvector
}

// Diagonalize runs the Davidson iteration starting from initial, for at
// most maxIterations subspace expansions. It returns the number of
// iterations consumed and whether the residual converged within budget;
// converged == false signals the caller (the variational driver) that the
// iteration budget was exhausted, which ends the outer variational loop.
func (s *Solver) Diagonalize(initial []float64, maxIterations int) (iterations int, converged bool) {
	if len(initial) != s.size {
		chk.Panic("davidson: initial vector size mismatch: got %d, want %d", len(initial), s.size)
	}

	v0 := normalize(append([]float64(nil), initial...))
	basis := [][]float64{v0}
	applied := [][]float64{s.apply(v0)}

	var theta float64
	var ritz []float64

	for iter := 0; iter < maxIterations; iter++ {
		iterations = iter + 1
		m := len(basis)

		// Build and diagonalize the m x m projected (Rayleigh-Ritz) matrix.
		proj := mat.NewSymDense(m, nil)
		for i := 0; i < m; i++ {
			for j := i; j < m; j++ {
				proj.SetSym(i, j, dot(basis[i], applied[j]))
			}
		}
		var eig mat.EigenSym
		if ok := eig.Factorize(proj, true); !ok {
			chk.Panic("davidson: subspace eigendecomposition failed")
		}
		values := eig.Values(nil)
		lowest, lowestIdx := values[0], 0
		for i, val := range values {
			if val < lowest {
				lowest, lowestIdx = val, i
			}
		}
		var vecs mat.Dense
		eig.VectorsTo(&vecs)
		y := mat.Col(nil, lowestIdx, &vecs)
		theta = lowest

		// Ritz vector x = V y and its image A x = (A V) y.
		ritz = combine(basis, y)
		aRitz := combine(applied, y)

		residual := make([]float64, s.size)
		for i := range residual {
			residual[i] = aRitz[i] - theta*ritz[i]
		}
		resNorm := norm(residual)

		if s.verbose {
			io.Pf("  Davidson iter %d: theta=%#.12g |residual|=%#.3e subspace=%d\n", iter, theta, resNorm, m)
		}

		if resNorm < residualTol {
			s.lowestEigenvalue = theta
			s.lowestEigenvector = ritz
			return iterations, true
		}

		correction := make([]float64, s.size)
		for i := range correction {
			denom := s.diagonal[i] - theta
			if math.Abs(denom) < 1.0e-12 {
				denom = math.Copysign(1.0e-12, denom)
				if denom == 0 {
					denom = 1.0e-12
				}
			}
			correction[i] = -residual[i] / denom
		}

		orthogonalizeAgainst(correction, basis)
		if norm(correction) < 1.0e-13 {
			// No new direction available; treat as converged at current Ritz pair.
			s.lowestEigenvalue = theta
			s.lowestEigenvector = ritz
			return iterations, true
		}
		correction = normalize(correction)
		basis = append(basis, correction)
		applied = append(applied, s.apply(correction))
	}

	s.lowestEigenvalue = theta
	s.lowestEigenvector = ritz
	return iterations, false
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}

func normalize(a []float64) []float64 {
	n := norm(a)
	if n < 1.0e-300 {
		return a
	}
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = v / n
	}
	return out
}

// combine returns sum_i coefs[i] * vectors[i].
func combine(vectors [][]float64, coefs []float64) []float64 {
	out := make([]float64, len(vectors[0]))
	for i, c := range coefs {
		v := vectors[i]
		for k := range out {
			out[k] += c * v[k]
		}
	}
	return out
}

// orthogonalizeAgainst removes, in place, the projection of v onto every
// vector in basis (modified Gram-Schmidt, two passes for stability).
func orthogonalizeAgainst(v []float64, basis [][]float64) {
	for pass := 0; pass < 2; pass++ {
		for _, b := range basis {
			proj := dot(v, b)
			for i := range v {
				v[i] -= proj * b[i]
			}
		}
	}
}
