// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package davidson

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// denseApply returns an ApplyFunc for the given dense symmetric matrix,
// stored row-major.
func denseApply(n int, a []float64) ApplyFunc {
	return func(v []float64) []float64 {
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += a[i*n+j] * v[j]
			}
			out[i] = sum
		}
		return out
	}
}

func Test_davidson01(tst *testing.T) {

	chk.PrintTitle("davidson01: lowest eigenpair of a small diagonal-dominant matrix")

	// symmetric 4x4 matrix with a well-separated lowest eigenvalue near -2
	n := 4
	a := []float64{
		-2.0, 0.1, 0.0, 0.0,
		0.1, 1.0, 0.2, 0.0,
		0.0, 0.2, 3.0, 0.1,
		0.0, 0.0, 0.1, 5.0,
	}
	diagonal := []float64{-2.0, 1.0, 3.0, 5.0}

	s := New(diagonal, denseApply(n, a), n)
	initial := []float64{1, 0, 0, 0}
	_, converged := s.Diagonalize(initial, 50)
	if !converged {
		tst.Errorf("davidson did not converge within budget")
		return
	}

	// the off-diagonal coupling is weak, so the lowest eigenvalue stays
	// close to the (-2.0) diagonal entry it is adiabatically connected to
	theta := s.LowestEigenvalue()
	if theta > -1.9 || theta < -2.1 {
		tst.Errorf("lowest eigenvalue %v far from expected neighbourhood of -2.0", theta)
	}

	apply := denseApply(n, a)
	hx := apply(s.LowestEigenvector())
	var resNorm float64
	for i, x := range s.LowestEigenvector() {
		r := hx[i] - theta*x
		resNorm += r * r
	}
	if resNorm > 1.0e-12 {
		tst.Errorf("residual too large: %v", resNorm)
	}
}

func Test_davidson02(tst *testing.T) {

	chk.PrintTitle("davidson02: residual at the returned Ritz pair is small")

	n := 3
	a := []float64{
		4.0, 1.0, 0.0,
		1.0, 3.0, 1.0,
		0.0, 1.0, 2.0,
	}
	diagonal := []float64{4.0, 3.0, 2.0}

	s := New(diagonal, denseApply(n, a), n)
	initial := []float64{0, 0, 1}
	_, converged := s.Diagonalize(initial, 50)
	if !converged {
		tst.Errorf("davidson did not converge within budget")
		return
	}

	apply := denseApply(n, a)
	hx := apply(s.LowestEigenvector())
	theta := s.LowestEigenvalue()
	var resNorm float64
	for i, x := range s.LowestEigenvector() {
		r := hx[i] - theta*x
		resNorm += r * r
	}
	if resNorm > 1.0e-12 {
		tst.Errorf("residual too large: %v", resNorm)
	}
}
