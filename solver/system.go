// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the outer variational convergence loop, the
// Davidson-facing diagonalize step, and the distributed Hamiltonian
// mat-vec it drives. It depends only on the System capability below, not
// on any HEG-specific type, so a different electronic system could be
// plugged in without touching this package.
package solver

import "github.com/jl2922/hci-17b/wavefunction"

// System is the two-hook capability record every variational driver
// needs: a matrix-element routine and a connected-determinant finder.
// This generalises the original single-subclass Solver/HEGSolver
// hierarchy (virtual dispatch on two overridden methods) into a plain
// interface.
type System interface {
	// Elem returns H_IJ between two determinants.
	Elem(detI, detJ *wavefunction.Det) float64
	// ConnectedDets returns det followed by every determinant reachable
	// by a double excitation whose |H| is potentially at least eps.
	ConnectedDets(det *wavefunction.Det, eps float64) []*wavefunction.Det
}
