// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heg

import (
	"github.com/jl2922/hci-17b/kpoint"
	"github.com/jl2922/hci-17b/wavefunction"
)

// System bundles the Hamiltonian and excitation Queue for one (r_s,
// rcut_var) setting. It is the capability record the variational driver
// operates against: the two hooks a Solver needs (matrix elements and
// connected-determinant discovery), generalised from the original
// single-subclass Solver/HEGSolver hierarchy into a plain struct so the
// driver can depend on an interface instead of virtual dispatch.
type System struct {
	Grid        *kpoint.Grid
	Hamiltonian *Hamiltonian
	Queue       *Queue
}

// NewSystem builds the plane-wave grid, Hamiltonian constants and HCI
// queue for one variational momentum cutoff.
func NewSystem(rcutVar, rs float64, nUp, nDn int) *System {
	grid := kpoint.NewGrid(rcutVar)
	ham := NewHamiltonian(grid, rs, nUp, nDn)
	queue := NewQueue(grid, ham.HUnit, rcutVar)
	return &System{Grid: grid, Hamiltonian: ham, Queue: queue}
}

// Elem satisfies the solver.System capability: the HEG matrix element
// between two determinants.
func (s *System) Elem(detI, detJ *wavefunction.Det) float64 {
	return s.Hamiltonian.Elem(detI, detJ)
}

// ConnectedDets satisfies the solver.System capability: enumerate
// determinants connected to det with |H| plausibly at least eps.
func (s *System) ConnectedDets(det *wavefunction.Det, eps float64) []*wavefunction.Det {
	return s.Queue.ConnectedDets(det, eps)
}

// HFDet returns the Hartree-Fock determinant: the n_up lowest up orbitals
// and n_dn lowest dn orbitals.
func (s *System) HFDet() *wavefunction.Det {
	det := wavefunction.NewDet()
	for i := 0; i < s.Hamiltonian.NUp; i++ {
		det.Up.SetOrb(uint16(i), true)
	}
	for i := 0; i < s.Hamiltonian.NDn; i++ {
		det.Dn.SetOrb(uint16(i), true)
	}
	return det
}
