// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package heg implements the momentum-conserving Slater-Condon matrix
// elements and the sorted heat-bath excitation queue for the
// three-dimensional homogeneous electron gas.
package heg

import (
	"math"
	"sort"

	"github.com/jl2922/hci-17b/kpoint"
	"github.com/jl2922/hci-17b/wavefunction"
)

// Hamiltonian computes HEG matrix elements under a fixed plane-wave grid
// and a fixed pair of unit constants (k_unit, H_unit), both derived once
// per r_s and electron count.
type Hamiltonian struct {
	Grid  *kpoint.Grid
	KUnit float64
	HUnit float64
	NUp   int
	NDn   int
}

// NewHamiltonian derives k_unit and H_unit from the Wigner-Seitz radius
// r_s and the electron counts, per the HEG conventions:
//
//	density = 3 / (4π r_s³)
//	L       = ((n_up+n_dn) / density)^(1/3)
//	k_unit  = 2π / L
//	H_unit  = 1 / (π L)
func NewHamiltonian(grid *kpoint.Grid, rs float64, nUp, nDn int) *Hamiltonian {
	density := 3.0 / (4.0 * math.Pi * rs * rs * rs)
	cellLength := math.Cbrt(float64(nUp+nDn) / density)
	return &Hamiltonian{
		Grid:  grid,
		KUnit: 2 * math.Pi / cellLength,
		HUnit: 1.0 / (math.Pi * cellLength),
		NUp:   nUp,
		NDn:   nDn,
	}
}

// Elem returns H_IJ for determinants I and J under the HEG Slater-Condon
// rules: a diagonal kinetic+exchange sum when I==J, and a momentum- and
// spin-gated two-electron matrix element (with fermionic sign) otherwise.
func (h *Hamiltonian) Elem(detI, detJ *wavefunction.Det) float64 {
	if detI.Equal(detJ) {
		return h.diagonal(detI)
	}
	return h.offDiagonal(detI, detJ)
}

func (h *Hamiltonian) diagonal(det *wavefunction.Det) float64 {
	var H float64
	occUp := det.Up.ElecOrbs()
	occDn := det.Dn.ElecOrbs()
	points := h.Grid.Points()

	for _, p := range occUp {
		H += points[p].SquaredNormScaled(h.KUnit) * 0.5
	}
	for _, p := range occDn {
		H += points[p].SquaredNormScaled(h.KUnit) * 0.5
	}

	for i := 0; i < len(occUp); i++ {
		for j := i + 1; j < len(occUp); j++ {
			diff := points[occUp[i]].Sub(points[occUp[j]])
			H -= h.HUnit / diff.SquaredNormScaled(1)
		}
	}
	for i := 0; i < len(occDn); i++ {
		for j := i + 1; j < len(occDn); j++ {
			diff := points[occDn[i]].Sub(points[occDn[j]])
			H -= h.HUnit / diff.SquaredNormScaled(1)
		}
	}
	return H
}

func (h *Hamiltonian) offDiagonal(detI, detJ *wavefunction.Det) float64 {
	eor := wavefunction.NewDet()
	eor.FromEOR(detI, detJ)
	nEorUp := eor.Up.NElecs()
	nEorDn := eor.Dn.NElecs()
	if nEorUp+nEorDn != 4 {
		return 0
	}

	points := h.Grid.Points()
	var kChange kpoint.Point
	var orbP, orbR, orbS uint16
	pSet, rSet := false, false

	walk := func(spinDet *wavefunction.SpinDet, eorOrbs []uint16) {
		for _, orb := range eorOrbs {
			if spinDet.GetOrb(orb) {
				kChange = kChange.Sub(points[orb])
				if !pSet {
					orbP = orb
					pSet = true
				}
			} else {
				kChange = kChange.Add(points[orb])
				if !rSet {
					orbR = orb
					rSet = true
				} else {
					orbS = orb
				}
			}
		}
	}
	walk(detI.Up, eor.Up.ElecOrbs())
	walk(detI.Dn, eor.Dn.ElecOrbs())

	if !kChange.IsZero() {
		return 0
	}

	H := h.HUnit / points[orbP].Sub(points[orbR]).SquaredNormScaled(1)
	sameSpin := nEorUp != 2
	if sameSpin {
		H -= h.HUnit / points[orbP].Sub(points[orbS]).SquaredNormScaled(1)
	}

	gamma := gammaExp(detI.Up, eor.Up.ElecOrbs()) + gammaExp(detI.Dn, eor.Dn.ElecOrbs()) +
		gammaExp(detJ.Up, eor.Up.ElecOrbs()) + gammaExp(detJ.Dn, eor.Dn.ElecOrbs())
	if gamma%2 == 1 {
		H = -H
	}
	return H
}

// gammaExp sums, for every orbital in eor that is occupied in spinDet, the
// insertion position of that orbital in spinDet's occupied list. The
// parity of the total is the fermionic sign exponent for this spin
// channel's contribution to the excitation.
func gammaExp(spinDet *wavefunction.SpinDet, eor []uint16) int {
	occ := spinDet.ElecOrbs()
	exp := 0
	for _, orb := range eor {
		if !spinDet.GetOrb(orb) {
			continue
		}
		pos := sort.Search(len(occ), func(i int) bool { return occ[i] >= orb })
		exp += pos
	}
	return exp
}
