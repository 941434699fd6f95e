// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jl2922/hci-17b/davidson"
	"github.com/jl2922/hci-17b/parallel"
	"github.com/jl2922/hci-17b/timing"
	"github.com/jl2922/hci-17b/wavefunction"
)

// convergenceThreshold is the ΔE below which the outer loop considers the
// variational energy converged.
const convergenceThreshold = 1.0e-6

// Variation runs the outer expansion/diagonalize/update loop for a fixed
// plane-wave basis (rcut_var): it asks System for new connected
// determinants per existing term, merges them into the Wavefunction,
// builds the diagonal, and hands (diagonal, apply) to Davidson.
type Variation struct {
	System System
	Env    parallel.Env
	Clock  *timing.Clock
	NUp    int
	NDn    int
	Wf     *wavefunction.Wavefunction

	EnergyHF  float64
	EnergyVar float64

	varDetsIndex     map[wavefunction.Code]int
	newDetsSpawnCoef map[wavefunction.Code]float64
}

// NewVariation returns a fresh driver for one plane-wave basis, with an
// empty Wavefunction (the Hartree-Fock determinant is seeded on the first
// Run call).
func NewVariation(sys System, nUp, nDn int, env parallel.Env, clock *timing.Clock) *Variation {
	return &Variation{
		System: sys,
		Env:    env,
		Clock:  clock,
		NUp:    nUp,
		NDn:    nDn,
		Wf:     wavefunction.New(),
	}
}

func (v *Variation) generateHFDet() *wavefunction.Det {
	det := wavefunction.NewDet()
	for i := 0; i < v.NUp; i++ {
		det.Up.SetOrb(uint16(i), true)
	}
	for i := 0; i < v.NDn; i++ {
		det.Dn.SetOrb(uint16(i), true)
	}
	return det
}

// Run drives the variational loop for one (eps_var, eps_var_ham_old,
// eps_var_ham_new) triple until |ΔE| falls below convergenceThreshold or
// Davidson exhausts its iteration budget (end_variation), whichever comes
// first, and returns the converged (or best available) energy.
func (v *Variation) Run(epsVar, epsVarHamOld, epsVarHamNew float64) float64 {
	if v.Wf.Size() == 0 {
		hf := v.generateHFDet()
		v.Wf.AppendTerm(hf, 1.0)
		v.EnergyHF = v.System.Elem(hf, hf)
		v.EnergyVar = v.EnergyHF
		if v.Env.IsMaster() {
			io.Pf("HF energy: %#.15g Ha\n", v.EnergyHF)
		}
	}

	energyVarNew := 0.0
	endVariation := false
	iteration := 0

	for math.Abs(v.EnergyVar-energyVarNew) > convergenceThreshold && !endVariation {
		v.Clock.Start(io.Sf("Variation Iteration: %d", iteration))

		v.rebuildVarDetsIndex()
		v.buildNewDetsSpawnCoef(epsVar)
		numNew := len(v.newDetsSpawnCoef)
		numTotal := v.Wf.Size() + numNew

		if v.Env.IsMaster() {
			io.Pf("Number of new / total dets: %d / %d\n", numNew, numTotal)
		}

		v.Clock.Checkpoint("found connections")

		v.EnergyVar = energyVarNew
		v.appendNewDets()

		maxIterations := 10
		if numNew > 0 {
			maxIterations = 5
		}
		var converged bool
		energyVarNew, converged = v.diagonalize(epsVarHamOld, epsVarHamNew, maxIterations)
		if !converged {
			endVariation = true
		}

		if v.Env.IsMaster() {
			io.Pf("Variation energy: %#.15g Ha\n", energyVarNew)
		}

		iteration++
		v.Clock.End()
	}

	v.EnergyVar = energyVarNew
	if v.Env.IsMaster() {
		io.Pf("Final variation energy: %#.15g Ha\n", v.EnergyVar)
	}
	return v.EnergyVar
}

// rebuildVarDetsIndex recomputes the encoded-det -> position map from the
// current Wavefunction. It is rebuilt at the top of every variational
// iteration so that it always mirrors the Wavefunction's current term
// order, which is load-bearing for cross-worker agreement during
// DistributedHamApply.
func (v *Variation) rebuildVarDetsIndex() {
	terms := v.Wf.Terms()
	v.varDetsIndex = make(map[wavefunction.Code]int, len(terms))
	for i, t := range terms {
		v.varDetsIndex[t.Det.Encode()] = i
	}
}

// buildNewDetsSpawnCoef discovers determinants connected to the current
// Wavefunction's terms that are not already present, recording the
// spawning term's |coef| for each newly discovered determinant.
func (v *Variation) buildNewDetsSpawnCoef(epsVar float64) {
	v.newDetsSpawnCoef = make(map[wavefunction.Code]float64)
	for _, term := range v.Wf.Terms() {
		absCoef := math.Abs(term.Coef)
		connected := v.System.ConnectedDets(term.Det, safeDiv(epsVar, absCoef))
		for _, d := range connected {
			code := d.Encode()
			if _, exists := v.varDetsIndex[code]; exists {
				continue
			}
			if _, exists := v.newDetsSpawnCoef[code]; exists {
				continue
			}
			v.newDetsSpawnCoef[code] = absCoef
		}
	}
}

// appendNewDets appends every determinant in newDetsSpawnCoef to the
// Wavefunction with coefficient 0, extending varDetsIndex. Codes are
// sorted first so every worker assigns the same row index to the same
// determinant: Go's map iteration order is randomised per-process, and
// DistributedHamApply's row-sharded res[i]/res[j] writes must agree on
// row numbering across workers before ReduceSum.
func (v *Variation) appendNewDets() {
	codes := make([]wavefunction.Code, 0, len(v.newDetsSpawnCoef))
	for code := range v.newDetsSpawnCoef {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Less(codes[j]) })

	for _, code := range codes {
		det := wavefunction.Decode(code)
		v.varDetsIndex[code] = v.Wf.Size()
		v.Wf.AppendTerm(det, 0.0)
	}
}

// diagonalize builds the diagonal and hands (diagonal, apply) to
// Davidson, then replaces the Wavefunction's coefficients with the lowest
// eigenvector sorted by |coef| descending.
func (v *Variation) diagonalize(epsOld, epsNew float64, maxIterations int) (energy float64, converged bool) {
	n := v.Wf.Size()
	dets := v.Wf.Dets()
	coefs := v.Wf.Coefs()
	nOld := n - len(v.newDetsSpawnCoef)

	diagonal := make([]float64, n)
	rowEps := make([]float64, n)
	for i, det := range dets {
		diagonal[i] = v.System.Elem(det, det)
		if i < nOld {
			rowEps[i] = safeDiv(epsOld, math.Abs(coefs[i]))
		} else {
			rowEps[i] = safeDiv(epsNew, v.newDetsSpawnCoef[det.Encode()])
		}
	}

	varDetsIndex := v.varDetsIndex
	applyFn := func(vec []float64) []float64 {
		return v.applyHamiltonian(vec, dets, rowEps, varDetsIndex)
	}

	v.Clock.Start("Diagonalization")
	dav := davidson.New(diagonal, applyFn, n)
	if v.Env.IsMaster() {
		dav.SetVerbose(true)
	}
	_, converged = dav.Diagonalize(coefs, maxIterations)
	v.Clock.End()

	v.Wf.SetCoefs(dav.LowestEigenvector())
	v.Wf.SortByCoefs()
	return dav.LowestEigenvalue(), converged
}

// applyHamiltonian is the DistributedHamApply operator: each worker
// handles rows i with i mod Size() == Rank(), visiting each unordered
// pair {i,j} once and writing both res[i] and res[j], then all-reducing
// the partial sums across workers.
func (v *Variation) applyHamiltonian(vec []float64, dets []*wavefunction.Det, rowEps []float64, varDetsIndex map[wavefunction.Code]int) []float64 {
	n := len(vec)
	if n != v.Wf.Size() {
		chk.Panic("solver: apply size mismatch: got %d, want %d", n, v.Wf.Size())
	}

	res := make([]float64, n)
	rank := v.Env.Rank()
	workers := v.Env.Size()

	for i := rank; i < n; i += workers {
		detI := dets[i]
		for _, detJ := range v.System.ConnectedDets(detI, rowEps[i]) {
			j, ok := varDetsIndex[detJ.Encode()]
			if !ok || j < i {
				continue
			}
			hij := v.System.Elem(detI, detJ)
			res[i] += hij * vec[j]
			if j != i {
				res[j] += hij * vec[i]
			}
		}
	}

	return v.Env.ReduceSum(res)
}

// safeDiv divides eps by |c|, falling back to +Inf when the coefficient
// has collapsed to zero, a threshold that admits no connection beyond the
// determinant itself; this matches the original source's
// division-by-spawning-coefficient with no explicit zero guard.
func safeDiv(eps, absCoef float64) float64 {
	if absCoef == 0 {
		return math.Inf(1)
	}
	return eps / absCoef
}
