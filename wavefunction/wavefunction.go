// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavefunction

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Term is one (determinant, coefficient) pair in a Wavefunction.
type Term struct {
	Det  *Det
	Coef float64
}

// Wavefunction is an ordered list of (det, coef) terms. The index of a
// term is stable for a given snapshot; it only changes across a
// SortByCoefs call.
type Wavefunction struct {
	terms []Term
}

// New returns an empty Wavefunction.
func New() *Wavefunction {
	return &Wavefunction{}
}

// Size returns the number of terms.
func (w *Wavefunction) Size() int {
	return len(w.terms)
}

// AppendTerm appends a new (det, coef) term.
func (w *Wavefunction) AppendTerm(det *Det, coef float64) {
	w.terms = append(w.terms, Term{Det: det, Coef: coef})
}

// Terms returns the underlying term slice. Callers must not retain it
// across a mutating call (AppendTerm, SetCoefs, SortByCoefs).
func (w *Wavefunction) Terms() []Term {
	return w.terms
}

// Dets returns the determinant of every term, in term order.
func (w *Wavefunction) Dets() []*Det {
	dets := make([]*Det, len(w.terms))
	for i, t := range w.terms {
		dets[i] = t.Det
	}
	return dets
}

// Coefs returns the coefficient of every term, in term order.
func (w *Wavefunction) Coefs() []float64 {
	coefs := make([]float64, len(w.terms))
	for i, t := range w.terms {
		coefs[i] = t.Coef
	}
	return coefs
}

// SetCoefs bulk-overwrites all coefficients; len(v) must equal Size().
func (w *Wavefunction) SetCoefs(v []float64) {
	if len(v) != len(w.terms) {
		chk.Panic("wavefunction: SetCoefs size mismatch: got %d, want %d", len(v), len(w.terms))
	}
	for i := range w.terms {
		w.terms[i].Coef = v[i]
	}
}

// SortByCoefs stably permutes the terms by |coef| descending, breaking
// ties by encoded-det key so the ordering is fully deterministic across
// workers that started from identical state.
func (w *Wavefunction) SortByCoefs() {
	type keyed struct {
		term Term
		code Code
	}
	ks := make([]keyed, len(w.terms))
	for i, t := range w.terms {
		ks[i] = keyed{term: t, code: t.Det.Encode()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		ci, cj := math.Abs(ks[i].term.Coef), math.Abs(ks[j].term.Coef)
		if ci != cj {
			return ci > cj
		}
		if ks[i].code.up != ks[j].code.up {
			return ks[i].code.up < ks[j].code.up
		}
		return ks[i].code.dn < ks[j].code.dn
	})
	for i, k := range ks {
		w.terms[i] = k.term
	}
}
