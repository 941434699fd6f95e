// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heg

import (
	"math"
	"sort"

	"github.com/jl2922/hci-17b/kpoint"
)

// machineEps is the smallest double such that 1.0+eps > 1.0, matching the
// DBL_EPSILON cutoff used by the original source to drop negligible queue
// entries.
const machineEps = 2.220446049250313e-16

// Entry is one heat-bath excitation candidate: the momentum transfer Δpr
// together with the magnitude of the matrix element it produces.
type Entry struct {
	DiffPr kpoint.Point
	AbsH   float64
}

// Queue is the per-momentum-transfer sorted catalogue of candidate double
// excitations, built once per (KPointGrid, rcut_var, r_s) setting.
type Queue struct {
	grid         *kpoint.Grid
	hUnit        float64
	SameSpin     map[kpoint.Point][]Entry
	OppositeSpin []Entry
	MaxAbsH      float64
}

// NewQueue builds the same-spin and opposite-spin excitation queues for
// the given grid and H_unit, gated by the variational cutoff rcut (used
// only to bound the same-spin Δsr search, independent of the grid's own
// cutoff so the queue can be reused across rcut_var settings sharing a
// grid in principle; in practice callers rebuild both together).
func NewQueue(grid *kpoint.Grid, hUnit, rcut float64) *Queue {
	q := &Queue{
		grid:     grid,
		hUnit:    hUnit,
		SameSpin: make(map[kpoint.Point][]Entry),
	}
	q.buildSameSpin(rcut)
	q.buildOppositeSpin()
	return q
}

func (q *Queue) buildSameSpin(rcut float64) {
	diffs := q.grid.Differences()
	for _, diffPq := range diffs {
		for _, diffPr := range diffs {
			diffSr := diffPr.Add(diffPr).Sub(diffPq)
			if diffSr.IsZero() || float64(diffSr.SquaredNorm()) > (rcut*2)*(rcut*2) {
				continue
			}
			diffPs := diffPr.Sub(diffSr)
			if diffPs.IsZero() {
				continue
			}
			if diffPr.SquaredNorm() == diffPs.SquaredNorm() {
				continue
			}
			absH := math.Abs(1.0/float64(diffPr.SquaredNorm()) - 1.0/float64(diffPs.SquaredNorm()))
			if absH < machineEps {
				continue
			}
			q.SameSpin[diffPq] = append(q.SameSpin[diffPq], Entry{DiffPr: diffPr, AbsH: absH * q.hUnit})
		}
	}
	for k := range q.SameSpin {
		items := q.SameSpin[k]
		sort.SliceStable(items, func(i, j int) bool { return items[i].AbsH > items[j].AbsH })
		q.SameSpin[k] = items
		if items[0].AbsH > q.MaxAbsH {
			q.MaxAbsH = items[0].AbsH
		}
	}
}

func (q *Queue) buildOppositeSpin() {
	diffs := q.grid.Differences()
	for _, diffPr := range diffs {
		// diffPr == 0 yields +Inf here, exactly as in the original source;
		// such entries always sort first but are rejected downstream in
		// ConnectedDets because the implied r orbital is already occupied.
		norm := diffPr.SquaredNorm()
		absH := 1.0 / float64(norm)
		if absH < machineEps {
			continue
		}
		q.OppositeSpin = append(q.OppositeSpin, Entry{DiffPr: diffPr, AbsH: absH * q.hUnit})
	}
	sort.SliceStable(q.OppositeSpin, func(i, j int) bool { return q.OppositeSpin[i].AbsH > q.OppositeSpin[j].AbsH })
	if len(q.OppositeSpin) > 0 && q.OppositeSpin[0].AbsH > q.MaxAbsH {
		q.MaxAbsH = q.OppositeSpin[0].AbsH
	}
}
