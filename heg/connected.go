// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heg

import "github.com/jl2922/hci-17b/wavefunction"

// orbitalPair is one candidate (p,q) electron pair to excite from, in the
// combined (up,dn) orbital space.
type orbitalPair struct {
	P, Q uint16
}

// pqPairs enumerates every same-spin-up, same-spin-down and opposite-spin
// electron pair occupied in det, in the combined orbital numbering where
// indices below dnOffset address up and the rest address dn.
func pqPairs(det *wavefunction.Det, dnOffset uint16) []orbitalPair {
	occUp := det.Up.ElecOrbs()
	occDn := det.Dn.ElecOrbs()

	var pairs []orbitalPair
	for i := 0; i < len(occUp); i++ {
		for j := i + 1; j < len(occUp); j++ {
			pairs = append(pairs, orbitalPair{occUp[i], occUp[j]})
		}
	}
	for i := 0; i < len(occDn); i++ {
		for j := i + 1; j < len(occDn); j++ {
			pairs = append(pairs, orbitalPair{occDn[i] + dnOffset, occDn[j] + dnOffset})
		}
	}
	for i := 0; i < len(occUp); i++ {
		for j := 0; j < len(occDn); j++ {
			pairs = append(pairs, orbitalPair{occUp[i], occDn[j] + dnOffset})
		}
	}
	return pairs
}

// ConnectedDets returns det followed by every determinant reachable from
// it by a double excitation whose matrix element magnitude is potentially
// at least eps, per the heat-bath criterion: the per-(p,q) excitation
// list is sorted non-increasing by |H|, so iteration can stop at the
// first sub-threshold entry.
func (q *Queue) ConnectedDets(det *wavefunction.Det, eps float64) []*wavefunction.Det {
	result := []*wavefunction.Det{det}
	if q.MaxAbsH < eps {
		return result
	}

	dnOffset := uint16(q.grid.NumPoints())
	points := q.grid.Points()

	for _, pair := range pqPairs(det, dnOffset) {
		p, qOrig := pair.P, pair.Q
		pp, qq := p, qOrig

		swapped := false
		switch {
		case p >= dnOffset && qOrig >= dnOffset:
			pp -= dnOffset
			qq -= dnOffset
		case p < dnOffset && qOrig >= dnOffset && p > qOrig-dnOffset:
			pp = qOrig - dnOffset
			qq = p + dnOffset
			swapped = true
		}

		sameSpin := pp < dnOffset && qq < dnOffset
		qsOffset := uint16(0)
		var items []Entry
		if sameSpin {
			diffPq := points[qq].Sub(points[pp])
			items = q.SameSpin[diffPq]
		} else {
			items = q.OppositeSpin
			qsOffset = dnOffset
		}

		for _, item := range items {
			if item.AbsH < eps {
				break
			}
			rIdx, ok := q.grid.IndexOf(item.DiffPr.Add(points[pp]))
			if !ok {
				continue
			}
			r := uint16(rIdx)
			sIdx, ok := q.grid.IndexOf(points[pp].Add(points[qq-qsOffset]).Sub(points[r]))
			if !ok {
				continue
			}
			s := uint16(sIdx)
			if sameSpin && s < r {
				continue
			}
			s += qsOffset

			switch {
			case p >= dnOffset && qOrig >= dnOffset:
				r += dnOffset
				s += dnOffset
			case swapped:
				r, s = s-dnOffset, r+dnOffset
			}

			if det.GetOrb(r, dnOffset) || det.GetOrb(s, dnOffset) {
				continue
			}

			newDet := det.Clone()
			newDet.SetOrb(p, dnOffset, false)
			newDet.SetOrb(qOrig, dnOffset, false)
			newDet.SetOrb(r, dnOffset, true)
			newDet.SetOrb(s, dnOffset, true)
			result = append(result, newDet)
		}
	}

	return result
}
