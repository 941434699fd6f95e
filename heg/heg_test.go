// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heg

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jl2922/hci-17b/wavefunction"
)

func Test_hamiltonian01(tst *testing.T) {

	chk.PrintTitle("hamiltonian01: H is symmetric across several determinant pairs")

	sys := NewSystem(2.0, 1.0, 2, 2)
	hf := sys.HFDet()

	// collect a handful of determinants connected to HF at a generous eps
	connected := sys.ConnectedDets(hf, 1.0e-6)
	if len(connected) < 2 {
		tst.Errorf("expected HF to have at least one excitation at this cutoff, got %d dets", len(connected))
		return
	}

	for _, detJ := range connected[1:] {
		hij := sys.Elem(hf, detJ)
		hji := sys.Elem(detJ, hf)
		chk.Float64(tst, "H_IJ == H_JI", 1.0e-12, hij, hji)
	}
}

func Test_hamiltonian02(tst *testing.T) {

	chk.PrintTitle("hamiltonian02: diagonal element is real and finite")

	sys := NewSystem(2.0, 1.0, 2, 2)
	hf := sys.HFDet()
	e := sys.Elem(hf, hf)
	if math.IsNaN(e) || math.IsInf(e, 0) {
		tst.Errorf("HF diagonal energy is not finite: %v", e)
	}
}

func Test_queue01(tst *testing.T) {

	chk.PrintTitle("queue01: per-bucket entries are sorted by |H| descending")

	sys := NewSystem(2.0, 1.0, 2, 2)
	for diffPq, items := range sys.Queue.SameSpin {
		for i := 1; i < len(items); i++ {
			if items[i-1].AbsH < items[i].AbsH {
				tst.Errorf("same-spin bucket %v not sorted at index %d: %v < %v", diffPq, i, items[i-1].AbsH, items[i].AbsH)
			}
		}
	}
	for i := 1; i < len(sys.Queue.OppositeSpin); i++ {
		if sys.Queue.OppositeSpin[i-1].AbsH < sys.Queue.OppositeSpin[i].AbsH {
			tst.Errorf("opposite-spin queue not sorted at index %d", i)
		}
	}
}

func Test_queue02(tst *testing.T) {

	chk.PrintTitle("queue02: MaxAbsH bounds every bucket's first entry")

	sys := NewSystem(2.0, 1.0, 2, 2)
	for diffPq, items := range sys.Queue.SameSpin {
		if len(items) == 0 {
			continue
		}
		if items[0].AbsH > sys.Queue.MaxAbsH+1e-12 {
			tst.Errorf("bucket %v head %v exceeds MaxAbsH %v", diffPq, items[0].AbsH, sys.Queue.MaxAbsH)
		}
	}
}

func Test_connected01(tst *testing.T) {

	chk.PrintTitle("connected01: ConnectedDets always includes det itself first")

	sys := NewSystem(2.0, 1.0, 2, 2)
	hf := sys.HFDet()
	connected := sys.ConnectedDets(hf, 1.0e-3)
	if !connected[0].Equal(hf) {
		tst.Errorf("first entry of ConnectedDets must be det itself")
	}
}

func Test_connected02(tst *testing.T) {

	chk.PrintTitle("connected02: raising eps never grows the connected set")

	sys := NewSystem(2.0, 1.0, 2, 2)
	hf := sys.HFDet()
	loose := sys.ConnectedDets(hf, 1.0e-6)
	tight := sys.ConnectedDets(hf, 1.0e-2)
	if len(tight) > len(loose) {
		tst.Errorf("tighter eps produced more connections: %d > %d", len(tight), len(loose))
	}
}

func Test_connected03(tst *testing.T) {

	chk.PrintTitle("connected03: every connected det differs from the seed by exactly two electrons per spin channel pair")

	sys := NewSystem(2.0, 1.0, 2, 2)
	hf := sys.HFDet()
	connected := sys.ConnectedDets(hf, 1.0e-6)
	for _, d := range connected[1:] {
		eor := wavefunction.NewDet()
		eor.FromEOR(hf, d)
		if eor.Up.NElecs()+eor.Dn.NElecs() != 4 {
			tst.Errorf("connected det differs from seed by %d orbitals, want 4", eor.Up.NElecs()+eor.Dn.NElecs())
		}
	}
}
