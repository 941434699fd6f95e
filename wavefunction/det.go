// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavefunction

import "encoding/binary"

// Det is a Slater determinant: a pair of occupied-orbital sets, one per
// spin channel.
type Det struct {
	Up *SpinDet
	Dn *SpinDet
}

// NewDet returns an empty determinant.
func NewDet() *Det {
	return &Det{Up: NewSpinDet(), Dn: NewSpinDet()}
}

// GetOrb returns occupancy of orbital i in the combined (up,dn) orbital
// space, where indices below dnOffset address Up and the rest address Dn.
func (d *Det) GetOrb(i, dnOffset uint16) bool {
	if i < dnOffset {
		return d.Up.GetOrb(i)
	}
	return d.Dn.GetOrb(i - dnOffset)
}

// SetOrb sets or clears occupancy of orbital i in the combined space.
func (d *Det) SetOrb(i, dnOffset uint16, occ bool) {
	if i < dnOffset {
		d.Up.SetOrb(i, occ)
	} else {
		d.Dn.SetOrb(i-dnOffset, occ)
	}
}

// FromEOR sets this Det to the per-spin symmetric difference of lhs, rhs.
func (d *Det) FromEOR(lhs, rhs *Det) {
	d.Up.FromEOR(lhs.Up, rhs.Up)
	d.Dn.FromEOR(lhs.Dn, rhs.Dn)
}

// Clone returns a deep copy of the determinant.
func (d *Det) Clone() *Det {
	return &Det{Up: d.Up.Clone(), Dn: d.Dn.Clone()}
}

// Equal reports whether two determinants occupy the same orbitals.
func (d *Det) Equal(o *Det) bool {
	return d.Up.Equal(o.Up) && d.Dn.Equal(o.Dn)
}

// Code is the hashable key produced by Det.Encode, suitable as a Go map
// key: unlike the boost::hash specialisations of the original C++, Go map
// keys need only be comparable, so a pair of packed byte strings suffices.
type Code struct {
	up, dn string
}

func packUint16(vals []uint16) string {
	buf := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	return string(buf)
}

func unpackUint16(s string) []uint16 {
	n := len(s) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint16([]byte(s[2*i : 2*i+2]))
	}
	return out
}

// Encode returns a hashable, pure function of the determinant's occupied
// orbitals, using the VARIABLE SpinDet encoding scheme.
func (d *Det) Encode() Code {
	return Code{
		up: packUint16(d.Up.EncodeVariable()),
		dn: packUint16(d.Dn.EncodeVariable()),
	}
}

// Decode restores a determinant from a Code produced by Encode.
func Decode(c Code) *Det {
	d := NewDet()
	d.Up.DecodeVariable(unpackUint16(c.up))
	d.Dn.DecodeVariable(unpackUint16(c.dn))
	return d
}

// Less orders two Codes by their packed bytes, lowest spin channel first.
// It is a pure function of Encode's output, so every worker sorting a set
// of Codes by Less agrees on the same order — callers that must assign
// deterministic row indices to a set of determinants (e.g. the variational
// driver appending newly discovered determinants) sort by this instead of
// relying on Go's randomised map iteration order.
func (c Code) Less(o Code) bool {
	if c.up != o.up {
		return c.up < o.up
	}
	return c.dn < o.dn
}
