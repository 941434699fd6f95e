// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timing

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jl2922/hci-17b/parallel"
)

func Test_clock01(tst *testing.T) {

	chk.PrintTitle("clock01: nested start/checkpoint/end does not panic")

	c := NewClock(parallel.LocalEnv{})
	c.Start("outer")
	c.Start("inner")
	c.Checkpoint("midpoint")
	c.End()
	c.End()
}
