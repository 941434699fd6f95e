// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parallel

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_localenv01(tst *testing.T) {

	chk.PrintTitle("localenv01: single-worker environment")

	var env Env = LocalEnv{}
	if env.Rank() != 0 || env.Size() != 1 || !env.IsMaster() {
		tst.Errorf("LocalEnv must behave as a lone master worker")
	}
	env.Barrier()

	v := []float64{1, 2, 3}
	r := env.ReduceSum(v)
	chk.Vector(tst, "ReduceSum is identity for one worker", 1e-15, r, v)
}
