// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jl2922/hci-17b/config"
	"github.com/jl2922/hci-17b/heg"
	"github.com/jl2922/hci-17b/parallel"
	"github.com/jl2922/hci-17b/timing"
)

// Run drives the full HEG variational sweep: for every distinct rcut_var
// (ascending) it rebuilds the plane-wave System, then for every distinct
// eps_var (descending) it runs the Variation loop to convergence.
// Consecutive equal cutoffs are skipped, matching the original source's
// "if (i > 0 && rcut_vars[i] == rcut_vars[i-1]) continue;" guard.
func Run(cfg *config.Config, env parallel.Env, clock *timing.Clock) float64 {
	validateCutoffs(cfg, env)

	clock.Start("variation")
	var energy float64

	for i, rcutVar := range cfg.RcutVars {
		if i > 0 && rcutVar == cfg.RcutVars[i-1] {
			continue
		}

		clock.Start(io.Sf("rcut_var: %#.4g", rcutVar))
		clock.Start("setup")
		sys := heg.NewSystem(rcutVar, cfg.Rs, cfg.NUp, cfg.NDn)
		if env.IsMaster() {
			io.Pf("number of orbitals: %d\n", sys.Grid.NumPoints()*2)
		}
		clock.End()

		variation := NewVariation(sys, cfg.NUp, cfg.NDn, env, clock)

		for j, epsVar := range cfg.EpsVars {
			if j > 0 && epsVar == cfg.EpsVars[j-1] {
				continue
			}
			epsVarHamOld := epsVar * cfg.EpsVarHamOldRatio
			epsVarHamNew := epsVar * cfg.EpsVarHamNewRatio

			clock.Start(io.Sf("eps_var: %#.4g", epsVar))
			energy = variation.Run(epsVar, epsVarHamOld, epsVarHamNew)
			clock.End()
		}

		clock.End()
	}

	clock.End()
	return energy
}

// validateCutoffs checks that rcut_vars is ascending and eps_vars is
// descending (consecutive equal values tolerated) on the master worker
// only, then barriers so every worker either proceeds together or panics
// together.
func validateCutoffs(cfg *config.Config, env parallel.Env) {
	if env.IsMaster() {
		for i := 1; i < len(cfg.RcutVars); i++ {
			if cfg.RcutVars[i-1] > cfg.RcutVars[i] {
				chk.Panic("solver: rcut_vars must be non-decreasing: %v", cfg.RcutVars)
			}
		}
		for i := 1; i < len(cfg.EpsVars); i++ {
			if cfg.EpsVars[i-1] < cfg.EpsVars[i] {
				chk.Panic("solver: eps_vars must be non-increasing: %v", cfg.EpsVars)
			}
		}
	}
	env.Barrier()
}
