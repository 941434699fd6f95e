// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config implements the input data read from a JSON configuration
// file, mirroring how gofem's inp package loads a .sim file: read the
// bytes, set defaults, unmarshal onto the struct, panic with chk.Panic on
// any failure.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Config holds the full set of run parameters for one HCI calculation.
type Config struct {
	Type string `json:"type"` // system type; only "heg" is implemented

	NUp int     `json:"n_up"` // number of spin-up electrons
	NDn int     `json:"n_dn"` // number of spin-down electrons
	Rs  float64 `json:"r_s"`  // Wigner-Seitz radius

	RcutVars []float64 `json:"rcut_vars"` // plane-wave cutoffs, non-decreasing
	EpsVars  []float64 `json:"eps_vars"`  // variational epsilons, non-increasing

	EpsVarHamOldRatio float64 `json:"eps_var_ham_old_ratio"` // scales eps_var for already-enqueued dets
	EpsVarHamNewRatio float64 `json:"eps_var_ham_new_ratio"` // scales eps_var for freshly spawned dets

	RcutPts float64 `json:"rcut_pts"` // plane-wave cutoff for stochastic PT2 (reserved, see Non-goals)
	EpsPts  float64 `json:"eps_pts"`  // epsilon for stochastic PT2 (reserved, see Non-goals)
}

// SetDefault fills in the ratios gofem's SolverData.SetDefault-style: a
// config that omits them behaves as if old and new dets were treated
// identically.
func (c *Config) SetDefault() {
	if c.EpsVarHamOldRatio == 0 {
		c.EpsVarHamOldRatio = 1.0
	}
	if c.EpsVarHamNewRatio == 0 {
		c.EpsVarHamNewRatio = 1.0
	}
}

// Read loads a Config from a JSON file at path, applying defaults before
// unmarshalling so the file may omit ratio fields entirely.
func Read(path string) *Config {
	var c Config
	c.SetDefault()

	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("config: cannot read configuration file %q", path)
	}

	err = json.Unmarshal(b, &c)
	if err != nil {
		chk.Panic("config: cannot unmarshal configuration file %q", path)
	}

	return &c
}
