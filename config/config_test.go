// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_config01(tst *testing.T) {

	chk.PrintTitle("config01: read a minimal HEG configuration file")

	dir := tst.TempDir()
	path := filepath.Join(dir, "heg.json")
	body := `{
		"type": "heg",
		"n_up": 2,
		"n_dn": 2,
		"r_s": 1.0,
		"rcut_vars": [1.0, 2.0, 2.0, 3.0],
		"eps_vars": [1.0e-3, 1.0e-4]
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("cannot write test config: %v", err)
	}

	cfg := Read(path)
	if cfg.Type != "heg" || cfg.NUp != 2 || cfg.NDn != 2 {
		tst.Errorf("basic fields not parsed: %+v", cfg)
	}
	chk.Vector(tst, "rcut_vars", 1e-15, cfg.RcutVars, []float64{1.0, 2.0, 2.0, 3.0})
	chk.Vector(tst, "eps_vars", 1e-15, cfg.EpsVars, []float64{1.0e-3, 1.0e-4})

	// ratios default to 1 when omitted
	chk.Float64(tst, "eps_var_ham_old_ratio default", 1e-15, cfg.EpsVarHamOldRatio, 1.0)
	chk.Float64(tst, "eps_var_ham_new_ratio default", 1e-15, cfg.EpsVarHamNewRatio, 1.0)
}

func Test_config02(tst *testing.T) {

	chk.PrintTitle("config02: explicit ratios override the default")

	dir := tst.TempDir()
	path := filepath.Join(dir, "heg.json")
	body := `{"type": "heg", "n_up": 1, "n_dn": 1, "r_s": 2.0,
		"rcut_vars": [1.0], "eps_vars": [1.0e-3],
		"eps_var_ham_old_ratio": 0.5, "eps_var_ham_new_ratio": 0.25}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("cannot write test config: %v", err)
	}

	cfg := Read(path)
	chk.Float64(tst, "eps_var_ham_old_ratio", 1e-15, cfg.EpsVarHamOldRatio, 0.5)
	chk.Float64(tst, "eps_var_ham_new_ratio", 1e-15, cfg.EpsVarHamNewRatio, 0.25)
}
