// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/jl2922/hci-17b/config"
	"github.com/jl2922/hci-17b/parallel"
	"github.com/jl2922/hci-17b/solver"
	"github.com/jl2922/hci-17b/timing"
)

func main() {

	// catch errors
	defer func() {
		failed := false
		if err := recover(); err != nil {
			failed = true
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
		if failed {
			os.Exit(1)
		}
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		io.PfWhite("\nHCI -- Heat-Bath Configuration Interaction\n\n")
		io.Pf("Copyright 2016 The HCI Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	// config filenamepath
	serial := flag.Bool("serial", false, "force a single-worker run even under mpirun")
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a configuration filename. Ex.: heg.json")
	}

	// parallel environment and clock
	env := parallel.New(!*serial)
	clock := timing.NewClock(env)

	// load configuration (cutoff sequences are validated by solver.Run)
	cfg := config.Read(fnamepath)

	// dispatch on system type
	switch cfg.Type {
	case "heg":
		solver.Run(cfg, env, clock)
	default:
		chk.Panic("main: unknown system type %q", cfg.Type)
	}
}
