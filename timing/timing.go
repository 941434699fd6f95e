// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package timing reproduces the nested START/END/CHECKPOINT bracketed
// event log of the original solver's Time singleton, rendered through the
// same gosl/io colour helpers the teacher uses for its own status lines.
// Every call is surrounded by a barrier so that every worker's notion of
// "now" is consistent, and only the master prints.
package timing

import (
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/jl2922/hci-17b/parallel"
)

// Clock tracks a stack of nested named events, mirroring the original
// Time class instance (there reached via a process-wide singleton; here
// an explicit value threaded through the caller instead of hidden global
// state).
type Clock struct {
	env       parallel.Env
	init      time.Time
	stack     []entry
	justEnded bool
}

type entry struct {
	name  string
	start time.Time
}

// NewClock starts the clock. Call at the beginning of the program, after
// the parallel environment is up.
func NewClock(env parallel.Env) *Clock {
	return &Clock{env: env, init: time.Now(), justEnded: true}
}

func (c *Clock) elapsed(since time.Time) float64 {
	return time.Since(since).Seconds()
}

// Start pushes a new named event onto the stack and prints a START line
// showing the full event path and elapsed/total time.
func (c *Clock) Start(event string) {
	c.env.Barrier()
	if c.env.IsMaster() {
		now := time.Now()
		c.stack = append(c.stack, entry{name: event, start: now})
		if c.justEnded {
			io.Pf("\n")
			c.justEnded = false
		}
		io.Pf("START ")
		for i := 0; i < len(c.stack)-1; i++ {
			io.Pf("%s >> ", c.stack[i].name)
		}
		io.Pf("%s [%.3f/%.3f]\n", event, 0.0, c.elapsed(c.init))
	}
	c.env.Barrier()
}

// Checkpoint prints a sub-phase marker inside the currently open event,
// without closing it. This mirrors Time::checkpoint in the original
// source, used to mark phases such as "found connections" within one
// variational iteration.
func (c *Clock) Checkpoint(label string) {
	c.env.Barrier()
	if c.env.IsMaster() && len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		io.Pfcyan("  .. %s >> %s [%.3f/%.3f]\n", top.name, label, c.elapsed(c.init), c.elapsed(top.start))
	}
	c.env.Barrier()
}

// End pops the innermost event and prints an END line with its own and
// the overall elapsed time.
func (c *Clock) End() {
	c.env.Barrier()
	if c.env.IsMaster() && len(c.stack) > 0 {
		now := time.Now()
		io.Pf("--END ")
		for i := 0; i < len(c.stack)-1; i++ {
			io.Pf("%s >> ", c.stack[i].name)
		}
		top := c.stack[len(c.stack)-1]
		io.Pf("%s [%.3f/%.3f]\n", top.name, c.elapsed(c.init), now.Sub(top.start).Seconds())
		c.stack = c.stack[:len(c.stack)-1]
		c.justEnded = true
	}
	c.env.Barrier()
}
