// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package parallel defines the collective-operations contract the
// distributed Hamiltonian mat-vec is built on (worker identity, barrier,
// vector sum reduction), with an MPI-backed implementation and a
// single-process fallback. There is no fine-grained shared memory between
// workers: all coordination goes through Env.
package parallel

import "github.com/cpmech/gosl/mpi"

// Env is the collective-operations contract every worker shares. All
// workers must call Barrier and ReduceSum in the same order: the
// distributed Hamiltonian apply relies on deterministic determinant
// ordering and on identical collective call sequences across workers.
type Env interface {
	// Rank returns this worker's identity in [0, Size()).
	Rank() int
	// Size returns the number of peer workers, W.
	Size() int
	// IsMaster reports whether this worker is rank 0.
	IsMaster() bool
	// Barrier blocks until every worker has called Barrier.
	Barrier()
	// ReduceSum performs an elementwise all-reduce: every worker returns
	// holding the global sum of the vectors passed in by all workers.
	ReduceSum(v []float64) []float64
}

// MPIEnv backs Env with github.com/cpmech/gosl/mpi, the way fem.NewMain
// uses mpi.IsOn/Rank/Size to decide whether to run distributed.
type MPIEnv struct{}

// NewMPIEnv returns an Env backed by an already-started MPI environment.
// Callers are responsible for mpi.Start/mpi.Stop around the process, the
// same way the teacher's root main.go brackets fem.Start/fem.End.
func NewMPIEnv() *MPIEnv {
	return &MPIEnv{}
}

func (MPIEnv) Rank() int     { return mpi.Rank() }
func (MPIEnv) Size() int     { return mpi.Size() }
func (MPIEnv) IsMaster() bool { return mpi.Rank() == 0 }

func (MPIEnv) Barrier() {
	mpi.Barrier()
}

func (MPIEnv) ReduceSum(v []float64) []float64 {
	res := make([]float64, len(v))
	mpi.AllReduceSum(v, res)
	return res
}

// Stop shuts down the MPI environment.
func (MPIEnv) Stop() {
	mpi.Stop(false)
}

// LocalEnv is the non-distributed stub, mirroring the #else branch of
// original_source/src/parallel.h: a single worker that is always master,
// whose barrier is a no-op and whose reduction is the identity. Used
// whenever mpi.IsOn() is false (including every unit test process) and
// for explicit single-worker (W=1) runs.
type LocalEnv struct{}

func (LocalEnv) Rank() int      { return 0 }
func (LocalEnv) Size() int      { return 1 }
func (LocalEnv) IsMaster() bool { return true }
func (LocalEnv) Barrier()       {}
func (LocalEnv) ReduceSum(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// New returns an MPIEnv when MPI has been initialised and allowed, or a
// LocalEnv otherwise, matching the teacher's own mpi.IsOn() branch in
// fem.NewMain.
func New(allowParallel bool) Env {
	if allowParallel && mpi.IsOn() {
		return NewMPIEnv()
	}
	return LocalEnv{}
}
