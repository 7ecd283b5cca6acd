package boot

import "sync/atomic"

// Phase identifies a state of the boot machine. Stage phases are named
// after the deployfile block that configures them.
type Phase string

const (
	PhasePending          Phase = "pending"
	PhaseInstallDeps      Phase = "install_deps"
	PhaseProvisionScratch Phase = "provision_scratch"
	PhaseCopySource       Phase = "copy_source"
	PhaseLaunch           Phase = "launch"
	PhaseRunning          Phase = "running"
	PhaseBuildFailed      Phase = "build_failed"
	PhaseCrashed          Phase = "crashed"
)

// Terminal reports whether the machine can leave this phase.
func (p Phase) Terminal() bool {
	return p == PhaseBuildFailed || p == PhaseCrashed
}

// machine tracks the current phase. Reads may come from other goroutines
// (health probes, tests) while Run mutates it, hence the atomic.
type machine struct {
	phase atomic.Value
}

func newMachine() *machine {
	m := &machine{}
	m.phase.Store(PhasePending)
	return m
}

func (m *machine) to(p Phase) {
	m.phase.Store(p)
}

// advance transitions from one phase to another only if the machine is
// still in the expected phase. It returns whether the transition happened.
func (m *machine) advance(from, to Phase) bool {
	return m.phase.CompareAndSwap(from, to)
}

func (m *machine) current() Phase {
	return m.phase.Load().(Phase)
}
