package loop

// State is the animation loop state.
type State uint8

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Loop runs step once per scheduled frame while visible. Stopping is
// cooperative: a frame that finds the loop hidden returns without
// rescheduling.
type Loop struct {
	sched Scheduler
	step  func()

	started bool
	visible bool
	pending bool // a frame callback is queued
	state   State
	frames  uint64

	// OnStateChange, if set, is called when the loop starts or stops.
	OnStateChange func(State)
}

// New creates a loop that is visible but not yet started.
func New(sched Scheduler, step func()) *Loop {
	return &Loop{
		sched:   sched,
		step:    step,
		visible: true,
	}
}

// Start schedules the first frame. Calling it again is a no-op.
func (l *Loop) Start() {
	if l.started {
		return
	}
	l.started = true
	if l.visible {
		l.request()
	}
}

// SetVisible updates the visibility gate. Becoming visible restarts a
// stopped loop; becoming hidden stops it at the next frame.
func (l *Loop) SetVisible(visible bool) {
	if visible == l.visible {
		return
	}
	l.visible = visible
	if visible && l.started {
		l.request()
	}
}

// Visible reports the visibility gate.
func (l *Loop) Visible() bool { return l.visible }

// State reports the loop state. A loop hidden mid-run stays Running until
// its queued frame fires.
func (l *Loop) State() State { return l.state }

// Frames returns how many frames have stepped.
func (l *Loop) Frames() uint64 { return l.frames }

// request queues a frame unless one is already queued.
func (l *Loop) request() {
	if l.pending {
		return
	}
	l.pending = true
	l.sched.Schedule(l.frame)
	l.setState(Running)
}

func (l *Loop) frame() {
	l.pending = false
	if !l.visible {
		l.setState(Stopped)
		return
	}
	l.step()
	l.frames++
	l.request()
}

func (l *Loop) setState(s State) {
	if s == l.state {
		return
	}
	l.state = s
	if l.OnStateChange != nil {
		l.OnStateChange(s)
	}
}
