package loop

import (
	"testing"
	"time"
)

func TestFrameQueue_FlushRunsOnlyQueuedCallbacks(t *testing.T) {
	var q FrameQueue
	var calls []string

	q.Schedule(func() {
		calls = append(calls, "a")
		q.Schedule(func() { calls = append(calls, "c") })
	})
	q.Schedule(func() { calls = append(calls, "b") })

	if n := q.Flush(); n != 2 {
		t.Fatalf("expected 2 callbacks in first flush, got %d", n)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("unexpected first flush order %v", calls)
	}
	if q.Len() != 1 {
		t.Fatalf("expected callback scheduled during flush to wait, queue has %d", q.Len())
	}
	if n := q.Flush(); n != 1 || calls[2] != "c" {
		t.Fatalf("expected deferred callback on second flush, got n=%d calls=%v", n, calls)
	}
	if n := q.Flush(); n != 0 {
		t.Errorf("expected empty flush, got %d", n)
	}
}

func newCounting() (*FrameQueue, *Loop, *int) {
	q := &FrameQueue{}
	steps := 0
	l := New(q, func() { steps++ })
	return q, l, &steps
}

func TestLoop_StartsStoppedAndRunsOncePerFrame(t *testing.T) {
	q, l, steps := newCounting()

	if l.State() != Stopped {
		t.Fatalf("new loop should be stopped, got %v", l.State())
	}
	if q.Len() != 0 {
		t.Fatal("new loop should not schedule anything")
	}

	l.Start()
	l.Start()
	if q.Len() != 1 {
		t.Fatalf("expected exactly one queued frame after Start, got %d", q.Len())
	}
	if l.State() != Running {
		t.Errorf("expected running after Start, got %v", l.State())
	}

	for i := 0; i < 10; i++ {
		q.Flush()
		if q.Len() != 1 {
			t.Fatalf("frame %d: expected one queued frame, got %d", i, q.Len())
		}
	}
	if *steps != 10 || l.Frames() != 10 {
		t.Errorf("expected 10 steps, got %d (frames %d)", *steps, l.Frames())
	}
}

func TestLoop_LeavingViewportStopsScheduling(t *testing.T) {
	q, l, steps := newCounting()
	l.Start()
	q.Flush()
	q.Flush()

	l.SetVisible(false)
	q.Flush() // the queued frame sees the hidden loop and does not reschedule

	if l.State() != Stopped {
		t.Errorf("expected stopped after hidden frame, got %v", l.State())
	}
	if q.Len() != 0 {
		t.Fatalf("expected no frames scheduled while hidden, got %d", q.Len())
	}
	for i := 0; i < 5; i++ {
		q.Flush()
	}
	if *steps != 2 {
		t.Errorf("expected steps to stop at 2, got %d", *steps)
	}

	l.SetVisible(true)
	if q.Len() != 1 || l.State() != Running {
		t.Fatalf("re-entering viewport should schedule one frame, got len=%d state=%v", q.Len(), l.State())
	}
	q.Flush()
	if *steps != 3 {
		t.Errorf("expected stepping to resume, got %d", *steps)
	}
}

func TestLoop_VisibilityFlickerDoesNotDoubleSchedule(t *testing.T) {
	q, l, steps := newCounting()
	l.Start()

	l.SetVisible(false)
	l.SetVisible(true)
	l.SetVisible(false)
	l.SetVisible(true)

	if q.Len() != 1 {
		t.Fatalf("expected a single queued frame, got %d", q.Len())
	}
	q.Flush()
	if *steps != 1 || q.Len() != 1 {
		t.Errorf("expected one step and one follow-up frame, got steps=%d len=%d", *steps, q.Len())
	}
}

func TestLoop_HiddenBeforeStart(t *testing.T) {
	q, l, steps := newCounting()

	l.SetVisible(false)
	l.Start()
	if q.Len() != 0 || l.State() != Stopped {
		t.Fatalf("hidden loop should not schedule on Start, len=%d state=%v", q.Len(), l.State())
	}

	l.SetVisible(true)
	q.Flush()
	if *steps != 1 {
		t.Errorf("expected loop to run once visible, got %d steps", *steps)
	}
}

func TestLoop_VisibleBeforeStartDoesNotSchedule(t *testing.T) {
	q, l, _ := newCounting()
	l.SetVisible(false)
	l.SetVisible(true)
	if q.Len() != 0 {
		t.Errorf("visibility alone must not start the loop, queue has %d", q.Len())
	}
}

func TestLoop_OnStateChange(t *testing.T) {
	q, l, _ := newCounting()
	var states []State
	l.OnStateChange = func(s State) { states = append(states, s) }

	l.Start()
	q.Flush()
	q.Flush()
	l.SetVisible(false)
	q.Flush()
	l.SetVisible(true)

	want := []State{Running, Stopped, Running}
	if len(states) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("transition %d: expected %v, got %v", i, want[i], states[i])
		}
	}
}

func TestDebouncer_BurstFiresOnce(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	if d.Poll(t0) {
		t.Fatal("unarmed debouncer fired")
	}

	// Five resize events 20ms apart.
	for i := 0; i < 5; i++ {
		d.Trigger(t0.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	last := t0.Add(80 * time.Millisecond)

	if d.Poll(last.Add(99 * time.Millisecond)) {
		t.Error("fired before the quiet period after the last trigger")
	}
	if !d.Pending() {
		t.Error("expected trigger to be pending")
	}
	if !d.Poll(last.Add(100 * time.Millisecond)) {
		t.Error("expected fire at deadline")
	}
	if d.Poll(last.Add(time.Second)) {
		t.Error("fired twice for one burst")
	}
	if d.Pending() {
		t.Error("nothing should be pending after firing")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	t0 := time.Unix(0, 0)
	d.Trigger(t0)
	d.Cancel()
	if d.Poll(t0.Add(time.Second)) {
		t.Error("cancelled trigger fired")
	}
}

func TestStateString(t *testing.T) {
	if Running.String() != "running" || Stopped.String() != "stopped" {
		t.Errorf("unexpected names %q %q", Running, Stopped)
	}
}
