package store

import (
	"testing"
	"time"
)

// manualScheduler records scheduled expiries so a test can fire or inspect
// them deterministically instead of sleeping.
type manualScheduler struct {
	entries []manualEntry
}

type manualEntry struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

func (m *manualScheduler) schedule(d time.Duration, fn func()) CancelFunc {
	i := len(m.entries)
	m.entries = append(m.entries, manualEntry{d: d, fn: fn})
	return func() { m.entries[i].cancelled = true }
}

// fire runs every pending expiry that has not been cancelled.
func (m *manualScheduler) fire() {
	for i := range m.entries {
		if !m.entries[i].cancelled && m.entries[i].fn != nil {
			fn := m.entries[i].fn
			m.entries[i].fn = nil
			fn()
		}
	}
}

func TestAlertExpiresAfterTimeout(t *testing.T) {
	sched := &manualScheduler{}
	alerts := NewAlertSlice(WithScheduler(sched.schedule))

	id := alerts.Add(SeveritySuccess, "profile saved", 2*time.Second)
	if got := alerts.Alerts(); len(got) != 1 || got[0].ID != id {
		t.Fatalf("alert not queued: %+v", got)
	}
	if len(sched.entries) != 1 || sched.entries[0].d != 2*time.Second {
		t.Fatalf("expiry not scheduled with the given timeout: %+v", sched.entries)
	}

	sched.fire()
	if got := alerts.Alerts(); len(got) != 0 {
		t.Fatalf("alert survived its timeout: %+v", got)
	}
}

func TestManualRemoveCancelsExpiry(t *testing.T) {
	sched := &manualScheduler{}
	alerts := NewAlertSlice(WithScheduler(sched.schedule))

	id := alerts.Add(SeverityInfo, "checking", 0)
	alerts.Remove(id)
	if !sched.entries[0].cancelled {
		t.Fatalf("pending expiry not cancelled on manual remove")
	}
	if got := alerts.Alerts(); len(got) != 0 {
		t.Fatalf("alert still queued after remove: %+v", got)
	}

	// Firing the (already cancelled) expiry must be harmless.
	sched.fire()
	alerts.Remove(id)
}

func TestZeroTimeoutFallsBackToDefault(t *testing.T) {
	sched := &manualScheduler{}
	alerts := NewAlertSlice(WithScheduler(sched.schedule))

	alerts.Add(SeverityWarning, "slow backend", 0)
	if sched.entries[0].d != DefaultAlertTimeout {
		t.Fatalf("timeout = %v, want %v", sched.entries[0].d, DefaultAlertTimeout)
	}
	if alerts.Alerts()[0].Timeout != DefaultAlertTimeout {
		t.Fatalf("queued alert does not carry the applied timeout")
	}
}

func TestSeverityWrappers(t *testing.T) {
	sched := &manualScheduler{}
	alerts := NewAlertSlice(WithScheduler(sched.schedule))

	alerts.Success("a")
	alerts.Error("b")
	alerts.Warning("c")
	alerts.Info("d")

	got := alerts.Alerts()
	want := []Severity{SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo}
	if len(got) != len(want) {
		t.Fatalf("queued %d alerts, want %d", len(got), len(want))
	}
	for i, alert := range got {
		if alert.Severity != want[i] {
			t.Fatalf("alert %d severity = %s, want %s", i, alert.Severity, want[i])
		}
	}
	if got[1].Severity != Severity("danger") {
		t.Fatalf("error severity must render as danger, got %s", got[1].Severity)
	}
}

func TestAlertIDsAreUniqueWithinOneInstant(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	sched := &manualScheduler{}
	alerts := NewAlertSlice(WithScheduler(sched.schedule), WithClock(func() time.Time { return fixed }))

	a := alerts.Add(SeverityInfo, "one", time.Second)
	b := alerts.Add(SeverityInfo, "two", time.Second)
	if a == b {
		t.Fatalf("two alerts share id %s", a)
	}

	alerts.Remove(a)
	got := alerts.Alerts()
	if len(got) != 1 || got[0].ID != b {
		t.Fatalf("wrong alert removed: %+v", got)
	}
}

func TestClearCancelsEverything(t *testing.T) {
	sched := &manualScheduler{}
	alerts := NewAlertSlice(WithScheduler(sched.schedule))

	alerts.Add(SeverityInfo, "one", time.Second)
	alerts.Add(SeverityInfo, "two", time.Second)
	alerts.Clear()

	if got := alerts.Alerts(); len(got) != 0 {
		t.Fatalf("alerts survived Clear: %+v", got)
	}
	for i, e := range sched.entries {
		if !e.cancelled {
			t.Fatalf("expiry %d not cancelled by Clear", i)
		}
	}
}

func TestSynchronousSchedulerExpiresImmediately(t *testing.T) {
	cancelled := false
	alerts := NewAlertSlice(WithScheduler(func(d time.Duration, fn func()) CancelFunc {
		fn()
		return func() { cancelled = true }
	}))

	id := alerts.Info("flash")
	if id == "" {
		t.Fatal("Add returned an empty id")
	}
	if got := alerts.Alerts(); len(got) != 0 {
		t.Fatalf("alert outlived immediate expiry: %+v", got)
	}
	if !cancelled {
		t.Fatal("cancel handle for the already-expired alert was kept")
	}
}
