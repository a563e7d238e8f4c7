package store

import (
	"strconv"
	"sync"
	"time"
)

// DefaultAlertTimeout is applied when a caller passes a non-positive
// timeout.
const DefaultAlertTimeout = 5 * time.Second

// Severity classifies an alert for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Alert is an ephemeral, process-local message. It is never persisted and
// never sent to the backend.
type Alert struct {
	ID       string
	Severity Severity
	Message  string
	Timeout  time.Duration
}

// CancelFunc stops a scheduled expiry.
type CancelFunc func()

// Scheduler runs fn after d and returns a cancel handle. The default uses
// time.AfterFunc; tests substitute an immediate or manual scheduler. A
// scheduler may run fn synchronously before returning.
type Scheduler func(d time.Duration, fn func()) CancelFunc

func defaultScheduler(d time.Duration, fn func()) CancelFunc {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// AlertSlice owns the transient message queue and the expiry timer of each
// entry: scheduled on Add, cancelled on Remove. This keeps alert expiry
// testable without any UI mounted.
type AlertSlice struct {
	mu       sync.Mutex
	alerts   []Alert
	cancels  map[string]CancelFunc
	seq      int
	now      func() time.Time
	schedule Scheduler
	onChange func()
}

// AlertOption customizes AlertSlice construction.
type AlertOption func(*AlertSlice)

// WithScheduler overrides the expiry scheduler.
func WithScheduler(s Scheduler) AlertOption {
	return func(a *AlertSlice) {
		if s != nil {
			a.schedule = s
		}
	}
}

// WithClock allows tests to control id generation timestamps.
func WithClock(clock func() time.Time) AlertOption {
	return func(a *AlertSlice) {
		if clock != nil {
			a.now = clock
		}
	}
}

// NewAlertSlice builds the alert slice.
func NewAlertSlice(opts ...AlertOption) *AlertSlice {
	a := &AlertSlice{
		cancels:  map[string]CancelFunc{},
		now:      time.Now,
		schedule: defaultScheduler,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *AlertSlice) setOnChange(fn func()) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

// Alerts returns a copy of the current queue in insertion order.
func (a *AlertSlice) Alerts() []Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Alert(nil), a.alerts...)
}

// Add appends an alert and schedules its expiry. It returns the generated
// id so callers can dismiss early.
func (a *AlertSlice) Add(severity Severity, message string, timeout time.Duration) string {
	if timeout <= 0 {
		timeout = DefaultAlertTimeout
	}
	a.mu.Lock()
	a.seq++
	id := strconv.FormatInt(a.now().UnixMilli(), 10) + "-" + strconv.Itoa(a.seq)
	a.alerts = append(a.alerts, Alert{
		ID:       id,
		Severity: severity,
		Message:  message,
		Timeout:  timeout,
	})
	fn := a.onChange
	a.mu.Unlock()

	// schedule runs outside the lock so schedulers that fire synchronously
	// (manual test schedulers in particular) can call Remove without
	// deadlocking. If expiry already ran, the entry is gone by the time we
	// get the cancel handle back; discard it.
	cancel := a.schedule(timeout, func() { a.Remove(id) })
	a.mu.Lock()
	if a.contains(id) {
		a.cancels[id] = cancel
		cancel = nil
	}
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	if fn != nil {
		fn()
	}
	return id
}

func (a *AlertSlice) contains(id string) bool {
	for _, alert := range a.alerts {
		if alert.ID == id {
			return true
		}
	}
	return false
}

// Remove dismisses the alert and cancels its pending expiry. Removing an
// already-expired id is a no-op.
func (a *AlertSlice) Remove(id string) {
	a.mu.Lock()
	if cancel, ok := a.cancels[id]; ok {
		cancel()
		delete(a.cancels, id)
	}
	kept := make([]Alert, 0, len(a.alerts))
	for _, alert := range a.alerts {
		if alert.ID != id {
			kept = append(kept, alert)
		}
	}
	a.alerts = kept
	fn := a.onChange
	a.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Clear dismisses every alert and cancels all pending expiries.
func (a *AlertSlice) Clear() {
	a.mu.Lock()
	for id, cancel := range a.cancels {
		cancel()
		delete(a.cancels, id)
	}
	a.alerts = nil
	fn := a.onChange
	a.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Success raises a success alert with the default timeout.
func (a *AlertSlice) Success(message string) string {
	return a.Add(SeveritySuccess, message, DefaultAlertTimeout)
}

// Error raises an error alert with the default timeout.
func (a *AlertSlice) Error(message string) string {
	return a.Add(SeverityError, message, DefaultAlertTimeout)
}

// Warning raises a warning alert with the default timeout.
func (a *AlertSlice) Warning(message string) string {
	return a.Add(SeverityWarning, message, DefaultAlertTimeout)
}

// Info raises an info alert with the default timeout.
func (a *AlertSlice) Info(message string) string {
	return a.Add(SeverityInfo, message, DefaultAlertTimeout)
}
