package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time. Promotion lifecycle and date validation
// depend on it, so use cases receive a Clock instead of calling time.Now.
type Clock interface {
	Now() time.Time
}

// RealClock is the production implementation using actual system time.
type RealClock struct {
	loc *time.Location
}

// NewRealClock creates a RealClock reporting time in the local zone.
func NewRealClock() Clock {
	return &RealClock{}
}

// NewRealClockIn creates a RealClock reporting time in loc. Promotion dates
// are calendar days, so the store's zone decides when a day starts.
func NewRealClockIn(loc *time.Location) Clock {
	return &RealClock{loc: loc}
}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	if c.loc != nil {
		return time.Now().In(c.loc)
	}
	return time.Now()
}

// Func adapts a plain function to the Clock interface.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}

// MockClock is a test implementation that allows setting the current time.
// It is safe for concurrent use.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock creates a new MockClock starting at the given time.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{current: startTime}
}

// Now returns the mock current time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set sets the mock current time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}

// Advance advances the mock clock by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}

// AdvanceDays moves the clock by n calendar days.
func (m *MockClock) AdvanceDays(n int) {
	m.mu.Lock()
	m.current = m.current.AddDate(0, 0, n)
	m.mu.Unlock()
}
