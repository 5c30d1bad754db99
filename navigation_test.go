package main

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced time source for deadline tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestClampDelay(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{9, 9},
		{10, 9},
		{100, 9},
	}

	for _, tt := range tests {
		if result := clampDelay(tt.input); result != tt.expected {
			t.Errorf("clampDelay(%d) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

func TestNavigatorWraparound(t *testing.T) {
	nav := NewNavigator(3, 0, 0, false)

	if got := nav.Next(); got != 1 {
		t.Errorf("Next from 0 = %d, want 1", got)
	}
	if got := nav.Next(); got != 2 {
		t.Errorf("Next from 1 = %d, want 2", got)
	}
	if got := nav.Next(); got != 0 {
		t.Errorf("Next from last = %d, want wrap to 0", got)
	}
	if got := nav.Previous(); got != 2 {
		t.Errorf("Previous from 0 = %d, want wrap to 2", got)
	}
}

func TestNavigatorNextPreviousIdentity(t *testing.T) {
	nav := NewNavigator(5, 2, 0, false)
	nav.Next()
	nav.Previous()
	if nav.Index() != 2 {
		t.Errorf("Next then Previous moved index to %d, want 2", nav.Index())
	}
}

func TestNavigatorFullCycle(t *testing.T) {
	// N consecutive Next calls must return to the starting image
	nav := NewNavigator(7, 3, 0, false)
	for i := 0; i < 7; i++ {
		nav.Next()
	}
	if nav.Index() != 3 {
		t.Errorf("Full cycle ended at %d, want 3", nav.Index())
	}
}

func TestNavigatorSingleImage(t *testing.T) {
	nav := NewNavigator(1, 0, 0, false)
	if got := nav.Next(); got != 0 {
		t.Errorf("Next with one image = %d, want 0", got)
	}
	if got := nav.Previous(); got != 0 {
		t.Errorf("Previous with one image = %d, want 0", got)
	}
}

func TestNavigatorJumpTo(t *testing.T) {
	nav := NewNavigator(5, 0, 0, false)

	if got := nav.JumpTo(3); got != 3 {
		t.Errorf("JumpTo(3) = %d, want 3", got)
	}
	if got := nav.JumpTo(99); got != 3 {
		t.Errorf("JumpTo out of range moved index to %d, want 3", got)
	}
	if got := nav.JumpTo(-1); got != 3 {
		t.Errorf("JumpTo(-1) moved index to %d, want 3", got)
	}
}

func TestNavigatorRotation(t *testing.T) {
	nav := NewNavigator(3, 0, 0, false)

	nav.RotateRight()
	if nav.Rotation() != 90 {
		t.Errorf("After RotateRight rotation = %d, want 90", nav.Rotation())
	}
	nav.RotateRight()
	nav.RotateRight()
	nav.RotateRight()
	if nav.Rotation() != 0 {
		t.Errorf("Four right rotations = %d, want 0", nav.Rotation())
	}

	nav.RotateLeft()
	if nav.Rotation() != 270 {
		t.Errorf("RotateLeft from 0 = %d, want 270", nav.Rotation())
	}
}

func TestNavigatorRotationResetsOnNavigate(t *testing.T) {
	nav := NewNavigator(3, 0, 0, false)

	nav.RotateRight()
	nav.Next()
	if nav.Rotation() != 0 {
		t.Errorf("Rotation after Next = %d, want 0", nav.Rotation())
	}

	nav.RotateLeft()
	nav.Previous()
	if nav.Rotation() != 0 {
		t.Errorf("Rotation after Previous = %d, want 0", nav.Rotation())
	}

	nav.RotateRight()
	nav.JumpTo(2)
	if nav.Rotation() != 0 {
		t.Errorf("Rotation after JumpTo = %d, want 0", nav.Rotation())
	}

	// SetIndex keeps rotation; it repositions under the same image
	nav.RotateRight()
	nav.SetIndex(1)
	if nav.Rotation() != 90 {
		t.Errorf("Rotation after SetIndex = %d, want 90", nav.Rotation())
	}
}

func TestNavigatorAutoAdvance(t *testing.T) {
	clock := newFakeClock()
	nav := NewNavigator(3, 0, 0, false)
	nav.now = clock.Now

	// Manual mode never fires
	clock.Advance(time.Hour)
	if nav.AutoAdvanceDue() {
		t.Error("AutoAdvanceDue in manual mode")
	}

	nav.SetDelay(3)
	nav.ToggleAutoPlay()
	if nav.AutoAdvanceDue() {
		t.Error("AutoAdvanceDue immediately after arming")
	}

	clock.Advance(2 * time.Second)
	if nav.AutoAdvanceDue() {
		t.Error("AutoAdvanceDue before the deadline")
	}

	clock.Advance(2 * time.Second)
	if !nav.AutoAdvanceDue() {
		t.Error("Expected AutoAdvanceDue after the delay elapsed")
	}

	// Advancing re-arms a fresh deadline; the timer fires once per interval
	nav.Next()
	if nav.AutoAdvanceDue() {
		t.Error("AutoAdvanceDue right after Next, expected re-armed deadline")
	}
	clock.Advance(3 * time.Second)
	if !nav.AutoAdvanceDue() {
		t.Error("Expected AutoAdvanceDue one interval after Next")
	}
}

func TestNavigatorManualNavigationResetsTimer(t *testing.T) {
	clock := newFakeClock()
	nav := NewNavigator(3, 0, 3, true)
	nav.now = clock.Now
	nav.arm()

	clock.Advance(2 * time.Second)
	nav.Previous()

	// The old deadline (1s away) must have been replaced, not kept
	clock.Advance(2 * time.Second)
	if nav.AutoAdvanceDue() {
		t.Error("Old deadline survived a manual navigation")
	}
	clock.Advance(time.Second)
	if !nav.AutoAdvanceDue() {
		t.Error("Expected new deadline a full interval after Previous")
	}
}

func TestNavigatorZeroDelayDisablesTimer(t *testing.T) {
	clock := newFakeClock()
	nav := NewNavigator(3, 0, 3, true)
	nav.now = clock.Now
	nav.arm()

	nav.SetDelay(0)
	clock.Advance(time.Hour)
	if nav.AutoAdvanceDue() {
		t.Error("AutoAdvanceDue with zero delay")
	}

	nav.SetDelay(2)
	clock.Advance(2 * time.Second)
	if !nav.AutoAdvanceDue() {
		t.Error("Expected timer to re-arm when delay becomes non-zero")
	}
}

func TestNavigatorToggleAutoPlay(t *testing.T) {
	clock := newFakeClock()
	nav := NewNavigator(3, 0, 2, true)
	nav.now = clock.Now
	nav.arm()

	if got := nav.ToggleAutoPlay(); got {
		t.Error("Expected toggle to turn auto-play off")
	}
	clock.Advance(time.Hour)
	if nav.AutoAdvanceDue() {
		t.Error("AutoAdvanceDue while paused")
	}

	if got := nav.ToggleAutoPlay(); !got {
		t.Error("Expected toggle to turn auto-play back on")
	}
	if nav.AutoAdvanceDue() {
		t.Error("Resume must arm a fresh deadline, not fire instantly")
	}
	clock.Advance(2 * time.Second)
	if !nav.AutoAdvanceDue() {
		t.Error("Expected AutoAdvanceDue one interval after resume")
	}
}

func TestResizeDebouncer(t *testing.T) {
	clock := newFakeClock()
	d := newResizeDebouncer(100 * time.Millisecond)
	d.now = clock.Now

	d.Observe(800, 600)
	if d.Fire() {
		t.Error("Fire immediately after a size change")
	}

	// A burst of changes keeps pushing the deadline out
	clock.Advance(50 * time.Millisecond)
	d.Observe(810, 600)
	clock.Advance(50 * time.Millisecond)
	d.Observe(820, 600)
	if d.Fire() {
		t.Error("Fire while resizes are still arriving")
	}

	clock.Advance(100 * time.Millisecond)
	if !d.Fire() {
		t.Error("Expected Fire once the size settled")
	}
	if d.Fire() {
		t.Error("Fire must consume the pending resize")
	}

	// An unchanged size never restarts the window
	clock.Advance(time.Second)
	d.Observe(820, 600)
	if d.Fire() {
		t.Error("Observe with unchanged size re-armed the debouncer")
	}
}
