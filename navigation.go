package main

import "time"

// Slide delay bounds in seconds; 0 disables auto-advance entirely.
const (
	minSlideDelay = 0
	maxSlideDelay = 9
)

// Navigator is the slideshow position state machine: a current index into
// a fixed-length list with circular next/previous, a per-image rotation
// angle, and a fire-once auto-advance deadline re-armed by every
// navigation or setting change. It never touches the image list itself.
type Navigator struct {
	count    int
	idx      int
	autoPlay bool
	delay    int // seconds, 0 = manual only
	rotation int // degrees, one of 0/90/180/270

	deadline time.Time
	now      func() time.Time // injectable for tests
}

func NewNavigator(count, startIdx, delay int, autoPlay bool) *Navigator {
	n := &Navigator{
		count:    count,
		idx:      startIdx,
		delay:    clampDelay(delay),
		autoPlay: autoPlay,
		now:      time.Now,
	}
	n.arm()
	return n
}

func clampDelay(d int) int {
	if d < minSlideDelay {
		return minSlideDelay
	}
	if d > maxSlideDelay {
		return maxSlideDelay
	}
	return d
}

func (n *Navigator) Index() int     { return n.idx }
func (n *Navigator) Count() int     { return n.count }
func (n *Navigator) Delay() int     { return n.delay }
func (n *Navigator) AutoPlay() bool { return n.autoPlay }
func (n *Navigator) Rotation() int  { return n.rotation }

// Next advances with wraparound, resets rotation, and re-arms the
// auto-advance deadline.
func (n *Navigator) Next() int {
	n.idx = (n.idx + 1) % n.count
	n.rotation = 0
	n.arm()
	return n.idx
}

// Previous retreats with wraparound, resets rotation, and re-arms the
// auto-advance deadline.
func (n *Navigator) Previous() int {
	n.idx = (n.idx - 1 + n.count) % n.count
	n.rotation = 0
	n.arm()
	return n.idx
}

// JumpTo moves to idx when it is in bounds; out-of-range jumps are ignored.
func (n *Navigator) JumpTo(idx int) int {
	if idx < 0 || idx >= n.count {
		return n.idx
	}
	n.idx = idx
	n.rotation = 0
	n.arm()
	return n.idx
}

// SetIndex repositions the navigator without resetting rotation, used when
// the list is re-sorted underneath the same image.
func (n *Navigator) SetIndex(idx int) {
	if idx >= 0 && idx < n.count {
		n.idx = idx
	}
}

// SetDelay switches the auto-advance interval. Zero disables the timer;
// anything else re-arms it immediately at the new interval.
func (n *Navigator) SetDelay(d int) {
	n.delay = clampDelay(d)
	n.arm()
}

// ToggleAutoPlay flips auto-play, re-arming the deadline when enabling.
func (n *Navigator) ToggleAutoPlay() bool {
	n.autoPlay = !n.autoPlay
	n.arm()
	return n.autoPlay
}

// RotateLeft turns the current image 90 degrees counterclockwise.
func (n *Navigator) RotateLeft() {
	n.rotation = (n.rotation + 270) % 360
}

// RotateRight turns the current image 90 degrees clockwise.
func (n *Navigator) RotateRight() {
	n.rotation = (n.rotation + 90) % 360
}

// arm schedules the next automatic advance. The timer is a fire-once
// deadline polled by the update loop, not a goroutine.
func (n *Navigator) arm() {
	if n.autoPlay && n.delay > 0 {
		n.deadline = n.now().Add(time.Duration(n.delay) * time.Second)
	} else {
		n.deadline = time.Time{}
	}
}

// AutoAdvanceDue reports whether the auto-advance deadline has passed.
func (n *Navigator) AutoAdvanceDue() bool {
	return !n.deadline.IsZero() && !n.now().Before(n.deadline)
}

// resizeDebouncer coalesces bursts of window resize notifications into a
// single refit once the size has been stable for the debounce window.
type resizeDebouncer struct {
	window   time.Duration
	w, h     int
	deadline time.Time
	now      func() time.Time
}

func newResizeDebouncer(window time.Duration) *resizeDebouncer {
	return &resizeDebouncer{window: window, now: time.Now}
}

// Observe records the current window size, restarting the debounce window
// whenever it changes.
func (d *resizeDebouncer) Observe(w, h int) {
	if w == d.w && h == d.h {
		return
	}
	d.w, d.h = w, h
	d.deadline = d.now().Add(d.window)
}

// Fire reports whether a settled resize is pending, consuming it.
func (d *resizeDebouncer) Fire() bool {
	if d.deadline.IsZero() || d.now().Before(d.deadline) {
		return false
	}
	d.deadline = time.Time{}
	return true
}
