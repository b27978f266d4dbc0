package kiosk

import "github.com/samber/lo"

// BarState is the presentation state of one progress bar.
type BarState int

const (
	BarUnseen BarState = iota
	BarSeen
	BarActive
)

func (b BarState) String() string {
	switch b {
	case BarSeen:
		return "seen"
	case BarActive:
		return "active"
	default:
		return "unseen"
	}
}

// RotationState is the position of the display in the message sequence.
// 0 <= CurrentIndex < SequenceLength whenever SequenceLength > 0.
type RotationState struct {
	CurrentIndex   int
	SequenceLength int
}

// Empty reports the degenerate state with nothing to show
func (s RotationState) Empty() bool {
	return s.SequenceLength == 0
}

// Bars returns one BarState per message: seen before the current index,
// active at it, unseen after it.
func (s RotationState) Bars() []BarState {
	return lo.Times(s.SequenceLength, func(i int) BarState {
		switch {
		case i < s.CurrentIndex:
			return BarSeen
		case i == s.CurrentIndex:
			return BarActive
		default:
			return BarUnseen
		}
	})
}

// Rotation cycles an index through a sequence of fixed length.
type Rotation struct {
	state RotationState
}

// NewRotation creates a rotation at index 0 over length messages
func NewRotation(length int) *Rotation {
	r := &Rotation{}
	r.Reset(length)
	return r
}

// Advance moves to the next position, wrapping to 0 after the last.
// It returns false and leaves the state untouched when the sequence is empty.
func (r *Rotation) Advance() bool {
	if r.state.SequenceLength == 0 {
		return false
	}
	r.state.CurrentIndex = (r.state.CurrentIndex + 1) % r.state.SequenceLength
	return true
}

// Reset re-derives the length from a new sequence and returns to index 0
func (r *Rotation) Reset(length int) {
	if length < 0 {
		length = 0
	}
	r.state = RotationState{CurrentIndex: 0, SequenceLength: length}
}

// State returns the current rotation state
func (r *Rotation) State() RotationState {
	return r.state
}
