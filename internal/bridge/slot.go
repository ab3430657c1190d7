package bridge

// outcome is the terminal value of one background task.
type outcome[T any] struct {
	value T
	err   error
}

// Slot is a single-producer/single-consumer one-shot handoff: at most one
// operation of its kind is outstanding, and its terminal value is observed
// by exactly one Poll, after which the slot reads as idle again.
//
// The consumer side (start, Poll, Pending) belongs to one goroutine — the
// caller's tick loop. The producer side is the background task, which only
// sends on the buffered channel captured at start time. Starting a new
// operation while one is outstanding supersedes it: the old task still runs
// to completion, but its result lands in an abandoned channel and is
// discarded.
type Slot[T any] struct {
	ch chan outcome[T]
}

// start arms the slot with a fresh completion channel and returns the
// producer's send half. The channel is buffered so an abandoned task never
// blocks on delivery.
func (s *Slot[T]) start() chan<- outcome[T] {
	s.ch = make(chan outcome[T], 1)
	return s.ch
}

// Pending reports whether an operation is outstanding on this slot.
func (s *Slot[T]) Pending() bool {
	return s.ch != nil
}

// Poll observes the slot without blocking. It returns ok=false while the
// slot is idle or the operation is still running. When the operation has
// finished, exactly one Poll returns ok=true with the terminal value; the
// slot then resets to idle.
func (s *Slot[T]) Poll() (value T, err error, ok bool) {
	if s.ch == nil {
		return value, nil, false
	}
	select {
	case out := <-s.ch:
		s.ch = nil
		return out.value, out.err, true
	default:
		return value, nil, false
	}
}
