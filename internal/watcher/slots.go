package watcher

import "context"

// runSlots caps how many subtitle files are processed at once.
type runSlots struct {
	ch chan struct{}
}

// newRunSlots returns a pool of n slots; n below 1 means one.
func newRunSlots(n int) *runSlots {
	if n < 1 {
		n = 1
	}
	return &runSlots{ch: make(chan struct{}, n)}
}

// take blocks until a slot is free or ctx is done.
func (s *runSlots) take(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *runSlots) give() {
	<-s.ch
}

// busy is the number of runs holding a slot.
func (s *runSlots) busy() int {
	return len(s.ch)
}

func (s *runSlots) size() int {
	return cap(s.ch)
}
