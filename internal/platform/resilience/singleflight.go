package resilience

import "sync"

// Flight collapses concurrent calls for the same key into one execution.
// Later callers block until the leader finishes and share its result.
type Flight struct {
	mu     sync.Mutex
	active map[string]*flightCall
}

type flightCall struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. The bool reports whether the result
// was shared from another caller's execution.
func (f *Flight) Do(key string, fn func() (any, error)) (any, error, bool) {
	f.mu.Lock()
	if f.active == nil {
		f.active = make(map[string]*flightCall)
	}

	if c, ok := f.active[key]; ok {
		f.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}

	c := &flightCall{done: make(chan struct{})}
	f.active[key] = c
	f.mu.Unlock()

	c.val, c.err = fn()
	close(c.done)

	f.mu.Lock()
	delete(f.active, key)
	f.mu.Unlock()

	return c.val, c.err, false
}
