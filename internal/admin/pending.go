package admin

import "sync"

// inflight tracks the completion channels of operations a controller started
type inflight struct {
	mu      sync.Mutex
	pending []<-chan struct{}
}

func (f *inflight) add(done <-chan struct{}) <-chan struct{} {
	f.mu.Lock()
	f.pending = append(f.pending, done)
	f.mu.Unlock()
	return done
}

// wait blocks until every tracked operation, including ones started while
// waiting, has settled.
func (f *inflight) wait() {
	for {
		f.mu.Lock()
		if len(f.pending) == 0 {
			f.mu.Unlock()
			return
		}
		done := f.pending[0]
		f.pending = f.pending[1:]
		f.mu.Unlock()

		<-done
	}
}

// after runs fn once done is closed and tracks fn's completion too
func (f *inflight) after(done <-chan struct{}, fn func()) {
	finished := make(chan struct{})
	f.add(finished)
	go func() {
		defer close(finished)
		<-done
		fn()
	}()
}
