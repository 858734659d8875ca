package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a periodic event so that a stuck run (a rule that never
// returns, a fix loop that never settles) is visible in a live trace.
type Heartbeat struct {
	stop chan struct{}
	once sync.Once
	done sync.WaitGroup
}

// StartHeartbeat starts beating every interval. It returns nil when tracing
// is off or interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if !enabled(t) || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{})}
	h.done.Add(1)
	go h.loop(t, interval)
	return h
}

func (h *Heartbeat) loop(t Tracer, interval time.Duration) {
	defer h.done.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for n := 1; ; n++ {
		select {
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Seq:    seqCounter.Add(1),
				Kind:   KindHeartbeat,
				Scope:  ScopeRun,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.done.Wait()
}
