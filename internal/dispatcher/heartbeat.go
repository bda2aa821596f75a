package dispatcher

import (
	"sync"
	"time"
)

// heartbeatTicker sends a heartbeat frame every interval until stopped.
// It is a separate timer task sharing the single writer, stopped before
// the first content delta or the stream's end, never both (SPEC_FULL.md
// §9's "heartbeat timer vs stream writer" note; spec.md §5's cancellation
// ordering requirement).
type heartbeatTicker struct {
	once   sync.Once
	stopCh chan struct{}
	done   chan struct{}
}

func newHeartbeatTicker(interval time.Duration, wr *writer) *heartbeatTicker {
	h := &heartbeatTicker{stopCh: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				wr.send(newHeartbeatFrame())
			case <-h.stopCh:
				return
			}
		}
	}()
	return h
}

// stop signals the ticker goroutine and waits for it to exit, so no
// heartbeat frame can be enqueued after stop returns.
func (h *heartbeatTicker) stop() {
	h.once.Do(func() { close(h.stopCh) })
	<-h.done
}
