package modelstream

import "time"

// Metrics captures the latency telemetry spec.md §4.4 requires: first-delta
// latency in milliseconds from request start, and total delta count.
type Metrics struct {
	FirstTokenMs int64
	TotalDeltas  int
	TotalTimeMs  int64
}

// Instrumented embeds a Streamer; its Stream method is the embedded
// streamer's, unchanged. Metrics are recorded only by StreamWithMetrics,
// which observes an event channel the caller passes in. It does not alter
// the event sequence.
type Instrumented struct {
	Streamer
}

// StreamWithMetrics proxies every event of the given channel through a new
// channel unchanged, recording timings, and invokes onDone exactly once
// when the source channel closes. It does not call the embedded streamer.
func (i Instrumented) StreamWithMetrics(ctxStart time.Time, events <-chan Event, onDone func(Metrics)) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		var m Metrics
		firstSeen := false
		for ev := range events {
			if ev.Type == EventDelta && !firstSeen {
				firstSeen = true
				m.FirstTokenMs = time.Since(ctxStart).Milliseconds()
			}
			if ev.Type == EventDelta {
				m.TotalDeltas++
			}
			out <- ev
		}
		m.TotalTimeMs = time.Since(ctxStart).Milliseconds()
		if onDone != nil {
			onDone(m)
		}
	}()
	return out
}
