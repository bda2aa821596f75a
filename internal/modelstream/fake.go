package modelstream

import "context"

// Fake is an in-memory Streamer for tests: it replays a fixed sequence of
// deltas then stops, or emits an error partway through when Err is set.
type Fake struct {
	Deltas   []string
	Err      error
	ErrAfter int // emit Err after this many deltas (0 = before any delta)
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Stream(ctx context.Context, params Params) (<-chan Event, error) {
	out := make(chan Event, len(f.Deltas)+1)
	go func() {
		defer close(out)
		for i, d := range f.Deltas {
			if f.Err != nil && i == f.ErrAfter {
				out <- Event{Type: EventError, Err: f.Err}
				return
			}
			out <- Event{Type: EventDelta, Delta: d}
		}
		if f.Err != nil && f.ErrAfter >= len(f.Deltas) {
			out <- Event{Type: EventError, Err: f.Err}
			return
		}
		out <- Event{Type: EventStop}
	}()
	return out, nil
}
