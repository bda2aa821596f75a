package modelstream

import (
	"context"
	"testing"
	"time"
)

func TestInstrumented_RecordsDeltaCountAndInvokesOnDoneOnce(t *testing.T) {
	fake := &Fake{Deltas: []string{"a", "b", "c"}}
	raw, err := fake.Stream(context.Background(), Params{})
	if err != nil {
		t.Fatal(err)
	}

	inst := Instrumented{Streamer: fake}
	calls := 0
	var gotMetrics Metrics
	out := inst.StreamWithMetrics(time.Now(), raw, func(m Metrics) {
		calls++
		gotMetrics = m
	})

	var seen []Event
	for ev := range out {
		seen = append(seen, ev)
	}

	if calls != 1 {
		t.Errorf("onDone called %d times, want 1", calls)
	}
	if gotMetrics.TotalDeltas != 3 {
		t.Errorf("TotalDeltas = %d, want 3", gotMetrics.TotalDeltas)
	}
	if len(seen) != 4 { // 3 deltas + stop
		t.Errorf("forwarded %d events, want 4", len(seen))
	}
}
