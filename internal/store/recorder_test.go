package store

import (
	"context"
	"testing"
	"time"

	"github.com/roach88/tickguess/internal/testutil"
)

func TestRecorder_AppendsInSeqOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	sched := testutil.NewVirtualScheduler()

	rec, err := NewRecorder(ctx, s, "sess-1", testutil.NewDeterministicClock(), sched.Now, map[string]int{"bound": 3})
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	rec.Observe("state", map[string]int{"count": 0})
	sched.Advance(time.Second)
	rec.Observe("tick", 0)
	rec.Observe("state", map[string]int{"count": 1})

	if rec.Err() != nil {
		t.Fatalf("unexpected write error: %v", rec.Err())
	}

	obs, err := s.ReadObservations(ctx, rec.Session(), "")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		label   string
		value   string
		elapsed time.Duration
	}{
		{"state", `{"count":0}`, 0},
		{"tick", `0`, time.Second},
		{"state", `{"count":1}`, time.Second},
	}
	if len(obs) != len(want) {
		t.Fatalf("got %d observations, want %d", len(obs), len(want))
	}
	for i, w := range want {
		if obs[i].Label != w.label || string(obs[i].Value) != w.value || obs[i].Elapsed != w.elapsed {
			t.Errorf("observation %d = %+v, want %+v", i, obs[i], w)
		}
	}
}

func TestRecorder_WriteFailureIsKeptNotRaised(t *testing.T) {
	s := createTestStore(t)
	rec, err := NewRecorder(context.Background(), s, "sess-1", testutil.NewDeterministicClock(), time.Now, struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	rec.Observe("bad", func() {})
	rec.Observe("tick", 1)

	if rec.Err() == nil {
		t.Error("expected the unmarshalable value to be reported")
	}
	obs, err := s.ReadObservations(context.Background(), "sess-1", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 1 || obs[0].Label != "tick" {
		t.Errorf("observations = %+v", obs)
	}
}
