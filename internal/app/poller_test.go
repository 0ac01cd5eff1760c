package app

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/quay/internal/dataset"
	"github.com/five82/quay/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 100; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeSource struct {
	ds      *dataset.Dataset
	mod     time.Time
	loadErr error
	statErr error
	loads   int
}

func (f *fakeSource) Load() (*dataset.Dataset, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.ds, nil
}

func (f *fakeSource) ModTime() (time.Time, error) {
	return f.mod, f.statErr
}

func TestPoller_ReloadsOnlyOnChange(t *testing.T) {
	store := &state.Store{}
	src := &fakeSource{
		ds:  &dataset.Dataset{Users: []dataset.User{{Name: "Ada"}}},
		mod: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	p := &poller{store: store, source: src}

	if !p.refresh() {
		t.Fatal("first refresh should load")
	}
	if p.refresh() {
		t.Fatal("unchanged source should not reload")
	}
	if src.loads != 1 {
		t.Fatalf("loads = %d, want 1", src.loads)
	}

	src.mod = src.mod.Add(time.Minute)
	src.ds = &dataset.Dataset{Users: []dataset.User{{Name: "Grace"}}}
	if !p.refresh() {
		t.Fatal("changed source should reload")
	}
	snap := store.Snapshot()
	if snap.Version != 2 || snap.Data.Users[0].Name != "Grace" {
		t.Fatalf("snapshot = version %d users %#v, want version 2 with Grace", snap.Version, snap.Data.Users)
	}
}

func TestPoller_FailureKeepsDataAndRetries(t *testing.T) {
	store := &state.Store{}
	src := &fakeSource{ds: &dataset.Dataset{Bills: []dataset.Bill{{Number: "INV-1"}}}}
	p := &poller{store: store, source: src}
	p.refresh()

	src.mod = src.mod.Add(time.Second)
	src.loadErr = errors.New("disk on fire")
	p.refresh()
	p.refresh()

	if p.failures != 2 {
		t.Fatalf("failures = %d, want 2", p.failures)
	}
	snap := store.Snapshot()
	if !snap.IsStale() || snap.Data.Bills[0].Number != "INV-1" {
		t.Fatalf("snapshot = %#v, want stale with previous bills", snap)
	}

	// A failed attempt forces a reload even though ModTime no longer moves.
	src.loadErr = nil
	if !p.refresh() {
		t.Fatal("refresh after failure should reload")
	}
	if p.failures != 0 {
		t.Fatalf("failures = %d, want 0 after success", p.failures)
	}
}

func TestPoller_StatErrorCountsAsFailure(t *testing.T) {
	store := &state.Store{}
	src := &fakeSource{statErr: errors.New("gone")}
	p := &poller{store: store, source: src}

	if p.refresh() {
		t.Fatal("refresh should fail")
	}
	if src.loads != 0 {
		t.Fatalf("loads = %d, want 0", src.loads)
	}
	if err := store.Snapshot().LastError; err == nil || err.Error() != "gone" {
		t.Fatalf("LastError = %v, want gone", err)
	}
}
