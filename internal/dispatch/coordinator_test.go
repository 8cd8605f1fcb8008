package dispatch_test

import (
	"context"
	"testing"

	"github.com/AquaHorizonGaming/digitarr/internal/dispatch"
	"github.com/AquaHorizonGaming/digitarr/internal/logging"
	"github.com/AquaHorizonGaming/digitarr/internal/overseerr"
	"github.com/AquaHorizonGaming/digitarr/internal/release"
	"github.com/AquaHorizonGaming/digitarr/internal/riven"
)

type fakeRequester struct {
	outcomes map[int64]overseerr.Outcome
	calls    []int64
}

func (f *fakeRequester) Request(_ context.Context, rel release.Release) overseerr.Outcome {
	f.calls = append(f.calls, rel.TMDBID)
	return f.outcomes[rel.TMDBID]
}

type fakeBulk struct {
	enabled bool
	result  riven.BatchResult
	batches [][]release.Release
}

func (f *fakeBulk) Enabled() bool { return f.enabled }

func (f *fakeBulk) AddMovies(_ context.Context, releases []release.Release) riven.BatchResult {
	f.batches = append(f.batches, releases)
	return f.result
}

func sample() []release.Release {
	return []release.Release{
		{MediaType: "movie", TMDBID: 1, Title: "One"},
		{MediaType: "movie", TMDBID: 2, Title: "Two"},
	}
}

func TestDispatchAggregatesBothSinks(t *testing.T) {
	requester := &fakeRequester{outcomes: map[int64]overseerr.Outcome{
		1: {Requested: true},
		2: {Status: 500, Message: "boom"},
	}}
	bulk := &fakeBulk{enabled: true, result: riven.BatchResult{Success: 2}}
	coordinator := dispatch.NewCoordinator(requester, bulk, logging.NewNop())

	results := coordinator.Dispatch(context.Background(), sample())

	if !results["1"][dispatch.SinkOverseerr] {
		t.Fatalf("expected overseerr success for release 1: %#v", results)
	}
	if results["2"][dispatch.SinkOverseerr] {
		t.Fatalf("expected overseerr failure for release 2: %#v", results)
	}
	if !results["1"][dispatch.SinkRiven] || !results["2"][dispatch.SinkRiven] {
		t.Fatalf("expected riven batch success fanned out per item: %#v", results)
	}
	if len(bulk.batches) != 1 || len(bulk.batches[0]) != 2 {
		t.Fatalf("expected one full batch, got %#v", bulk.batches)
	}
}

func TestDispatchRivenFailureDoesNotBlockOverseerr(t *testing.T) {
	requester := &fakeRequester{outcomes: map[int64]overseerr.Outcome{
		1: {Requested: true},
		2: {Requested: true},
	}}
	bulk := &fakeBulk{enabled: true, result: riven.BatchResult{Failed: 2}}
	coordinator := dispatch.NewCoordinator(requester, bulk, logging.NewNop())

	results := coordinator.Dispatch(context.Background(), sample())

	if !results["1"][dispatch.SinkOverseerr] || !results["2"][dispatch.SinkOverseerr] {
		t.Fatalf("expected overseerr outcomes intact: %#v", results)
	}
	if results["1"][dispatch.SinkRiven] || results["2"][dispatch.SinkRiven] {
		t.Fatalf("expected riven failure per item: %#v", results)
	}
	if !results.Notifiable("1") {
		t.Fatal("expected release notifiable through overseerr alone")
	}
}

func TestDispatchSkipsDisabledBulkSink(t *testing.T) {
	requester := &fakeRequester{outcomes: map[int64]overseerr.Outcome{1: {}, 2: {}}}
	bulk := &fakeBulk{enabled: false}
	coordinator := dispatch.NewCoordinator(requester, bulk, logging.NewNop())

	results := coordinator.Dispatch(context.Background(), sample())

	if len(bulk.batches) != 0 {
		t.Fatal("expected no batch sent to disabled sink")
	}
	if _, ok := results["1"][dispatch.SinkRiven]; ok {
		t.Fatalf("expected no riven entry when sink disabled: %#v", results)
	}
}

func TestNotifiableRequiresAtLeastOneSuccess(t *testing.T) {
	requester := &fakeRequester{outcomes: map[int64]overseerr.Outcome{
		1: {Skipped: true},
		2: {Requested: true},
	}}
	coordinator := dispatch.NewCoordinator(requester, &fakeBulk{}, logging.NewNop())

	results := coordinator.Dispatch(context.Background(), sample())

	if results.Notifiable("1") {
		t.Fatal("skipped release must not be notifiable")
	}
	if !results.Notifiable("2") {
		t.Fatal("requested release must be notifiable")
	}
	if results.Notifiable("999") {
		t.Fatal("unknown key must not be notifiable")
	}
}
