package main

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	json "github.com/goccy/go-json"

	"github.com/inter-frhug/react-profiler-comparator/internal/capture"
	"github.com/inter-frhug/react-profiler-comparator/internal/errorutil"
	"github.com/inter-frhug/react-profiler-comparator/internal/flamegraph"
)

type (
	postCompareBody struct {
		Before *capture.ProfilingData `json:"before"`
		After  *capture.ProfilingData `json:"after"`
	}

	postCompareResponse struct {
		Before []*flamegraph.Node `json:"before"`
		After  []*flamegraph.Node `json:"after"`
	}
)

// postCompare transforms two exports side by side. Either slot may be null,
// standing in for a file that failed to decode upstream; that slot comes
// back null. Each side is an independent transform invocation.
func (e *environment) postCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	var body postCompareBody
	s := sentry.StartSpan(ctx, "processing")
	s.Description = "Decoding profiling exports"
	err := json.NewDecoder(r.Body).Decode(&body)
	s.Finish()
	if err != nil {
		if hub != nil {
			hub.CaptureException(err)
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if body.Before == nil && body.After == nil {
		if hub != nil {
			hub.CaptureException(errorutil.ErrNoCaptureData)
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s = sentry.StartSpan(ctx, "processing")
	s.Description = "Building flame graph trees"
	var response postCompareResponse
	if body.Before != nil {
		response.Before = flamegraph.BuildTrees(body.Before)
		e.dumpTrees("before", response.Before)
	}
	if body.After != nil {
		response.After = flamegraph.BuildTrees(body.After)
		e.dumpTrees("after", response.After)
	}
	s.Finish()

	s = sentry.StartSpan(ctx, "json.marshal")
	defer s.Finish()
	b, err := json.Marshal(response)
	if err != nil {
		if hub != nil {
			hub.CaptureException(err)
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
