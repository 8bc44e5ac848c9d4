package main

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/inter-frhug/react-profiler-comparator/internal/capture"
	"github.com/inter-frhug/react-profiler-comparator/internal/flamegraph"
)

func (e *environment) postFlamegraph(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)

	var data capture.ProfilingData
	s := sentry.StartSpan(ctx, "processing")
	s.Description = "Decoding profiling export"
	err := json.NewDecoder(r.Body).Decode(&data)
	s.Finish()
	if err != nil {
		if hub != nil {
			hub.CaptureException(err)
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s = sentry.StartSpan(ctx, "processing")
	s.Description = "Building flame graph trees"
	trees := flamegraph.BuildTrees(&data)
	s.Finish()

	e.dumpTrees("", trees)
	e.emitOccurrences(ctx, "", trees)

	s = sentry.StartSpan(ctx, "json.marshal")
	defer s.Finish()
	b, err := json.Marshal(trees)
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

// dumpTrees is the injectable diagnostic: a full dump of the transform
// result at debug level, off unless REACTPERF_DEBUG_DUMP is set.
func (e *environment) dumpTrees(captureID string, trees []*flamegraph.Node) {
	if !e.config.DebugDump {
		return
	}
	b, err := json.Marshal(trees)
	if err != nil {
		return
	}
	log.Debug().Str("capture_id", captureID).RawJSON("trees", b).Msg("flame graph trees")
}
