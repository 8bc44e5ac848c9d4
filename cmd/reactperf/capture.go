package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/inter-frhug/react-profiler-comparator/internal/capture"
	"github.com/inter-frhug/react-profiler-comparator/internal/flamegraph"
	"github.com/inter-frhug/react-profiler-comparator/internal/storageutil"
	"github.com/inter-frhug/react-profiler-comparator/internal/timeutil"
)

type postCaptureResponse struct {
	CaptureID string        `json:"captureID"`
	Received  timeutil.Time `json:"received"`
}

func capturePath(captureID string) string {
	return "captures/" + captureID
}

func (e *environment) postCapture(w http.ResponseWriter, r *http.Request) {
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

	stored := capture.StoredCapture{
		ID:       uuid.New().String(),
		Received: timeutil.Time(time.Now().UTC()),
		Data:     data,
	}

	s = sentry.StartSpan(ctx, "storage.write")
	err = storageutil.CompressedWrite(ctx, e.store, capturePath(stored.ID), stored)
	s.Finish()
	if err != nil {
		if hub != nil {
			hub.CaptureException(err)
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	b, err := json.Marshal(postCaptureResponse{
		CaptureID: stored.ID,
		Received:  stored.Received,
	})
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

func (e *environment) getCaptureFlamegraph(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hub := sentry.GetHubFromContext(ctx)
	ps := httprouter.ParamsFromContext(ctx)
	captureID := ps.ByName("capture_id")

	if hub != nil {
		hub.Scope().SetTag("capture_id", captureID)
	}

	var stored capture.StoredCapture
	s := sentry.StartSpan(ctx, "storage.read")
	err := storageutil.UnmarshalCompressed(ctx, e.store, capturePath(captureID), &stored)
	s.Finish()
	if err != nil {
		if errors.Is(err, storageutil.ErrObjectNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if hub != nil {
			hub.CaptureException(err)
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s = sentry.StartSpan(ctx, "processing")
	s.Description = "Building flame graph trees"
	trees := flamegraph.BuildTrees(&stored.Data)
	s.Finish()

	e.dumpTrees(captureID, trees)
	e.emitOccurrences(ctx, captureID, trees)

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
