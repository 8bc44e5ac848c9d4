package main

import (
	"context"

	"github.com/getsentry/sentry-go"

	"github.com/inter-frhug/react-profiler-comparator/internal/flamegraph"
	"github.com/inter-frhug/react-profiler-comparator/internal/occurrence"
)

// emitOccurrences surfaces slow component renders found in the built trees.
// Emission is best-effort: failures are captured and never affect the
// response.
func (e *environment) emitOccurrences(ctx context.Context, captureID string, trees []*flamegraph.Node) {
	if e.occurrencesWriter == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	occurrences := occurrence.Detect(trees, captureID)
	if len(occurrences) == 0 {
		return
	}
	messages, err := occurrence.GenerateKafkaMessageBatch(occurrences)
	if err != nil {
		if hub != nil {
			hub.CaptureException(err)
		}
		return
	}
	err = e.occurrencesWriter.WriteMessages(ctx, messages...)
	if err != nil {
		if hub != nil {
			hub.CaptureException(err)
		}
	}
	if e.occurrencesInserter != nil {
		savers := make([]*occurrence.Occurrence, 0, len(occurrences))
		for i := range occurrences {
			savers = append(savers, &occurrences[i])
		}
		err = e.occurrencesInserter.Put(ctx, savers)
		if err != nil {
			if hub != nil {
				hub.CaptureException(err)
			}
		}
	}
}
