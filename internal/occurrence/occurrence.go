package occurrence

import (
	"crypto/md5"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"

	"github.com/inter-frhug/react-profiler-comparator/internal/flamegraph"
)

// SlowRenderThresholdMS matches the most severe flame graph bucket. A
// component render at or above it is worth surfacing on its own.
const SlowRenderThresholdMS = 5.0

const (
	slowRenderTitle IssueTitle = "Slow Component Render"

	EvidenceNameComponent EvidenceName = "Component"
	EvidenceNameDuration  EvidenceName = "Render duration"
)

type (
	EvidenceName string
	IssueTitle   string

	Evidence struct {
		Name      EvidenceName `json:"name"`
		Value     string       `json:"value"`
		Important bool         `json:"important"`
	}

	// Occurrence represents one slow component render detected in a built
	// flame graph.
	Occurrence struct {
		CaptureID       string     `json:"capture_id,omitempty"`
		Component       string     `json:"component"`
		DetectionTime   time.Time  `json:"detection_time"`
		DurationMS      float64    `json:"duration_ms"`
		EvidenceDisplay []Evidence `json:"evidence_display,omitempty"`
		Fingerprint     string     `json:"fingerprint"`
		ID              string     `json:"id"`
		IssueTitle      IssueTitle `json:"issue_title"`
		Level           string     `json:"level,omitempty"`
		Subtitle        string     `json:"subtitle"`
	}
)

// Detect walks the built trees and returns one occurrence per node whose
// matched render duration reaches the slow-render threshold. Trees without
// matched durations yield nothing.
func Detect(trees []*flamegraph.Node, captureID string) []Occurrence {
	var occurrences []Occurrence
	for _, tree := range trees {
		detectNode(tree, captureID, &occurrences)
	}
	return occurrences
}

func detectNode(node *flamegraph.Node, captureID string, occurrences *[]Occurrence) {
	if node == nil {
		return
	}
	if node.RenderDuration != nil && *node.RenderDuration >= SlowRenderThresholdMS {
		*occurrences = append(*occurrences, NewOccurrence(node, captureID))
	}
	for _, child := range node.Children {
		detectNode(child, captureID, occurrences)
	}
}

// NewOccurrence builds the occurrence record for one slow node. The
// fingerprint groups repeats of the same component within a capture.
func NewOccurrence(node *flamegraph.Node, captureID string) Occurrence {
	var duration float64
	if node.RenderDuration != nil {
		duration = *node.RenderDuration
	}
	component := node.ComponentName
	h := md5.New()
	_, _ = io.WriteString(h, captureID)
	_, _ = io.WriteString(h, string(slowRenderTitle))
	_, _ = io.WriteString(h, component)
	return Occurrence{
		CaptureID:     captureID,
		Component:     component,
		DetectionTime: time.Now().UTC(),
		DurationMS:    duration,
		EvidenceDisplay: []Evidence{
			{
				Name:      EvidenceNameComponent,
				Value:     component,
				Important: true,
			},
			{
				Name:  EvidenceNameDuration,
				Value: fmt.Sprintf("%.2fms", duration),
			},
		},
		Fingerprint: fmt.Sprintf("%x", h.Sum(nil)),
		ID:          strings.ReplaceAll(uuid.New().String(), "-", ""),
		IssueTitle:  slowRenderTitle,
		Level:       "info",
		Subtitle:    fmt.Sprintf("%s took %.2fms to render", component, duration),
	}
}

// Save implements bigquery.ValueSaver for the occurrence analytics table.
func (o *Occurrence) Save() (map[string]bigquery.Value, string, error) {
	return map[string]bigquery.Value{
		"capture_id":  o.CaptureID,
		"component":   o.Component,
		"detected_at": o.DetectionTime,
		"duration_ms": o.DurationMS,
		"fingerprint": o.Fingerprint,
		"id":          o.ID,
	}, bigquery.NoDedupeID, nil
}
