package flamegraph

import (
	"github.com/inter-frhug/react-profiler-comparator/internal/capture"
)

// durationIndex holds, per canonical component name, the durations observed
// for that name in document order. Queues are drained front-first while the
// tree is built: the Nth instance of a name encountered during traversal
// matches the Nth recorded duration. Consumption is destructive; once a
// queue runs dry, later instances count as "did not re-render".
type durationIndex map[string][]float64

func (di durationIndex) push(name string, duration float64) {
	di[name] = append(di[name], duration)
}

func (di durationIndex) pop(name string) (float64, bool) {
	queue, ok := di[name]
	if !ok || len(queue) == 0 {
		return 0, false
	}
	di[name] = queue[1:]
	return queue[0], true
}

// buildDurationIndexes scans every timing stream of the export once, in
// document order, and builds the two indices the tree builder drains:
// per-commit fiber actual durations (resolved to names through each root's
// own snapshot table) and component render measures. No sorting, no
// deduplication; order is load-bearing.
func buildDurationIndexes(data *capture.ProfilingData) (fibers, measures durationIndex) {
	fibers = make(durationIndex)
	measures = make(durationIndex)
	for _, root := range data.DataForRoots {
		for _, commit := range root.CommitData {
			for _, pair := range commit.FiberActualDurations {
				node, ok := root.Snapshots[pair.ID]
				if !ok || node.DisplayName == nil || *node.DisplayName == "" {
					continue
				}
				fibers.push(CanonicalName(*node.DisplayName), pair.Duration)
			}
		}
	}
	for _, timeline := range data.TimelineData {
		for _, measure := range timeline.ComponentMeasures {
			if measure.Type != capture.MeasureTypeRender {
				continue
			}
			measures.push(CanonicalName(measure.ComponentName), measure.Duration)
		}
	}
	return fibers, measures
}
