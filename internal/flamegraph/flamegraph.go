package flamegraph

import (
	"fmt"
	"math"

	"github.com/inter-frhug/react-profiler-comparator/internal/capture"
)

type (
	// Node is one weighted, colored element of the output tree, in the
	// {name, value, children} shape the flame graph widget consumes.
	Node struct {
		Name            string  `json:"name"`
		Value           int64   `json:"value"`
		Children        []*Node `json:"children,omitempty"`
		Tooltip         string  `json:"tooltip,omitempty"`
		BackgroundColor string  `json:"backgroundColor,omitempty"`
		Color           string  `json:"color,omitempty"`

		// ComponentName is the canonical name without the duration suffix
		// and RenderDuration the matched render duration in milliseconds,
		// nil when the component did not re-render during the capture.
		// Carried for downstream consumers (slow-render detection), not
		// part of the wire format.
		ComponentName  string   `json:"-"`
		RenderDuration *float64 `json:"-"`
	}

	treeBuilder struct {
		table    capture.SnapshotTable
		fibers   durationIndex
		measures durationIndex

		// Ids on the current descent path. A malformed export can contain a
		// child cycle; revisiting an id on the same path yields a stub
		// instead of recursing forever.
		path map[uint64]struct{}
	}
)

// BuildTrees converts one profiling export into flame graph trees, one per
// root entry whose snapshot table yields a root. Roots that resolve nothing
// are skipped, so the result can be shorter than DataForRoots. The transform
// is pure: it never mutates the export and shares no state across calls.
func BuildTrees(data *capture.ProfilingData) []*Node {
	trees := make([]*Node, 0)
	if data == nil {
		return trees
	}
	fibers, measures := buildDurationIndexes(data)
	for _, root := range data.DataForRoots {
		id, ok := selectRoot(root.Snapshots)
		if !ok {
			continue
		}
		tb := treeBuilder{
			table:    root.Snapshots,
			fibers:   fibers,
			measures: measures,
			path:     make(map[uint64]struct{}),
		}
		trees = append(trees, tb.build(id))
	}
	return trees
}

func (tb *treeBuilder) build(id uint64) *Node {
	snapshot, ok := tb.table[id]
	if !ok {
		return &Node{Name: unknownName, ComponentName: unknownName, Value: 1}
	}
	if _, seen := tb.path[id]; seen {
		return &Node{Name: unknownName, ComponentName: unknownName, Value: 1}
	}
	tb.path[id] = struct{}{}
	defer delete(tb.path, id)

	// Fragments carry no visual weight of their own; with a single child
	// the child's subtree stands in for them.
	if snapshot.Type == capture.ElementTypeFragment && len(snapshot.Children) == 1 {
		return tb.build(snapshot.Children[0])
	}

	raw := anonymousName
	if snapshot.DisplayName != nil && *snapshot.DisplayName != "" {
		raw = *snapshot.DisplayName
	}
	name := CanonicalName(raw)

	// Durations are matched in traversal-encounter order, parent before its
	// children. Fiber timings are per-instance and take precedence over the
	// label-keyed render measures.
	duration, matched := tb.fibers.pop(name)
	if !matched {
		duration, matched = tb.measures.pop(name)
	}

	node := &Node{ComponentName: name}
	var childTotal int64
	for _, childID := range snapshot.Children {
		child := tb.build(childID)
		childTotal += child.Value
		node.Children = append(node.Children, child)
	}

	switch {
	case matched:
		node.Value = int64(math.Round(duration * 10))
		if node.Value < 1 {
			node.Value = 1
		}
	case childTotal > 0:
		node.Value = childTotal
	default:
		node.Value = 1
	}

	if matched {
		d := duration
		node.RenderDuration = &d
		node.Name = labelWithDuration(name, duration)
		node.Tooltip = fmt.Sprintf("%s rendered in %.2fms", name, duration)
		node.BackgroundColor, node.Color = severityColors(duration)
	} else {
		node.Name = name
		node.Tooltip = fmt.Sprintf("%s did not re-render", name)
		node.BackgroundColor = neutralBackground
		node.Color = neutralColor
	}
	return node
}

func labelWithDuration(name string, duration float64) string {
	if math.Round(duration*10) == 0 {
		return fmt.Sprintf("%s (<0.1ms)", name)
	}
	return fmt.Sprintf("%s (%.1fms)", name, duration)
}
