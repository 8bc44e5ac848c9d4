package flamegraph

import (
	"strings"

	"github.com/inter-frhug/react-profiler-comparator/internal/capture"
)

const (
	routerMarker = "Router"
	appName      = "App"
)

// Root selection is a heuristic, kept as an ordered list of named
// predicates so the policy can change without touching the traversal.
// Predicates see ids in ascending order (capture.SnapshotTable.IDs).
var rootPredicates = []struct {
	name  string
	match func(capture.SnapshotNode) bool
}{
	{
		name: "router_or_app",
		match: func(node capture.SnapshotNode) bool {
			if node.DisplayName == nil {
				return false
			}
			return strings.Contains(*node.DisplayName, routerMarker) || *node.DisplayName == appName
		},
	},
	{
		name: "first_named",
		match: func(node capture.SnapshotNode) bool {
			return node.DisplayName != nil && *node.DisplayName != ""
		},
	},
	{
		name:  "first",
		match: func(capture.SnapshotNode) bool { return true },
	},
}

// selectRoot picks the id to build the tree from. An empty table selects
// nothing; the capture is skipped.
func selectRoot(table capture.SnapshotTable) (uint64, bool) {
	if len(table) == 0 {
		return 0, false
	}
	ids := table.IDs()
	for _, predicate := range rootPredicates {
		for _, id := range ids {
			if predicate.match(table[id]) {
				return id, true
			}
		}
	}
	return 0, false
}
