package flamegraph

import (
	"testing"

	"github.com/inter-frhug/react-profiler-comparator/internal/capture"
)

func TestSelectRoot(t *testing.T) {
	tests := []struct {
		name  string
		table capture.SnapshotTable
		id    uint64
		ok    bool
	}{
		{
			name:  "empty table selects nothing",
			table: capture.SnapshotTable{},
			ok:    false,
		},
		{
			name: "App wins over other named nodes",
			table: capture.SnapshotTable{
				1: {ID: 1, DisplayName: strPtr("Header")},
				2: {ID: 2, DisplayName: strPtr("App")},
			},
			id: 2,
			ok: true,
		},
		{
			name: "router marker wins by substring",
			table: capture.SnapshotTable{
				1: {ID: 1, DisplayName: strPtr("Header")},
				2: {ID: 2, DisplayName: strPtr("BrowserRouter")},
			},
			id: 2,
			ok: true,
		},
		{
			name: "first named node when no marker matches",
			table: capture.SnapshotTable{
				1: {ID: 1},
				2: {ID: 2, DisplayName: strPtr("Header")},
				3: {ID: 3, DisplayName: strPtr("Footer")},
			},
			id: 2,
			ok: true,
		},
		{
			name: "first id when nothing is named",
			table: capture.SnapshotTable{
				4: {ID: 4},
				7: {ID: 7},
			},
			id: 4,
			ok: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := selectRoot(tt.table)
			if id != tt.id || ok != tt.ok {
				t.Fatalf("got (%d, %t), want (%d, %t)", id, ok, tt.id, tt.ok)
			}
		})
	}
}
