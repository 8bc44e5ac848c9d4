package capture

import (
	"encoding/json"
	"testing"

	"github.com/inter-frhug/react-profiler-comparator/internal/testutil"
)

func strPtr(s string) *string {
	return &s
}

func TestSnapshotTableUnmarshal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output SnapshotTable
	}{
		{
			name:   "null yields an empty table",
			input:  `null`,
			output: SnapshotTable{},
		},
		{
			name:   "empty array yields an empty table",
			input:  `[]`,
			output: SnapshotTable{},
		},
		{
			name:  "array of pairs",
			input: `[[1, {"id": 1, "displayName": "App", "children": [2]}], [2, {"displayName": "Foo", "children": []}]]`,
			output: SnapshotTable{
				1: {ID: 1, DisplayName: strPtr("App"), Children: []uint64{2}},
				2: {ID: 2, DisplayName: strPtr("Foo"), Children: []uint64{}},
			},
		},
		{
			name:  "id-keyed object",
			input: `{"1": {"id": 1, "displayName": "App", "children": [2]}, "2": {"displayName": "Foo", "children": []}}`,
			output: SnapshotTable{
				1: {ID: 1, DisplayName: strPtr("App"), Children: []uint64{2}},
				2: {ID: 2, DisplayName: strPtr("Foo"), Children: []uint64{}},
			},
		},
		{
			name:  "element type and forget flag decode",
			input: `[[3, {"id": 3, "type": 3, "compiledWithForget": true, "hocDisplayNames": ["withRouter"]}]]`,
			output: SnapshotTable{
				3: {ID: 3, Type: ElementTypeFragment, CompiledWithForget: true, HOCDisplayNames: []string{"withRouter"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var table SnapshotTable
			if err := json.Unmarshal([]byte(tt.input), &table); err != nil {
				t.Fatal(err)
			}
			if diff := testutil.Diff(tt.output, table); diff != "" {
				t.Fatalf("Result mismatch: got - want +\n%s", diff)
			}
		})
	}
}

func TestSnapshotTableIDs(t *testing.T) {
	table := SnapshotTable{
		9: {ID: 9},
		1: {ID: 1},
		4: {ID: 4},
	}
	want := []uint64{1, 4, 9}
	if diff := testutil.Diff(want, table.IDs()); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestDurationPairsUnmarshal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output DurationPairs
	}{
		{
			name:   "null yields nothing",
			input:  `null`,
			output: nil,
		},
		{
			name:  "serialized map entries keep document order",
			input: `[[5, 1.5], [2, 0.4], [5, 2.5]]`,
			output: DurationPairs{
				{ID: 5, Duration: 1.5},
				{ID: 2, Duration: 0.4},
				{ID: 5, Duration: 2.5},
			},
		},
		{
			name:  "object form sorts by id",
			input: `{"5": 1.5, "2": 0.4}`,
			output: DurationPairs{
				{ID: 2, Duration: 0.4},
				{ID: 5, Duration: 1.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pairs DurationPairs
			if err := json.Unmarshal([]byte(tt.input), &pairs); err != nil {
				t.Fatal(err)
			}
			if diff := testutil.Diff(tt.output, pairs); diff != "" {
				t.Fatalf("Result mismatch: got - want +\n%s", diff)
			}
		})
	}
}

// Exports carry sections the transform has no use for; they must decode
// without complaint.
func TestProfilingDataIgnoresUnknownFields(t *testing.T) {
	input := []byte(`{
		"version": 5,
		"dataForRoots": [{
			"rootID": 1,
			"displayName": "App",
			"commitData": [{
				"duration": 3.2,
				"fiberActualDurations": [[1, 3.2]],
				"fiberSelfDurations": [[1, 0.2]],
				"priorityLevel": "Normal",
				"timestamp": 1200,
				"updaters": [{"id": 1}],
				"effectDuration": null,
				"passiveEffectDuration": null
			}],
			"initialTreeBaseDurations": [[1, 5]],
			"operations": [[1, 1, 0]],
			"snapshots": [[1, {"id": 1, "displayName": "App", "children": []}]]
		}],
		"timelineData": [{
			"startTime": 100,
			"duration": 2000,
			"componentMeasures": [{"componentName": "App", "duration": 3.2, "timestamp": 1200, "type": "render", "warning": null}],
			"schedulingEvents": [{"lanes": [4]}],
			"nativeEvents": [],
			"snapshots": [],
			"laneToLabelKeyValueArray": [[4, "Default"]]
		}]
	}`)

	var data ProfilingData
	if err := json.Unmarshal(input, &data); err != nil {
		t.Fatal(err)
	}

	want := ProfilingData{
		Version: 5,
		DataForRoots: []RootData{
			{
				RootID:      1,
				DisplayName: "App",
				CommitData: []CommitData{
					{
						Duration:             3.2,
						FiberActualDurations: DurationPairs{{ID: 1, Duration: 3.2}},
						FiberSelfDurations:   DurationPairs{{ID: 1, Duration: 0.2}},
						PriorityLevel:        "Normal",
						Timestamp:            1200,
					},
				},
				InitialTreeBaseDurations: DurationPairs{{ID: 1, Duration: 5}},
				Snapshots: SnapshotTable{
					1: {ID: 1, DisplayName: strPtr("App"), Children: []uint64{}},
				},
			},
		},
		TimelineData: []TimelineData{
			{
				StartTime: 100,
				Duration:  2000,
				ComponentMeasures: []ComponentMeasure{
					{ComponentName: "App", Duration: 3.2, Timestamp: 1200, Type: MeasureTypeRender},
				},
			},
		},
	}
	if diff := testutil.Diff(want, data); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestSnapshotTableRoundTrip(t *testing.T) {
	table := SnapshotTable{
		1: {ID: 1, DisplayName: strPtr("App"), Children: []uint64{2}},
		2: {ID: 2, DisplayName: strPtr("Foo"), Children: []uint64{}},
	}
	b, err := json.Marshal(table)
	if err != nil {
		t.Fatal(err)
	}
	var decoded SnapshotTable
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if diff := testutil.Diff(table, decoded); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}
