package flamegraph

import (
	"testing"

	"github.com/inter-frhug/react-profiler-comparator/internal/capture"
	"github.com/inter-frhug/react-profiler-comparator/internal/testutil"
)

func TestBuildDurationIndexes(t *testing.T) {
	data := capture.ProfilingData{
		DataForRoots: []capture.RootData{
			{
				RootID: 1,
				CommitData: []capture.CommitData{
					{FiberActualDurations: capture.DurationPairs{{ID: 2, Duration: 1.2}, {ID: 9, Duration: 4}}},
					{FiberActualDurations: capture.DurationPairs{{ID: 2, Duration: 0.8}, {ID: 3, Duration: 2.5}}},
				},
				Snapshots: capture.SnapshotTable{
					1: {ID: 1, DisplayName: strPtr("App"), Children: []uint64{2, 3}},
					2: {ID: 2, DisplayName: strPtr("Foo")},
					3: {ID: 3, DisplayName: strPtr("Memo(Bar)")},
					// id 9 is referenced by a commit but has no snapshot
				},
			},
		},
		TimelineData: []capture.TimelineData{
			{ComponentMeasures: []capture.ComponentMeasure{
				measure("Foo", 1),
				{ComponentName: "Foo", Duration: 9, Type: capture.MeasureTypeLayoutEffect},
				measure("Memo(Bar)", 2),
				measure("Foo", 3),
			}},
		},
	}

	fibers, measures := buildDurationIndexes(&data)

	wantFibers := durationIndex{
		"Foo":        {1.2, 0.8},
		"Bar (Memo)": {2.5},
	}
	if diff := testutil.Diff(wantFibers, fibers); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}

	wantMeasures := durationIndex{
		"Foo":        {1, 3},
		"Bar (Memo)": {2},
	}
	if diff := testutil.Diff(wantMeasures, measures); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestDurationIndexPop(t *testing.T) {
	di := make(durationIndex)
	di.push("Foo", 1)
	di.push("Foo", 2)

	if d, ok := di.pop("Foo"); !ok || d != 1 {
		t.Fatalf("got (%f, %t), want (1, true)", d, ok)
	}
	if d, ok := di.pop("Foo"); !ok || d != 2 {
		t.Fatalf("got (%f, %t), want (2, true)", d, ok)
	}
	if _, ok := di.pop("Foo"); ok {
		t.Fatal("queue should be drained")
	}
	if _, ok := di.pop("Bar"); ok {
		t.Fatal("unknown name should not match")
	}
}
