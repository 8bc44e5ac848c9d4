package capture

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/inter-frhug/react-profiler-comparator/internal/timeutil"
)

const (
	// MeasureTypeRender tags the component measures relevant to render timing.
	// Other measure types (layout effects, passive effects) are carried but
	// ignored by the flame graph transform.
	MeasureTypeRender       MeasureType = "render"
	MeasureTypeLayoutEffect MeasureType = "layout effect"
	MeasureTypePassive      MeasureType = "passive effect"

	ElementTypeClass         ElementType = 1
	ElementTypeContext       ElementType = 2
	ElementTypeFragment      ElementType = 3
	ElementTypeFunction      ElementType = 5
	ElementTypeForwardRef    ElementType = 6
	ElementTypeHostComponent ElementType = 7
	ElementTypeMemo          ElementType = 8
	ElementTypeOther         ElementType = 9
	ElementTypeProfiler      ElementType = 10
	ElementTypeRoot          ElementType = 11
	ElementTypeSuspense      ElementType = 12
)

type (
	ElementType int
	MeasureType string

	// ProfilingData is one profiling session as exported by the devtools
	// instrumentation. Exports carry more sections than we list here
	// (scheduling events, native events, snapshots by lane); unknown fields
	// are accepted and dropped on decode.
	ProfilingData struct {
		Version      int            `json:"version"`
		DataForRoots []RootData     `json:"dataForRoots"`
		TimelineData []TimelineData `json:"timelineData"`
	}

	// RootData is the capture for a single mounted root.
	RootData struct {
		RootID                   uint64        `json:"rootID"`
		DisplayName              string        `json:"displayName"`
		CommitData               []CommitData  `json:"commitData"`
		InitialTreeBaseDurations DurationPairs `json:"initialTreeBaseDurations"`
		Snapshots                SnapshotTable `json:"snapshots"`
	}

	CommitData struct {
		Duration             float64       `json:"duration"`
		FiberActualDurations DurationPairs `json:"fiberActualDurations"`
		FiberSelfDurations   DurationPairs `json:"fiberSelfDurations"`
		PriorityLevel        string        `json:"priorityLevel,omitempty"`
		Timestamp            float64       `json:"timestamp"`
	}

	TimelineData struct {
		StartTime         float64            `json:"startTime"`
		Duration          float64            `json:"duration"`
		ComponentMeasures []ComponentMeasure `json:"componentMeasures"`
	}

	// ComponentMeasure is one observed component event. The same component
	// name appears once per render across commits.
	ComponentMeasure struct {
		ComponentName string      `json:"componentName"`
		Duration      float64     `json:"duration"`
		Timestamp     float64     `json:"timestamp"`
		Type          MeasureType `json:"type"`
		Warning       *string     `json:"warning"`
	}

	// SnapshotNode is the structural record of one rendered element at
	// capture time. Immutable, only ever read by the transform.
	SnapshotNode struct {
		ID                 uint64      `json:"id"`
		Children           []uint64    `json:"children"`
		DisplayName        *string     `json:"displayName"`
		HOCDisplayNames    []string    `json:"hocDisplayNames"`
		Key                *string     `json:"key"`
		Type               ElementType `json:"type"`
		CompiledWithForget bool        `json:"compiledWithForget"`
	}

	// SnapshotTable maps element id to its snapshot. The export encodes it
	// either as an array of [id, node] entries (a serialized Map) or as an
	// id-keyed object; both decode into the same table.
	SnapshotTable map[uint64]SnapshotNode

	DurationPair struct {
		ID       uint64
		Duration float64
	}

	// DurationPairs preserves document order; the transform's duration
	// matching depends on it.
	DurationPairs []DurationPair

	// StoredCapture wraps an export persisted through the captures API.
	StoredCapture struct {
		ID       string        `json:"id"`
		Received timeutil.Time `json:"received"`
		Data     ProfilingData `json:"data"`
	}
)

// UnmarshalJSON accepts both snapshot encodings and normalizes to a single
// id-keyed table. Null or empty input yields an empty table, which
// downstream stages treat as "no root available".
func (t *SnapshotTable) UnmarshalJSON(b []byte) error {
	*t = make(SnapshotTable)
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		for _, entry := range entries {
			var pair []json.RawMessage
			if err := json.Unmarshal(entry, &pair); err != nil {
				return err
			}
			if len(pair) != 2 {
				continue
			}
			var id uint64
			if err := json.Unmarshal(pair[0], &id); err != nil {
				return err
			}
			var node SnapshotNode
			if err := json.Unmarshal(pair[1], &node); err != nil {
				return err
			}
			if node.ID == 0 {
				node.ID = id
			}
			(*t)[id] = node
		}
		return nil
	}
	var keyed map[string]SnapshotNode
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return err
	}
	for k, node := range keyed {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		if node.ID == 0 {
			node.ID = id
		}
		(*t)[id] = node
	}
	return nil
}

// MarshalJSON always emits the id-keyed object form.
func (t SnapshotTable) MarshalJSON() ([]byte, error) {
	keyed := make(map[string]SnapshotNode, len(t))
	for id, node := range t {
		keyed[strconv.FormatUint(id, 10)] = node
	}
	return json.Marshal(keyed)
}

// IDs returns the table's ids in ascending order. Go maps have no stable
// iteration order, so every spot that needs "table-iteration order" uses
// this instead.
func (t SnapshotTable) IDs() []uint64 {
	ids := make([]uint64, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// UnmarshalJSON accepts both the serialized-Map form [[id, duration], ...]
// and the id-keyed object form, keeping document order for the former. The
// object form has no document order; entries are sorted by id.
func (p *DurationPairs) UnmarshalJSON(b []byte) error {
	*p = nil
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		var entries [][2]float64
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		for _, entry := range entries {
			*p = append(*p, DurationPair{ID: uint64(entry[0]), Duration: entry[1]})
		}
		return nil
	}
	var keyed map[string]float64
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return err
	}
	for k, d := range keyed {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		*p = append(*p, DurationPair{ID: id, Duration: d})
	}
	sort.Slice(*p, func(i, j int) bool { return (*p)[i].ID < (*p)[j].ID })
	return nil
}

func (p DurationPairs) MarshalJSON() ([]byte, error) {
	entries := make([][2]float64, 0, len(p))
	for _, pair := range p {
		entries = append(entries, [2]float64{float64(pair.ID), pair.Duration})
	}
	return json.Marshal(entries)
}
