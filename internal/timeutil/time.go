package timeutil

import (
	"encoding/json"
	"strconv"
	"time"
)

// Time decodes from either an RFC3339 string or a unix-milliseconds number.
// Profiling tooling emits millisecond timestamps; our own API emits RFC3339.
type Time time.Time

func (t *Time) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == "{}" {
		return nil
	}
	if s[0] == '"' {
		tt, err := time.Parse(`"`+time.RFC3339+`"`, s)
		if err != nil {
			return err
		}
		*t = Time(tt)
	} else {
		ms, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*t = Time(time.UnixMilli(int64(ms)).UTC())
	}
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t))
}

func (t Time) Time() time.Time {
	return time.Time(t)
}
