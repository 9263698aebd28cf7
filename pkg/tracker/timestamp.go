package tracker

import (
	"encoding/json"
	"fmt"
	"time"
)

// zone-less layout written by older versions of the tracker; fractional
// seconds are accepted by time.Parse even though the layout omits them
const localTimestampLayout = "2006-01-02T15:04:05"

// Timestamp is an ISO-8601 time. It is written as RFC 3339 and read from
// either RFC 3339 or a zone-less local time.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}

	parsed, err := time.ParseInLocation(localTimestampLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
