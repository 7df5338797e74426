package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DateRange is either a free-form date string ("2019", "Jan 2022") or a
// structured range. Text is set only for the free-form spelling.
type DateRange struct {
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Present bool   `json:"present,omitempty"`
	Text    string `json:"-"`
}

// PlainDate returns a free-form date.
func PlainDate(s string) *DateRange { return &DateRange{Text: s} }

// Between returns a closed range.
func Between(start, end string) *DateRange { return &DateRange{Start: start, End: end} }

// Since returns a range that is still ongoing.
func Since(start string) *DateRange { return &DateRange{Start: start, Present: true} }

func (d DateRange) structured() bool {
	return d.Start != "" || d.End != "" || d.Present
}

// UnmarshalJSON accepts a string or an object with start/end/present.
func (d *DateRange) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = DateRange{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DateRange{Text: s}
		return nil
	}
	type plain DateRange
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("date must be a string or {start,end,present}: %w", err)
	}
	*d = DateRange(p)
	return nil
}

// MarshalJSON writes free-form dates back as strings.
func (d DateRange) MarshalJSON() ([]byte, error) {
	if !d.structured() {
		return json.Marshal(d.Text)
	}
	type plain DateRange
	return json.Marshal(plain(d))
}

// FormatDateRange renders a date for display. It never fails: a nil range
// yields "", a free-form date is returned unchanged, an ongoing range ends
// in "Present".
func FormatDateRange(d *DateRange) string {
	if d == nil {
		return ""
	}
	if !d.structured() {
		return d.Text
	}
	if d.Present {
		return d.Start + " - Present"
	}
	s := d.Start
	if d.End != "" {
		s += " - " + d.End
	}
	return strings.TrimSpace(s)
}
