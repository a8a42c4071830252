package portal

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RawEnrollment is one completed course event as delivered by the MyCampus
// enrollment feed.
type RawEnrollment struct {
	// Number is the course identifier; its second underscore segment encodes
	// the module short name.
	Number string `json:"anlassnumber"`
	// From is the occurrence date as an ISO string.
	From string `json:"from"`
	// Ects is nil for feed rows that are not real modules.
	Ects *float64 `json:"ects"`
	// Note is the numeric mark; the feed delivers it as number or string.
	Note Mark `json:"note"`
	// Grade is the letter grade label.
	Grade string `json:"grade"`
}

// Mark is a numeric mark that MyCampus serializes inconsistently: as a JSON
// number, a numeric string, a non-numeric string, or null. Non-numeric and
// null values unmarshal as invalid rather than failing the whole feed.
type Mark struct {
	Value float64
	Valid bool
}

func (m *Mark) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = Mark{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*m = Mark{}
			return nil
		}
		*m = Mark{Value: v, Valid: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*m = Mark{}
		return nil
	}
	*m = Mark{Value: v, Valid: true}
	return nil
}

func (m Mark) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}
