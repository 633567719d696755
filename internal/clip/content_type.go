package clip

import (
	"encoding/json"
	"fmt"
)

// ContentType is the classification tag assigned to an item at capture time.
// It serializes as its bare variant name.
type ContentType string

const (
	TypeText    ContentType = "Text"
	TypeURL     ContentType = "Url"
	TypeCode    ContentType = "Code"
	TypeNumber  ContentType = "Number"
	TypeDate    ContentType = "Date"
	TypeAddress ContentType = "Address"
	TypeEmail   ContentType = "Email"
	TypeJSON    ContentType = "Json"
	TypeCSV     ContentType = "Csv"
	TypeImage   ContentType = "Image"
	TypeAudio   ContentType = "Audio"
)

// ContentTypes lists every known content type. Code, Date, Address, Image and
// Audio are reserved: Classify never produces them.
var ContentTypes = []ContentType{
	TypeText, TypeURL, TypeCode, TypeNumber, TypeDate, TypeAddress,
	TypeEmail, TypeJSON, TypeCSV, TypeImage, TypeAudio,
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects names outside the closed set.
func (t *ContentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("content_type: %w", err)
	}
	ct := ContentType(s)
	if !ct.Valid() {
		return fmt.Errorf("content_type: unknown variant %q", s)
	}
	*t = ct
	return nil
}
