// Package clip defines captured clipboard items and the content classifier.
package clip

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Item is one captured clipboard value with its derived metadata.
type Item struct {
	// ID is a ULID assigned at creation; never reused
	ID string `json:"id"`

	// Content is the exact captured text
	Content string `json:"content"`

	// ContentType is fixed at creation and never re-evaluated
	ContentType ContentType `json:"content_type"`

	// Timestamp is the capture time (UTC)
	Timestamp time.Time `json:"timestamp"`

	// DeviceID identifies the capturing process run
	DeviceID string `json:"device_id"`

	// Tags are user-assigned labels (not set by the capture pipeline)
	Tags []string `json:"tags"`

	// Transformations are appended in transformer registration order
	Transformations []Transformation `json:"transformations"`
}

// Transformation is one additive transform result attached to an item.
type Transformation struct {
	TransformType TransformType `json:"transform_type"`
	Result        string        `json:"result"`
	Timestamp     time.Time     `json:"timestamp"`
}

// NewItem builds an item for freshly observed content: a new id, the
// classifier's verdict, the current time and the given device id.
func NewItem(content, deviceID string) Item {
	return Item{
		ID:              NewID(),
		Content:         content,
		ContentType:     Classify(content),
		Timestamp:       time.Now().UTC(),
		DeviceID:        deviceID,
		Tags:            []string{},
		Transformations: []Transformation{},
	}
}

// NewID returns a new monotonic ULID string.
func NewID() string {
	return ulid.Make().String()
}

// NewDeviceID returns "<os>-<first uuid group>", e.g. "linux-9f86d081".
// It is generated once per process run and not persisted.
func NewDeviceID() string {
	prefix, _, _ := strings.Cut(uuid.NewString(), "-")
	return fmt.Sprintf("%s-%s", runtime.GOOS, prefix)
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.Tags = append([]string{}, it.Tags...)
	out.Transformations = append([]Transformation{}, it.Transformations...)
	return out
}

// itemJSON avoids recursion through Item's own (un)marshalers.
type itemJSON Item

// MarshalJSON writes tags and transformations as arrays even when nil.
func (it Item) MarshalJSON() ([]byte, error) {
	out := itemJSON(it)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Transformations == nil {
		out.Transformations = []Transformation{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON requires an id and a known content type.
func (it *Item) UnmarshalJSON(data []byte) error {
	var in itemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.ID == "" {
		return fmt.Errorf("item: missing id")
	}
	if !in.ContentType.Valid() {
		return fmt.Errorf("item %s: missing or unknown content_type %q", in.ID, in.ContentType)
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.Transformations == nil {
		in.Transformations = []Transformation{}
	}
	*it = Item(in)
	return nil
}
