package domain

import (
	"encoding/json"
	"strings"
)

// AttractionResult is one recommended destination. Known fields are typed;
// anything the service sends beyond them is kept verbatim in Extra.
type AttractionResult struct {
	ID       *string
	Name     *string
	URL      *string
	Phone    *string
	Address  *string
	Tags     *string
	Score    *float64
	ImageURL *string
	Extra    map[string]json.RawMessage
}

func (a AttractionResult) NameOrEmpty() string {
	return deref(a.Name)
}

func (a AttractionResult) ImageURLOrEmpty() string {
	return strings.TrimSpace(deref(a.ImageURL))
}

func (a AttractionResult) HasImage() bool {
	return a.ImageURLOrEmpty() != ""
}

// Key identifies the card rendering this item: the id when present, else the name.
func (a AttractionResult) Key() string {
	if id := strings.TrimSpace(deref(a.ID)); id != "" {
		return "id:" + id
	}
	if name := strings.TrimSpace(deref(a.Name)); name != "" {
		return "name:" + name
	}

	return ""
}

// Identity changes whenever enrichment has to start over for the item.
func (a AttractionResult) Identity() string {
	return strings.Join([]string{deref(a.ID), deref(a.Name), deref(a.ImageURL)}, "\x00")
}

// MarshalJSON writes the item back in the wire shape, extras included.
func (a AttractionResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 8+len(a.Extra))
	for key, raw := range a.Extra {
		out[key] = raw
	}
	putString(out, "id", a.ID)
	putString(out, "Name", a.Name)
	putString(out, "Url", a.URL)
	putString(out, "Telephone", a.Phone)
	putString(out, "Address", a.Address)
	putString(out, "Tags", a.Tags)
	if a.Score != nil {
		out["score"] = *a.Score
	}
	putString(out, "image_url", a.ImageURL)

	return json.Marshal(out)
}

func putString(out map[string]any, key string, value *string) {
	if value != nil {
		out[key] = *value
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

func StringPtr(value string) *string {
	return &value
}
