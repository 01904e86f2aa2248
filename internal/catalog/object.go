package catalog

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies what an object points at. The set is open ended; unknown
// kinds are preserved as-is and share the fallback identifier prefix.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindDocument Kind = "document"
	KindOther    Kind = "other"
)

var kindPrefixes = map[Kind]string{
	KindImage:    "1",
	KindVideo:    "2",
	KindAudio:    "3",
	KindDocument: "4",
}

// Object is a single cataloged file or URL.
type Object struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Kind        Kind      `json:"type"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewObject builds an object with a freshly generated identifier. Identifiers
// are never reused, even after the object is deleted.
func NewObject(name, description string, kind Kind, location string) *Object {
	now := time.Now().UTC()
	return &Object{
		ID:          NewID(kind),
		Name:        name,
		Description: description,
		Kind:        kind,
		Location:    strings.TrimSpace(location),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewID generates an opaque identifier of the form <prefix>_<16 digits>,
// where the prefix encodes the object kind.
func NewID(kind Kind) string {
	prefix, ok := kindPrefixes[Kind(strings.ToLower(string(kind)))]
	if !ok {
		prefix = "0"
	}

	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) % 10000000000000000
	return fmt.Sprintf("%s_%016d", prefix, n)
}

// IsExternal reports whether the location is a web URL rather than a local
// filesystem path.
func (o *Object) IsExternal() bool {
	loc := strings.ToLower(o.Location)
	return strings.HasPrefix(loc, "http://") ||
		strings.HasPrefix(loc, "https://") ||
		strings.HasPrefix(loc, "www.")
}
