package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidTodoID is returned when an identifier is not a canonical UUID v4
var ErrInvalidTodoID = errors.New("id is not a valid UUID")

// canonicalUUIDLength is the length of the 8-4-4-4-12 hyphenated form
const canonicalUUIDLength = 36

// TodoID is a value object representing a unique todo identifier
type TodoID struct {
	value string
}

// NewTodoID creates a new random TodoID
func NewTodoID() TodoID {
	return TodoID{value: uuid.New().String()}
}

// ParseTodoID creates a TodoID from an untrusted string such as a path segment.
// Only the canonical hyphenated form of a version 4, RFC 4122 UUID is accepted;
// uuid.Parse alone would also take braces, urn prefixes and other versions.
func ParseTodoID(s string) (TodoID, error) {
	if len(s) != canonicalUUIDLength {
		return TodoID{}, ErrInvalidTodoID
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return TodoID{}, ErrInvalidTodoID
	}
	if parsed.Version() != 4 || parsed.Variant() != uuid.RFC4122 {
		return TodoID{}, ErrInvalidTodoID
	}
	return TodoID{value: s}, nil
}

// MustParseTodoID is like ParseTodoID but panics on error. Intended for tests and constants.
func MustParseTodoID(s string) TodoID {
	id, err := ParseTodoID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the TodoID
func (id TodoID) String() string {
	return id.value
}

// Equals checks if two TodoIDs are equal
func (id TodoID) Equals(other TodoID) bool {
	return id.value == other.value
}

// IsZero checks if the TodoID is the zero value
func (id TodoID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id TodoID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *TodoID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("TodoID must be a string")
	}
	parsed, err := ParseTodoID(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
