package message

import (
	"slices"
)

// Segment is one segment instance: its three-byte ID plus a mapping from
// schema attribute names to typed values. A name that is not present in the
// mapping is absent, which is distinct from both the empty string and Null.
type Segment struct {
	id     string
	fields map[string]Value
}

// NewSegment creates an empty segment with the given ID.
func NewSegment(id string) *Segment {
	return &Segment{id: id, fields: make(map[string]Value)}
}

// ID returns the three-byte segment ID.
func (s *Segment) ID() string {
	return s.id
}

// Field returns the value stored under name. The second result is false when
// the field is absent.
func (s *Segment) Field(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// SetField stores a value under name. Storing Null records an explicit null.
func (s *Segment) SetField(name string, v Value) {
	s.fields[name] = v
}

// ClearField removes a field, making it absent.
func (s *Segment) ClearField(name string) {
	delete(s.fields, name)
}

// Len returns the number of populated fields.
func (s *Segment) Len() int {
	return len(s.fields)
}

// FieldNames returns the populated field names in sorted order.
func (s *Segment) FieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetString returns the field as a string. The second result is false when
// the field is absent, null, or not a string.
func (s *Segment) GetString(name string) (string, bool) {
	v, ok := s.fields[name].(String)
	return string(v), ok
}

// GetInt returns the field as an integer. The second result is false when the
// field is absent, null, or not an integer.
func (s *Segment) GetInt(name string) (int64, bool) {
	v, ok := s.fields[name].(Integer)
	return int64(v), ok
}

// GetFloat returns the field as a float. The second result is false when the
// field is absent, null, or not a float.
func (s *Segment) GetFloat(name string) (float64, bool) {
	v, ok := s.fields[name].(Float)
	return float64(v), ok
}

// GetDate returns the field as a date. The second result is false when the
// field is absent, null, or not a date.
func (s *Segment) GetDate(name string) (Date, bool) {
	v, ok := s.fields[name].(Date)
	return v, ok
}

// GetDateTime returns the field as a datetime. The second result is false
// when the field is absent, null, or not a datetime.
func (s *Segment) GetDateTime(name string) (DateTime, bool) {
	v, ok := s.fields[name].(DateTime)
	return v, ok
}

// FieldIsNull reports whether the field holds an explicit null.
func (s *Segment) FieldIsNull(name string) bool {
	v, ok := s.fields[name]
	return ok && IsNull(v)
}

// Clone returns a deep copy of the segment.
func (s *Segment) Clone() *Segment {
	dup := NewSegment(s.id)
	for name, v := range s.fields {
		dup.fields[name] = v
	}
	return dup
}
