package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jcomellas/ex-hl7/message"
)

// DecodeValue parses raw item bytes into a typed value of the declared kind.
// The null marker decodes to Null and empty input passes through as the empty
// string for every kind, so the schema layer decides what an absent position
// means.
func DecodeValue(b []byte, kind message.ValueKind) (message.Value, error) {
	if bytes.Equal(b, nullMarker) {
		return message.Null{}, nil
	}
	if len(b) == 0 {
		return message.String(""), nil
	}
	switch kind {
	case message.KindString:
		return message.String(b), nil
	case message.KindInteger:
		n, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return nil, badValue(b, "invalid integer")
		}
		return message.Integer(n), nil
	case message.KindFloat:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return nil, badValue(b, "invalid float")
		}
		return message.Float(f), nil
	case message.KindDate:
		return decodeDate(b)
	case message.KindDateTime:
		return decodeDateTime(b)
	}
	return nil, badValue(b, fmt.Sprintf("unsupported kind %s", kind))
}

// EncodeValue formats a typed value for the wire, checking it against the
// declared kind. Null becomes the null marker and the empty string becomes
// empty output for every kind.
func EncodeValue(v message.Value, kind message.ValueKind) ([]byte, error) {
	if message.IsNull(v) {
		return append([]byte(nil), nullMarker...), nil
	}
	if s, ok := v.(message.String); ok && s == "" {
		return nil, nil
	}
	if message.Kind(v) != kind {
		return nil, message.NewReadError(message.ErrKindBadValue,
			"value %v does not match declared kind %s", v, kind)
	}
	return formatValue(v)
}

func formatValue(v message.Value) ([]byte, error) {
	switch v := v.(type) {
	case message.Null:
		return append([]byte(nil), nullMarker...), nil
	case message.String:
		return []byte(v), nil
	case message.Integer:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case message.Float:
		return strconv.AppendFloat(nil, float64(v), 'f', -1, 64), nil
	case message.Date:
		if !v.Valid() {
			return nil, message.NewReadError(message.ErrKindBadValue,
				"invalid date %04d-%02d-%02d", v.Year, v.Month, v.Day)
		}
		return fmt.Appendf(nil, "%04d%02d%02d", v.Year, v.Month, v.Day), nil
	case message.DateTime:
		if !v.Valid() {
			return nil, message.NewReadError(message.ErrKindBadValue,
				"invalid datetime %04d-%02d-%02d %02d:%02d:%02d",
				v.Year, v.Month, v.Day, v.Hour, v.Minute, v.Second)
		}
		if v.Second == 0 {
			return fmt.Appendf(nil, "%04d%02d%02d%02d%02d",
				v.Year, v.Month, v.Day, v.Hour, v.Minute), nil
		}
		return fmt.Appendf(nil, "%04d%02d%02d%02d%02d%02d",
			v.Year, v.Month, v.Day, v.Hour, v.Minute, v.Second), nil
	}
	return nil, message.NewReadError(message.ErrKindBadValue, "unsupported value %T", v)
}

func decodeDate(b []byte) (message.Value, error) {
	if len(b) != 8 || !allDigits(b) {
		return nil, badValue(b, "date must be YYYYMMDD")
	}
	d := message.Date{
		Year:  atoi(b[0:4]),
		Month: atoi(b[4:6]),
		Day:   atoi(b[6:8]),
	}
	if !d.Valid() {
		return nil, badValue(b, "impossible date")
	}
	return d, nil
}

func decodeDateTime(b []byte) (message.Value, error) {
	if (len(b) != 8 && len(b) != 12 && len(b) != 14) || !allDigits(b) {
		return nil, badValue(b, "datetime must be YYYYMMDD[HHMM[SS]]")
	}
	dt := message.DateTime{
		Year:  atoi(b[0:4]),
		Month: atoi(b[4:6]),
		Day:   atoi(b[6:8]),
	}
	if len(b) >= 12 {
		dt.Hour = atoi(b[8:10])
		dt.Minute = atoi(b[10:12])
	}
	if len(b) == 14 {
		dt.Second = atoi(b[12:14])
	}
	if !dt.Valid() {
		return nil, badValue(b, "impossible datetime")
	}
	return dt, nil
}

func allDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func atoi(b []byte) int {
	n := 0
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}

func badValue(b []byte, msg string) error {
	return message.NewReadError(message.ErrKindBadValue, "%s", msg).WithValue(b)
}
