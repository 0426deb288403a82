package serializer

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ISO8601 selects the built-in ISO 8601 parser in an input format list.
const ISO8601 = "iso-8601"

const dateLayout = "2006-01-02"

// iso8601Layouts covers the accepted ISO 8601 shapes. Fractional seconds are
// accepted by time.Parse after a seconds field even when absent from the layout.
var iso8601Layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
}

type dateTimeKind struct {
	inputFormats []string
}

// DateTime parses ISO 8601 date-time strings into time.Time and renders
// them back as RFC 3339. Values without a time part are rejected.
func DateTime(opts ...FieldOption) *Field {
	return newField(&dateTimeKind{inputFormats: []string{ISO8601}}, map[string]string{
		CodeDate:    "expected a date-time but got a date",
		CodeInvalid: "datetime has the wrong format",
	}, opts)
}

// InputFormats adds time layouts tried after ISO 8601, in order.
func InputFormats(layouts ...string) FieldOption {
	return func(f *Field) {
		if k, ok := f.kind.(*dateTimeKind); ok {
			k.inputFormats = append(k.inputFormats, layouts...)
		}
	}
}

func (k *dateTimeKind) ToInternal(_ context.Context, f *Field, value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	case string:
		s := strings.TrimSpace(v)
		if _, err := time.Parse(dateLayout, s); err == nil {
			return nil, f.Fail(CodeDate, nil)
		}
		for _, format := range k.inputFormats {
			if strings.EqualFold(format, ISO8601) {
				if t, ok := parseISO8601(s); ok {
					return t, nil
				}
				continue
			}
			if t, err := time.Parse(format, s); err == nil {
				return t, nil
			}
		}
	}
	return nil, f.Fail(CodeInvalid, map[string]any{"input": value})
}

func (k *dateTimeKind) ToRepresentation(_ context.Context, _ *Field, value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case *time.Time:
		if v != nil {
			return v.Format(time.RFC3339Nano), nil
		}
	case string:
		return v, nil
	}
	return nil, fmt.Errorf("%w: %T is not a time", ErrRepresentation, value)
}

func parseISO8601(s string) (time.Time, bool) {
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
