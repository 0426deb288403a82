package serializer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

type integerKind struct{}

// Integer parses input into an int. Strings must hold a base-10 integer;
// floats are truncated. Values outside the int range are rejected.
func Integer(opts ...FieldOption) *Field {
	return newField(integerKind{}, nil, opts)
}

// SmallInteger behaves exactly like Integer; no narrower range is enforced.
func SmallInteger(opts ...FieldOption) *Field {
	return Integer(opts...)
}

func (integerKind) ToInternal(_ context.Context, f *Field, value any) (any, error) {
	n, err := toInt(value)
	if err != nil {
		return nil, f.Fail(CodeConversion, map[string]any{"input": value})
	}
	return n, nil
}

func (integerKind) ToRepresentation(_ context.Context, _ *Field, value any) (any, error) {
	n, err := toInt(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepresentation, err)
	}
	return n, nil
}

var errIntRange = errors.New("value out of int range")

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case []byte:
		return strconv.Atoi(strings.TrimSpace(string(v)))
	case float64:
		return floatToInt(v)
	case float32:
		return floatToInt(float64(v))
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, fmt.Errorf("%w: %d", errIntRange, v)
		}
	case uint:
		if uint64(v) > math.MaxInt {
			return 0, fmt.Errorf("%w: %d", errIntRange, v)
		}
	case uint32:
		if uint64(v) > math.MaxInt {
			return 0, fmt.Errorf("%w: %d", errIntRange, v)
		}
	case uint64:
		if v > math.MaxInt {
			return 0, fmt.Errorf("%w: %d", errIntRange, v)
		}
	case json.Number:
		return strconv.Atoi(v.String())
	}
	return cast.ToIntE(value)
}

func floatToInt(v float64) (int, error) {
	// -math.MinInt is the first float above the int range.
	if math.IsNaN(v) || v < math.MinInt || v >= -math.MinInt {
		return 0, fmt.Errorf("%w: %v", errIntRange, v)
	}
	return int(v), nil
}
