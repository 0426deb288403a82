package serializer

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/samber/lo"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Getter lets custom types expose named attributes to serializers.
type Getter interface {
	Attribute(name string) (any, bool)
}

// Attribute reads name from a mapping or an object. Mappings are looked up
// by key; structs match an exported field by json tag, Go name, or the
// snake_case form of the Go name. Missing attributes yield nil.
func Attribute(instance any, name string) any {
	switch v := instance.(type) {
	case nil:
		return nil
	case map[string]any:
		return v[name]
	case *orderedmap.OrderedMap[string, any]:
		if v == nil {
			return nil
		}
		value, _ := v.Get(name)
		return value
	case url.Values:
		if vs, ok := v[name]; ok && len(vs) > 0 {
			return vs[0]
		}
		return nil
	case map[string]string:
		if s, ok := v[name]; ok {
			return s
		}
		return nil
	case Getter:
		value, _ := v.Attribute(name)
		return value
	}

	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		value := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return nil
		}
		return value.Interface()
	case reflect.Struct:
		return structAttribute(rv, name)
	}
	return nil
}

func structAttribute(rv reflect.Value, name string) any {
	for _, sf := range reflect.VisibleFields(rv.Type()) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		if !matchesField(sf, name) {
			continue
		}
		value, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			return nil
		}
		return value.Interface()
	}
	return nil
}

func matchesField(sf reflect.StructField, name string) bool {
	if tag, ok := sf.Tag.Lookup("json"); ok {
		tagName, _, _ := strings.Cut(tag, ",")
		if tagName == "-" {
			return false
		}
		if tagName != "" {
			return tagName == name
		}
	}
	return sf.Name == name || lo.SnakeCase(sf.Name) == name
}

// isMapping reports whether data can be read as a key-value input mapping.
func isMapping(data any) bool {
	switch data.(type) {
	case map[string]any, *orderedmap.OrderedMap[string, any], url.Values, map[string]string, Getter:
		return true
	}
	rv := reflect.ValueOf(data)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// toSlice exposes any slice or array as []any.
func toSlice(data any) ([]any, bool) {
	if items, ok := data.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
