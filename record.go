package schemakit

import (
	"fmt"
	"reflect"
	"strings"
)

// Record lets a type supply its own field map and skip reflection entirely.
// Implementations should return one entry per validatable field, keyed the
// way the schema declares them.
type Record interface {
	Fields() map[string]any
}

// RecordFields introspects a structured value into the canonical
// map[string]any shape. Resolution order: string-keyed maps pass through,
// Record implementations supply their own map, structs (and pointers to
// structs) introspect via reflection using json tag names.
//
// Struct introspection is shallow: field values keep their concrete types,
// so a time.Time stays a time.Time and a nested struct stays a struct until
// a nested validator's own coercion boundary converts it. Anything else
// returns ErrNotRecord.
func RecordFields(rec any) (map[string]any, error) {
	if rec == nil {
		return nil, ErrNotRecord
	}
	if m, ok := rec.(map[string]any); ok {
		return m, nil
	}
	if r, ok := rec.(Record); ok {
		return r.Fields(), nil
	}

	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, ErrNotRecord
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map keys must be strings, got %s", ErrNotRecord, rv.Type().Key())
		}
		fields := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}
		return fields, nil
	case reflect.Struct:
		return structFields(rv), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotRecord, rec)
}

// structFields reads the exported fields of a struct into a map. Naming
// follows encoding/json conventions: a json tag renames the field, "-"
// skips it, and untagged embedded structs inline with outer fields taking
// precedence.
func structFields(rv reflect.Value) map[string]any {
	rt := rv.Type()
	fields := make(map[string]any, rt.NumField())
	var embedded []reflect.Value

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}

		name := f.Name
		tagged := false
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
				tagged = true
			}
		}

		if f.Anonymous && !tagged {
			if f.Type.Kind() == reflect.Struct {
				embedded = append(embedded, rv.Field(i))
				continue
			}
			if f.Type.Kind() == reflect.Pointer && f.Type.Elem().Kind() == reflect.Struct {
				if !rv.Field(i).IsNil() {
					embedded = append(embedded, rv.Field(i).Elem())
				}
				continue
			}
		}
		fields[name] = rv.Field(i).Interface()
	}

	for _, emb := range embedded {
		for name, value := range structFields(emb) {
			if _, taken := fields[name]; !taken {
				fields[name] = value
			}
		}
	}
	return fields
}
