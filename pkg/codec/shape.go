package codec

import (
	"fmt"
	"reflect"
	"strings"
)

// checkShape walks a generically decoded document alongside the target type
// and reports the first required field that is absent or any fixed size
// array with the wrong length. Type mismatches are left to the real decoder.
func checkShape(raw any, t reflect.Type, tagName, path string) error {
	for t.Kind() == reflect.Pointer {
		if raw == nil {
			return nil
		}
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		m, ok := asMap(raw)
		if !ok {
			return fmt.Errorf("%s: expected an object", path)
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, omitEmpty, skip := fieldKey(f, tagName)
			if skip {
				continue
			}
			val, present := m[name]
			if !present {
				if omitEmpty {
					continue
				}
				return fmt.Errorf("%s: missing field %q", path, name)
			}
			if err := checkShape(val, f.Type, tagName, path+"."+name); err != nil {
				return err
			}
		}
	case reflect.Array:
		items, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("%s: expected an array", path)
		}
		if len(items) != t.Len() {
			return fmt.Errorf("%s: expected %d elements, got %d", path, t.Len(), len(items))
		}
		for i, item := range items {
			if err := checkShape(item, t.Elem(), tagName, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.Slice:
		if raw == nil {
			return nil
		}
		items, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("%s: expected an array", path)
		}
		for i, item := range items {
			if err := checkShape(item, t.Elem(), tagName, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		if raw == nil {
			return nil
		}
		m, ok := asMap(raw)
		if !ok {
			return fmt.Errorf("%s: expected an object", path)
		}
		for k, v := range m {
			if err := checkShape(v, t.Elem(), tagName, path+"."+k); err != nil {
				return err
			}
		}
	}
	return nil
}

func asMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func fieldKey(f reflect.StructField, tagName string) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get(tagName)
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
		if tagName == "yaml" {
			name = strings.ToLower(f.Name)
		}
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}
