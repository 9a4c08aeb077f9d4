package form

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Values maps field names to field values.
type Values map[string]any

// Clone returns a shallow copy. Nil stays an empty map.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// HasChanges reports whether current differs from initial.
//
// Every key of initial is compared after normalization. Keys only present in
// current count when their normalized value is non-empty.
func HasChanges(initial, current Values) bool {
	for key, before := range initial {
		if normalize(before) != normalize(current[key]) {
			return true
		}
	}
	for key, after := range current {
		if _, ok := initial[key]; ok {
			continue
		}
		if normalize(after) != "" {
			return true
		}
	}
	return false
}

// ChangedFields lists every differing key, sorted.
func ChangedFields(initial, current Values) []string {
	seen := make(map[string]struct{}, len(initial)+len(current))
	var changed []string
	for key, before := range initial {
		seen[key] = struct{}{}
		if normalize(before) != normalize(current[key]) {
			changed = append(changed, key)
		}
	}
	for key, after := range current {
		if _, ok := seen[key]; ok {
			continue
		}
		if normalize(after) != "" {
			changed = append(changed, key)
		}
	}
	sort.Strings(changed)
	return changed
}

// Display renders a value the way the detector sees it.
func Display(v any) string {
	return normalize(v)
}

func normalize(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return normalize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ""
		}
		if rv.Len() == 0 {
			return ""
		}
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = normalize(rv.Index(i).Interface())
		}
		sort.Strings(items)
		return encodeCanonical(items)
	case reflect.Map:
		if rv.IsNil() || rv.Len() == 0 {
			return ""
		}
		return encodeCanonical(v)
	}
	return fmt.Sprint(v)
}

// encoding/json sorts map keys, which gives a stable form for nested values.
func encodeCanonical(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
