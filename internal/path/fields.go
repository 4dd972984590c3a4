package path

import (
	"reflect"
	"strings"
	"sync"
)

// fieldIndex maps json names to struct field indexes for one struct type.
type fieldIndex struct {
	byName map[string]int
	names  []string
}

var fieldCache sync.Map // reflect.Type -> *fieldIndex

// fieldsOf returns the addressable fields of a struct type keyed by the
// name encoding/json would use for them. Unexported and "-" fields are
// skipped; embedded structs are not flattened.
func fieldsOf(t reflect.Type) *fieldIndex {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(*fieldIndex)
	}

	idx := &fieldIndex{byName: make(map[string]int, t.NumField())}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := f.Name

		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}

			if tagName != "" {
				name = tagName
			}
		}

		idx.byName[name] = i
		idx.names = append(idx.names, name)
	}

	actual, _ := fieldCache.LoadOrStore(t, idx)

	return actual.(*fieldIndex)
}

// FieldNames lists the path identifiers accepted by a struct value or type.
func FieldNames(record any) []string {
	t := reflect.TypeOf(record)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	return append([]string(nil), fieldsOf(t).names...)
}
