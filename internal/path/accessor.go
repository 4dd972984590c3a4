package path

import (
	"math"
	"reflect"

	"tally-mapper/internal/match"
)

// maxSuggestions caps the "did you mean" list of a ShapeError.
const maxSuggestions = 3

// Read parses expr and calls Get.
func Read(record any, expr string) (Value, error) {
	p, err := Parse(expr)
	if err != nil {
		return Undefined(), err
	}

	return Get(record, p)
}

// Write parses expr and calls Set.
func Write(record any, expr string, v Value) error {
	p, err := Parse(expr)
	if err != nil {
		return err
	}

	return Set(record, p, v)
}

// Get returns the leaf addressed by p inside record.
//
// A missing terminal value (a nil optional leaf, or any leaf below a nil
// optional struct) is Undefined. A path that stops at a struct or slice is
// also Undefined: it addresses a structural node, not a value. Everything
// else that does not fit the record is a *ShapeError.
func Get(record any, p Path) (Value, error) {
	if p.IsEmpty() {
		return Undefined(), shapeErr(p, 0, "empty path")
	}

	cur := reflect.ValueOf(record)
	if !cur.IsValid() {
		return Undefined(), shapeErr(p, 0, "nil record")
	}

	for i := range p.Segments {
		for cur.Kind() == reflect.Ptr {
			if cur.IsNil() {
				return Undefined(), checkAbsent(cur.Type().Elem(), p, i)
			}

			cur = cur.Elem()
		}

		next, err := step(cur, p, i)
		if err != nil {
			return Undefined(), err
		}

		cur = next
	}

	return leafValue(cur, p)
}

// Set writes v into the leaf addressed by p. record must be a non-nil
// pointer. Nil pointers on the way are allocated; slices are never grown,
// so an index past the end is a *ShapeError. On error record is left as
// it was.
func Set(record any, p Path, v Value) error {
	rv := reflect.ValueOf(record)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return shapeErr(p, 0, "record must be a non-nil pointer, got %T", record)
	}

	if p.IsEmpty() {
		return shapeErr(p, 0, "empty path")
	}

	var allocated []reflect.Value

	rollback := func() {
		for i := len(allocated) - 1; i >= 0; i-- {
			allocated[i].Set(reflect.Zero(allocated[i].Type()))
		}
	}

	cur := rv.Elem()

	for i := range p.Segments {
		for cur.Kind() == reflect.Ptr {
			if cur.IsNil() {
				cur.Set(reflect.New(cur.Type().Elem()))
				allocated = append(allocated, cur)
			}

			cur = cur.Elem()
		}

		next, err := step(cur, p, i)
		if err != nil {
			rollback()
			return err
		}

		cur = next
	}

	if err := assign(cur, p, v); err != nil {
		rollback()
		return err
	}

	return nil
}

// LeafKind returns the kind of value the leaf addressed by p holds in
// record's type. Only types are walked: indexes are not bounds-checked and
// nil pointers do not matter.
func LeafKind(record any, p Path) (ValueKind, error) {
	if p.IsEmpty() {
		return KindUndefined, shapeErr(p, 0, "empty path")
	}

	t := reflect.TypeOf(record)
	if t == nil {
		return KindUndefined, shapeErr(p, 0, "nil record")
	}

	for i, seg := range p.Segments {
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}

		switch {
		case t.Kind() == reflect.Struct && !seg.IsIndex:
			fields := fieldsOf(t)

			n, ok := fields.byName[seg.Name]
			if !ok {
				err := shapeErr(p, i, "no field %q in %s", seg.Name, t)
				err.Suggestions = match.Closest(seg.Name, fields.names, maxSuggestions)

				return KindUndefined, err
			}

			t = t.Field(n).Type
		case (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && seg.IsIndex:
			t = t.Elem()
		default:
			return KindUndefined, shapeErr(p, i, "segment does not fit %s", t)
		}
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return KindBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindNumber, nil
	case reflect.String:
		return KindString, nil
	case reflect.Struct, reflect.Slice, reflect.Array:
		return KindUndefined, shapeErr(p, p.Len(), "path addresses a structural node %s", t)
	default:
		return KindUndefined, shapeErr(p, p.Len(), "unsupported leaf type %s", t)
	}
}

// step moves from container cur into segment i of p.
func step(cur reflect.Value, p Path, i int) (reflect.Value, error) {
	seg := p.Segments[i]

	switch cur.Kind() {
	case reflect.Struct:
		if seg.IsIndex {
			return reflect.Value{}, shapeErr(p, i, "cannot index into %s", cur.Type())
		}

		fields := fieldsOf(cur.Type())

		n, ok := fields.byName[seg.Name]
		if !ok {
			err := shapeErr(p, i, "no field %q in %s", seg.Name, cur.Type())
			err.Suggestions = match.Closest(seg.Name, fields.names, maxSuggestions)

			return reflect.Value{}, err
		}

		return cur.Field(n), nil

	case reflect.Slice, reflect.Array:
		if !seg.IsIndex {
			return reflect.Value{}, shapeErr(p, i, "cannot select field %q on %s", seg.Name, cur.Type())
		}

		if seg.Index >= cur.Len() {
			return reflect.Value{}, shapeErr(p, i, "index %d out of bounds (length %d)", seg.Index, cur.Len())
		}

		return cur.Index(seg.Index), nil

	default:
		return reflect.Value{}, shapeErr(p, i, "cannot descend into %s", cur.Type())
	}
}

// checkAbsent validates the rest of p against types below a nil pointer.
// Field names must still exist; any index is out of bounds because the
// container holding it does not exist.
func checkAbsent(t reflect.Type, p Path, from int) error {
	for i := from; i < p.Len(); i++ {
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}

		seg := p.Segments[i]

		switch {
		case t.Kind() == reflect.Struct && !seg.IsIndex:
			fields := fieldsOf(t)

			n, ok := fields.byName[seg.Name]
			if !ok {
				err := shapeErr(p, i, "no field %q in %s", seg.Name, t)
				err.Suggestions = match.Closest(seg.Name, fields.names, maxSuggestions)

				return err
			}

			t = t.Field(n).Type
		case (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && seg.IsIndex:
			return shapeErr(p, i, "index %d out of bounds (container is absent)", seg.Index)
		default:
			return shapeErr(p, i, "segment does not fit %s", t)
		}
	}

	return nil
}

func leafValue(v reflect.Value, p Path) (Value, error) {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return Undefined(), nil
		}

		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return Undefined(), shapeErr(p, p.Len(), "value %d does not fit a number", u)
		}

		return Number(int64(u)), nil
	case reflect.String:
		return String(v.String()), nil
	case reflect.Struct, reflect.Slice, reflect.Array:
		return Undefined(), nil
	default:
		return Undefined(), shapeErr(p, p.Len(), "unsupported leaf type %s", v.Type())
	}
}

func assign(leaf reflect.Value, p Path, v Value) error {
	pos := p.Len()

	switch leaf.Kind() {
	case reflect.Ptr:
		if v.IsUndefined() {
			leaf.Set(reflect.Zero(leaf.Type()))
			return nil
		}

		elem := reflect.New(leaf.Type().Elem())
		if err := assign(elem.Elem(), p, v); err != nil {
			return err
		}

		leaf.Set(elem)

		return nil

	case reflect.Bool:
		switch v.kind {
		case KindUndefined:
			leaf.SetBool(false)
		case KindBool:
			leaf.SetBool(v.b)
		default:
			return mismatch(leaf, p, v)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v.kind {
		case KindUndefined:
			leaf.SetInt(0)
		case KindNumber:
			if leaf.OverflowInt(v.n) {
				return shapeErr(p, pos, "value %d overflows %s", v.n, leaf.Type())
			}

			leaf.SetInt(v.n)
		default:
			return mismatch(leaf, p, v)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch v.kind {
		case KindUndefined:
			leaf.SetUint(0)
		case KindNumber:
			if v.n < 0 {
				return shapeErr(p, pos, "negative value %d for %s", v.n, leaf.Type())
			}

			if leaf.OverflowUint(uint64(v.n)) {
				return shapeErr(p, pos, "value %d overflows %s", v.n, leaf.Type())
			}

			leaf.SetUint(uint64(v.n))
		default:
			return mismatch(leaf, p, v)
		}

	case reflect.String:
		switch v.kind {
		case KindUndefined:
			leaf.SetString("")
		case KindString:
			leaf.SetString(v.s)
		default:
			return mismatch(leaf, p, v)
		}

	case reflect.Struct, reflect.Slice, reflect.Array:
		return shapeErr(p, pos, "cannot assign %s to %s: path addresses a structural node", v.kind, leaf.Type())

	default:
		return shapeErr(p, pos, "unsupported leaf type %s", leaf.Type())
	}

	return nil
}

func mismatch(leaf reflect.Value, p Path, v Value) error {
	return shapeErr(p, p.Len(), "cannot assign %s to %s", v.kind, leaf.Type())
}
