package capability

import (
	"fmt"
	"reflect"
)

// defaultEquals compares values of identical dynamic type. Comparable types
// use Go's == operator, all others are compared deeply. It never panics.
func defaultEquals(constant, v any) bool {
	if constant == nil || v == nil {
		return constant == nil && v == nil
	}
	t := reflect.TypeOf(v)
	if reflect.TypeOf(constant) != t {
		return false
	}
	if t.Comparable() {
		return comparableEquals(constant, v)
	}
	return reflect.DeepEqual(constant, v)
}

// comparableEquals uses ==, which may still panic for comparable types
// holding non-comparable dynamic values in interface fields. Those are
// compared deeply.
func comparableEquals(constant, v any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = reflect.DeepEqual(constant, v)
		}
	}()
	return constant == v
}

// reflectDecompose splits arrays and structs into their elements/fields.
// Pointers to arrays and structs are followed, yielding addressable components.
func reflectDecompose(r Ref) ([]Ref, error) {
	rv := r.rv
	if rv.IsValid() && rv.Kind() == reflect.Interface {
		rv = rv.Elem() // component slot of interface type
	}
	if rv.IsValid() && rv.Kind() == reflect.Ptr && !rv.IsNil() {
		if k := rv.Elem().Kind(); k == reflect.Struct || k == reflect.Array {
			rv = rv.Elem()
		}
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrNotDecomposable)
	}
	var refs []Ref
	switch rv.Kind() {
	case reflect.Struct:
		if !allFieldsExported(rv.Type()) {
			return nil, fmt.Errorf("%w: %s has unexported fields", ErrNotDecomposable, rv.Type())
		}
		refs = make([]Ref, rv.NumField())
		for i := range refs {
			refs[i] = refTo(rv.Field(i), r.path.Extend(Step{Kind: Component, Index: i}))
		}
	case reflect.Array:
		refs = make([]Ref, rv.Len())
		for i := range refs {
			refs[i] = refTo(rv.Index(i), r.path.Extend(Step{Kind: Component, Index: i}))
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotDecomposable, rv.Type())
	}
	tracer().Debugf("decomposed %s into %d components", rv.Type(), len(refs))
	return refs, nil
}

func reflectComponentTypes(t reflect.Type) ([]reflect.Type, error) {
	if t.Kind() == reflect.Ptr {
		if k := t.Elem().Kind(); k == reflect.Struct || k == reflect.Array {
			t = t.Elem()
		}
	}
	switch t.Kind() {
	case reflect.Struct:
		if !allFieldsExported(t) {
			return nil, fmt.Errorf("%w: %s has unexported fields", ErrNotDecomposable, t)
		}
		types := make([]reflect.Type, t.NumField())
		for i := range types {
			types[i] = t.Field(i).Type
		}
		return types, nil
	case reflect.Array:
		types := make([]reflect.Type, t.Len())
		for i := range types {
			types[i] = t.Elem()
		}
		return types, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotDecomposable, t)
}

func allFieldsExported(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			return false
		}
	}
	return true
}
