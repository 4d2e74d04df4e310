// Package nilcheck decides whether a value of a generic type is "absent".
//
// Keys, values and ring elements must not be nil. For most instantiations
// (numbers, strings, structs) there is no nil value at all and the check is
// a single boolean test. Only pointer-like kinds pay for a reflective look.
// Slices are not treated as nillable, a nil slice is an empty
// slice in Go.
package nilcheck

import "reflect"

// Checker is a nil-predicate for values of type T. The zero Checker never
// reports nil.
type Checker[T any] struct {
	nillable bool
}

// For returns a Checker for type T.
func For[T any]() Checker[T] {
	return Checker[T]{nillable: isNillableKind(reflect.TypeFor[T]().Kind())}
}

func isNillableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan,
		reflect.Func, reflect.UnsafePointer:
		return true
	}
	return false
}

// IsNil reports whether v is an absent value.
func (c Checker[T]) IsNil(v T) bool {
	if !c.nillable {
		return false
	}
	return reflect.ValueOf(&v).Elem().IsNil()
}
