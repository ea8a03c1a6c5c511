package jsondelta

import (
	"fmt"
	"sort"
)

// Kind identifies which member of the closed Value union a value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is an immutable JSON-like document node: Null, Bool, Number, String,
// Array or Object. Values are never mutated after construction; every
// operation in this package returns new trees that share untouched subtrees
// with their inputs, so holding a *Value from before an edit is always safe.
type Value struct {
	data any // nil | bool | Number | string | *Array | *Object
}

var nullValue = &Value{}

// Null returns the null value.
func Null() *Value { return nullValue }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{data: b} }

// Int returns an exact integer number value.
func Int(i int64) *Value { return &Value{data: IntNumber(i)} }

// Float returns a binary float number value.
func Float(f float64) *Value { return &Value{data: FloatNumber(f)} }

// Num wraps a Number.
func Num(n Number) *Value { return &Value{data: n} }

// String returns a string value.
func String(s string) *Value { return &Value{data: s} }

// ValueOf converts a native Go value into a *Value. Supported inputs are
// nil, bool, string, all integer and float types, Number, []any,
// map[string]any and *Value itself (returned unchanged). ValueOf panics on
// anything else; it exists for embedding callers and tests that build
// documents from literals.
func ValueOf(data any) *Value {
	switch d := data.(type) {
	case nil:
		return Null()
	case *Value:
		return d
	case bool:
		return Bool(d)
	case string:
		return String(d)
	case Number:
		return Num(d)
	case int:
		return Int(int64(d))
	case int8:
		return Int(int64(d))
	case int16:
		return Int(int64(d))
	case int32:
		return Int(int64(d))
	case int64:
		return Int(d)
	case uint:
		return ValueOf(uint64(d))
	case uint8:
		return Int(int64(d))
	case uint16:
		return Int(int64(d))
	case uint32:
		return Int(int64(d))
	case uint64:
		if d > 1<<63-1 {
			return Float(float64(d))
		}
		return Int(int64(d))
	case float32:
		return Float(float64(d))
	case float64:
		return Float(d)
	case []any:
		elems := make([]*Value, len(d))
		for i, e := range d {
			elems[i] = ValueOf(e)
		}
		return &Value{data: &Array{elems: elems}}
	case []*Value:
		return ArrayOf(d...)
	case map[string]any:
		fields := make(map[string]*Value, len(d))
		for k, e := range d {
			fields[k] = ValueOf(e)
		}
		return &Value{data: &Object{fields: fields}}
	case map[string]*Value:
		return ObjectOf(d)
	default:
		panic(fmt.Errorf("jsondelta: cannot convert %T to Value", data))
	}
}

// Kind returns the union member held by v. A nil *Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	switch v.data.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case Number:
		return KindNumber
	case string:
		return KindString
	case *Array:
		return KindArray
	case *Object:
		return KindObject
	default:
		panic(fmt.Errorf("jsondelta: corrupt value of type %T", v.data))
	}
}

// IsNull reports whether v is the null value.
func (v *Value) IsNull() bool { return v.Kind() == KindNull }

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, bool) {
	if v == nil {
		return false, false
	}
	b, ok := v.data.(bool)
	return b, ok
}

// AsNumber returns the numeric payload.
func (v *Value) AsNumber() (Number, bool) {
	if v == nil {
		return Number{}, false
	}
	n, ok := v.data.(Number)
	return n, ok
}

// AsString returns the string payload.
func (v *Value) AsString() (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.data.(string)
	return s, ok
}

// AsArray returns the array payload.
func (v *Value) AsArray() (*Array, bool) {
	if v == nil {
		return nil, false
	}
	a, ok := v.data.(*Array)
	return a, ok
}

// AsObject returns the object payload.
func (v *Value) AsObject() (*Object, bool) {
	if v == nil {
		return nil, false
	}
	o, ok := v.data.(*Object)
	return o, ok
}

// Equal reports structural equality: numbers compare numerically, objects by
// key set independent of order, arrays by position. A nil *Value equals
// Null().
func (v *Value) Equal(o *Value) bool {
	vk, wk := v.Kind(), o.Kind()
	if vk != wk {
		return false
	}
	switch vk {
	case KindNull:
		return true
	case KindBool:
		a, _ := v.AsBool()
		b, _ := o.AsBool()
		return a == b
	case KindNumber:
		a, _ := v.AsNumber()
		b, _ := o.AsNumber()
		return a.Equal(b)
	case KindString:
		a, _ := v.AsString()
		b, _ := o.AsString()
		return a == b
	case KindArray:
		a, _ := v.AsArray()
		b, _ := o.AsArray()
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !a.elems[i].Equal(b.elems[i]) {
				return false
			}
		}
		return true
	case KindObject:
		a, _ := v.AsObject()
		b, _ := o.AsObject()
		if len(a.fields) != len(b.fields) {
			return false
		}
		for k, av := range a.fields {
			bv, present := b.fields[k]
			if !present || !av.Equal(bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders two values of the same scalar kind: numbers numerically,
// strings lexicographically by code point. Every other pairing, including
// homogeneous container pairs, is a type mismatch rather than a silent
// ordering.
func (v *Value) Compare(o *Value) (int, error) {
	vk, wk := v.Kind(), o.Kind()
	if vk != wk {
		return 0, &TypeMismatchError{Want: vk, Got: wk}
	}
	switch vk {
	case KindNumber:
		a, _ := v.AsNumber()
		b, _ := o.AsNumber()
		return a.Compare(b), nil
	case KindString:
		a, _ := v.AsString()
		b, _ := o.AsString()
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		}
		return 0, nil
	default:
		return 0, &TypeMismatchError{Want: KindNumber, Got: vk}
	}
}

// String renders a compact debug form. Use MarshalJSON for wire output.
func (v *Value) String() string {
	b := marshalJSONValue(v)
	return string(b)
}

// Array is an immutable ordered sequence of Values.
type Array struct {
	elems []*Value
}

// ArrayOf builds an array value from the given elements.
func ArrayOf(elems ...*Value) *Value {
	cp := make([]*Value, len(elems))
	copy(cp, elems)
	return &Value{data: &Array{elems: cp}}
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element at index i; it panics when i is out of range, like
// a slice index.
func (a *Array) At(i int) *Value { return a.elems[i] }

// assoc returns a new array with index i replaced. The backing slice is
// copied; elements are shared.
func (a *Array) assoc(i int, v *Value) *Array {
	cp := make([]*Value, len(a.elems))
	copy(cp, a.elems)
	cp[i] = v
	return &Array{elems: cp}
}

// insertAt returns a new array with v inserted before index i; i == Len
// appends.
func (a *Array) insertAt(i int, v *Value) *Array {
	cp := make([]*Value, 0, len(a.elems)+1)
	cp = append(cp, a.elems[:i]...)
	cp = append(cp, v)
	cp = append(cp, a.elems[i:]...)
	return &Array{elems: cp}
}

// Object is an immutable mapping of unique string keys to Values. Key order
// is irrelevant to equality; Keys returns the canonical (sorted) order so
// encoded output is byte-stable.
type Object struct {
	fields map[string]*Value
}

// ObjectOf builds an object value from the given fields. The map is copied;
// the values are shared.
func ObjectOf(fields map[string]*Value) *Value {
	cp := make(map[string]*Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &Value{data: &Object{fields: cp}}
}

var emptyObject = &Object{}

func emptyObjectValue() *Value { return &Value{data: emptyObject} }

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.fields) }

// Get returns the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Keys returns all field names in canonical (sorted) order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// assoc returns a new object with key set to v. The field map is copied;
// values are shared.
func (o *Object) assoc(key string, v *Value) *Object {
	cp := make(map[string]*Value, len(o.fields)+1)
	for k, e := range o.fields {
		cp[k] = e
	}
	cp[key] = v
	return &Object{fields: cp}
}
