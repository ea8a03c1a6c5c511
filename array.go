package jsondelta

import (
	"math"
	"strconv"
)

// SortOrder selects the direction InsertWhere keeps an array sorted in.
type SortOrder uint8

const (
	Ascending SortOrder = iota
	Descending
)

// FindWhere returns the index of the first element of the array at path
// whose matchKey field equals matchValue. Elements that are not objects are
// skipped without error. A missing path or non-array value reports
// (0, false, nil).
func FindWhere(target *Value, path, matchKey string, matchValue *Value, opts ...Option) (int, bool, error) {
	p, err := ParsePath(path)
	if err != nil {
		return 0, false, err
	}
	arr, ok, err := arrayAt(target, p, newDepthGuard(opts))
	if err != nil || !ok {
		return 0, false, err
	}
	idx, found := findMatch(arr, matchKey, matchValue)
	return idx, found, nil
}

// ContainsID reports whether the array at path contains an element whose key
// field equals value. No mutation; missing paths are false.
func ContainsID(target *Value, path, key string, value *Value, opts ...Option) (bool, error) {
	_, found, err := FindWhere(target, path, key, value, opts...)
	return found, err
}

// ExtractID returns the textual form of an id field: strings as-is, numbers
// in canonical form. Any other kind, a non-object document, or an absent
// field reports false.
func ExtractID(doc *Value, key string) (string, bool) {
	obj, ok := doc.AsObject()
	if !ok {
		return "", false
	}
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	if s, ok := v.AsString(); ok {
		return s, true
	}
	if n, ok := v.AsNumber(); ok {
		return n.String(), true
	}
	return "", false
}

// UpdateWhere shallow-merges updates into the first element of the array at
// path whose matchKey field equals matchValue, rebuilding only the
// containing array. A missing path, non-array value, or absent match leaves
// target unchanged.
func UpdateWhere(target *Value, path, matchKey string, matchValue, updates *Value, opts ...Option) (*Value, error) {
	return updateWhere(target, path, matchKey, matchValue, updates, false, opts)
}

func updateWhere(target *Value, path, matchKey string, matchValue, updates *Value, replaceFallback bool, opts []Option) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return target, err
	}
	g := newDepthGuard(opts)
	arr, ok, err := arrayAt(target, p, g)
	if err != nil {
		return target, err
	}
	if !ok {
		return target, nil
	}
	idx, found := findMatch(arr, matchKey, matchValue)
	if !found {
		return target, nil
	}
	elem := arr.At(idx)
	var merged *Value
	if replaceFallback {
		if _, isObj := updates.AsObject(); !isObj {
			merged = updates
		}
	}
	if merged == nil {
		merged, err = mergeShallow(elem, updates, g)
		if err != nil {
			return target, err
		}
	}
	out, err := writePath(target, p, &Value{data: arr.assoc(idx, merged)}, g)
	if err != nil {
		return target, err
	}
	return out, nil
}

// UpdateWherePath locates the first matching element and writes updateValue
// at updatePath relative to it, creating intermediate objects as needed.
func UpdateWherePath(target *Value, path, matchKey string, matchValue *Value, updatePath string, updateValue *Value, opts ...Option) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return target, err
	}
	up, err := ParsePath(updatePath)
	if err != nil {
		return target, err
	}
	g := newDepthGuard(opts)
	arr, ok, err := arrayAt(target, p, g)
	if err != nil {
		return target, err
	}
	if !ok {
		return target, nil
	}
	idx, found := findMatch(arr, matchKey, matchValue)
	if !found {
		return target, nil
	}
	// The element sits below the navigated path; account for that depth
	// before descending into the relative write.
	if err := g.descend(len(p) + 1); err != nil {
		return target, err
	}
	newElem, err := writePath(arr.At(idx), up, updateValue, g)
	g.ascend(len(p) + 1)
	if err != nil {
		return target, err
	}
	out, err := writePath(target, p, &Value{data: arr.assoc(idx, newElem)}, g)
	if err != nil {
		return target, err
	}
	return out, nil
}

// UpdateWhereBatch applies many single-element updates in one rewrite of the
// array at path. Each element of updates is an object carrying the matchKey
// field identifying its row plus the fields to merge; a lookup built in one
// pass over updates keys the second pass over the target array, so the whole
// operation is O(n+m) instead of O(n*m) repeated single updates. Later
// payloads for the same match value override earlier ones. A non-array
// updates value is a type mismatch.
func UpdateWhereBatch(target *Value, path, matchKey string, updates *Value, opts ...Option) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return target, err
	}
	uarr, ok := updates.AsArray()
	if !ok {
		return target, &TypeMismatchError{Want: KindArray, Got: updates.Kind()}
	}
	g := newDepthGuard(opts)
	arr, ok, err := arrayAt(target, p, g)
	if err != nil {
		return target, err
	}
	if !ok {
		return target, nil
	}

	payloads := make(map[string]*Value, uarr.Len())
	for i := 0; i < uarr.Len(); i++ {
		uobj, ok := uarr.At(i).AsObject()
		if !ok {
			continue
		}
		mv, ok := uobj.Get(matchKey)
		if !ok {
			continue
		}
		payloads[matchLookupKey(mv)] = uarr.At(i)
	}
	if len(payloads) == 0 {
		return target, nil
	}

	elems := make([]*Value, arr.Len())
	changed := false
	for i := 0; i < arr.Len(); i++ {
		elem := arr.At(i)
		elems[i] = elem
		obj, ok := elem.AsObject()
		if !ok {
			continue
		}
		mv, ok := obj.Get(matchKey)
		if !ok {
			continue
		}
		payload, ok := payloads[matchLookupKey(mv)]
		if !ok {
			continue
		}
		merged, err := mergeShallow(elem, payload, g)
		if err != nil {
			return target, err
		}
		elems[i] = merged
		changed = true
	}
	if !changed {
		return target, nil
	}
	out, err := writePath(target, p, &Value{data: &Array{elems: elems}}, g)
	if err != nil {
		return target, err
	}
	return out, nil
}

// UpdateMultiRow applies one single-element update independently to each
// document in targets. Documents without a match pass through unchanged;
// documents never interact.
func UpdateMultiRow(targets []*Value, path, matchKey string, matchValue, updates *Value, opts ...Option) ([]*Value, error) {
	out := make([]*Value, len(targets))
	for i, t := range targets {
		updated, err := UpdateWhere(t, path, matchKey, matchValue, updates, opts...)
		if err != nil {
			return nil, err
		}
		out[i] = updated
	}
	return out, nil
}

// InsertWhere inserts element into the array at path immediately before the
// first existing element whose sortKey value compares past element's own
// under the requested order, keeping a sorted array sorted. Existing
// elements without the key (or that are not objects) never terminate the
// scan; the new element must carry the key. When the path is absent or does
// not hold an array, a new single-element array is created at path.
func InsertWhere(target *Value, path string, element *Value, sortKey string, order SortOrder, opts ...Option) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return target, err
	}
	g := newDepthGuard(opts)
	sub, found, err := lookupPath(target, p, g)
	if err != nil {
		return target, err
	}
	var arr *Array
	if found {
		arr, _ = sub.AsArray()
	}
	if arr == nil {
		out, err := writePath(target, p, ArrayOf(element), g)
		if err != nil {
			return target, err
		}
		return out, nil
	}

	eobj, ok := element.AsObject()
	if !ok {
		return target, &InvalidSortKeyError{Key: sortKey, Msg: "element is not an object"}
	}
	ev, ok := eobj.Get(sortKey)
	if !ok {
		return target, &InvalidSortKeyError{Key: sortKey, Msg: "element has no sort key"}
	}

	insertAt := arr.Len()
	for i := 0; i < arr.Len(); i++ {
		obj, ok := arr.At(i).AsObject()
		if !ok {
			continue
		}
		cv, ok := obj.Get(sortKey)
		if !ok {
			continue
		}
		cmp, err := cv.Compare(ev)
		if err != nil {
			return target, &InvalidSortKeyError{Key: sortKey, Msg: "incomparable sort key kinds"}
		}
		past := cmp > 0
		if order == Descending {
			past = cmp < 0
		}
		if past {
			insertAt = i
			break
		}
	}
	out, err := writePath(target, p, &Value{data: arr.insertAt(insertAt, element)}, g)
	if err != nil {
		return target, err
	}
	return out, nil
}

// DeleteWhere removes every element of the array at path whose matchKey
// field equals matchValue, in one pass, preserving survivor order. No match
// leaves target unchanged.
func DeleteWhere(target *Value, path, matchKey string, matchValue *Value, opts ...Option) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return target, err
	}
	g := newDepthGuard(opts)
	arr, ok, err := arrayAt(target, p, g)
	if err != nil {
		return target, err
	}
	if !ok {
		return target, nil
	}
	survivors := make([]*Value, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		elem := arr.At(i)
		if obj, ok := elem.AsObject(); ok {
			if v, ok := obj.Get(matchKey); ok && v.Equal(matchValue) {
				continue
			}
		}
		survivors = append(survivors, elem)
	}
	if len(survivors) == arr.Len() {
		return target, nil
	}
	out, err := writePath(target, p, &Value{data: &Array{elems: survivors}}, g)
	if err != nil {
		return target, err
	}
	return out, nil
}

// arrayAt read-navigates to p and unwraps the array there; a missing path or
// non-array value is the null-safe (nil, false, nil).
func arrayAt(target *Value, p Path, g *depthGuard) (*Array, bool, error) {
	sub, found, err := lookupPath(target, p, g)
	if err != nil || !found {
		return nil, false, err
	}
	arr, ok := sub.AsArray()
	if !ok {
		return nil, false, nil
	}
	return arr, true, nil
}

// findMatch scans once for the first object element whose matchKey field
// equals matchValue.
func findMatch(arr *Array, matchKey string, matchValue *Value) (int, bool) {
	for i := 0; i < arr.Len(); i++ {
		obj, ok := arr.At(i).AsObject()
		if !ok {
			continue
		}
		if v, ok := obj.Get(matchKey); ok && v.Equal(matchValue) {
			return i, true
		}
	}
	return 0, false
}

// matchLookupKey folds a match value into a map key. Numbers fold to their
// numeric value rather than their literal form, so a payload keyed 1.0 finds
// an element keyed 1 exactly as Equal would match them; the kind prefix
// keeps the string "1" and the number 1 from colliding.
func matchLookupKey(v *Value) string {
	n, ok := v.AsNumber()
	if !ok {
		return v.Kind().String() + ":" + v.String()
	}
	if i, exact := n.Int64(); exact {
		return "number:" + strconv.FormatInt(i, 10)
	}
	f := n.Float64()
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return "number:" + strconv.FormatInt(int64(f), 10)
	}
	return "number:" + strconv.FormatFloat(f, 'g', -1, 64)
}
