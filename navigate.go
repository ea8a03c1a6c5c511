package jsondelta

// Get reads the sub-value addressed by path. Absence — a missing key, an
// index past the end, or traversal reaching a non-container — is reported as
// (nil, false, nil), never as an error; only a malformed path or a depth
// overrun fails.
func Get(target *Value, path string, opts ...Option) (*Value, bool, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false, err
	}
	return lookupPath(target, p, newDepthGuard(opts))
}

// Set writes value at path and returns the new document root. Missing key
// segments create empty objects on the way down; missing array slots are
// never created. The terminal segment inserts or replaces a key in the
// nearest object, or replaces an element at an index in the nearest array.
// On any error the original document is returned unchanged alongside it.
func Set(target *Value, path string, value *Value, opts ...Option) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return target, err
	}
	out, err := writePath(target, p, value, newDepthGuard(opts))
	if err != nil {
		return target, err
	}
	return out, nil
}

// lookupPath walks p from v in read mode. Depth consumed by the walk is
// restored on return so composed operations can account for it explicitly.
func lookupPath(v *Value, p Path, g *depthGuard) (*Value, bool, error) {
	entered := 0
	defer func() { g.ascend(entered) }()
	cur := v
	for _, seg := range p {
		if err := g.enter(); err != nil {
			return nil, false, err
		}
		entered++
		if seg.IsIndex {
			arr, ok := cur.AsArray()
			if !ok || seg.Index >= arr.Len() {
				return nil, false, nil
			}
			cur = arr.At(seg.Index)
			continue
		}
		obj, ok := cur.AsObject()
		if !ok {
			return nil, false, nil
		}
		child, ok := obj.Get(seg.Key)
		if !ok {
			return nil, false, nil
		}
		cur = child
	}
	return cur, true, nil
}

// writePath rebuilds the spine from cur down to the end of p with val at the
// bottom, sharing every untouched sibling. A Null value under a key segment
// is treated like an absent key and replaced with a fresh object; any other
// non-object kind is a hard mismatch, as is an array where a key is
// expected.
func writePath(cur *Value, p Path, val *Value, g *depthGuard) (*Value, error) {
	if len(p) == 0 {
		return val, nil
	}
	if err := g.enter(); err != nil {
		return nil, err
	}
	defer g.leave()

	seg := p[0]
	if seg.IsIndex {
		arr, ok := cur.AsArray()
		if !ok {
			return nil, &TypeMismatchError{Want: KindArray, Got: cur.Kind()}
		}
		if seg.Index >= arr.Len() {
			return nil, &IndexOutOfRangeError{Index: seg.Index, Length: arr.Len()}
		}
		child, err := writePath(arr.At(seg.Index), p[1:], val, g)
		if err != nil {
			return nil, err
		}
		return &Value{data: arr.assoc(seg.Index, child)}, nil
	}

	var obj *Object
	switch cur.Kind() {
	case KindObject:
		obj, _ = cur.AsObject()
	case KindNull:
		obj = emptyObject
	default:
		return nil, &TypeMismatchError{Want: KindObject, Got: cur.Kind()}
	}
	child, ok := obj.Get(seg.Key)
	if !ok {
		child = Null()
	}
	newChild, err := writePath(child, p[1:], val, g)
	if err != nil {
		return nil, err
	}
	return &Value{data: obj.assoc(seg.Key, newChild)}, nil
}
