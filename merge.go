package jsondelta

// MergeShallow inserts or replaces every top-level key of source into
// target. Nested objects and arrays from source replace their counterparts
// wholesale; unmodified branches of target are shared, not copied. Both
// operands must be objects.
func MergeShallow(target, source *Value, opts ...Option) (*Value, error) {
	g := newDepthGuard(opts)
	out, err := mergeShallow(target, source, g)
	if err != nil {
		return target, err
	}
	return out, nil
}

func mergeShallow(target, source *Value, g *depthGuard) (*Value, error) {
	tobj, ok := target.AsObject()
	if !ok {
		return nil, &TypeMismatchError{Want: KindObject, Got: target.Kind()}
	}
	sobj, ok := source.AsObject()
	if !ok {
		return nil, &TypeMismatchError{Want: KindObject, Got: source.Kind()}
	}
	if sobj.Len() == 0 {
		return target, nil
	}
	fields := make(map[string]*Value, tobj.Len()+sobj.Len())
	for k, v := range tobj.fields {
		fields[k] = v
	}
	for k, v := range sobj.fields {
		fields[k] = v
	}
	return &Value{data: &Object{fields: fields}}, nil
}

// MergeDeep merges source into target recursively: a key holding objects on
// both sides recurses, arrays are replaced wholesale (identity-based array
// merging belongs to UpdateWhere), and on any other pairing source wins.
// Deep merge is not associative when overlapping keys conflict in kind.
func MergeDeep(target, source *Value, opts ...Option) (*Value, error) {
	g := newDepthGuard(opts)
	tobj, ok := target.AsObject()
	if !ok {
		return target, &TypeMismatchError{Want: KindObject, Got: target.Kind()}
	}
	sobj, ok := source.AsObject()
	if !ok {
		return target, &TypeMismatchError{Want: KindObject, Got: source.Kind()}
	}
	merged, err := mergeDeepObjects(tobj, sobj, g)
	if err != nil {
		return target, err
	}
	return &Value{data: merged}, nil
}

func mergeDeepObjects(target, source *Object, g *depthGuard) (*Object, error) {
	if source.Len() == 0 {
		return target, nil
	}
	fields := make(map[string]*Value, target.Len()+source.Len())
	for k, v := range target.fields {
		fields[k] = v
	}
	for k, sv := range source.fields {
		tv, present := fields[k]
		if present {
			tchild, tIsObj := tv.AsObject()
			schild, sIsObj := sv.AsObject()
			if tIsObj && sIsObj {
				if err := g.enter(); err != nil {
					return nil, err
				}
				merged, err := mergeDeepObjects(tchild, schild, g)
				g.leave()
				if err != nil {
					return nil, err
				}
				fields[k] = &Value{data: merged}
				continue
			}
		}
		fields[k] = sv
	}
	return &Object{fields: fields}, nil
}

// MergeAtPath shallow-merges source into the object located at path,
// treating an absent subtree as an empty object, and writes the merged
// subtree back. Navigator errors (wrong container kinds along the path,
// depth overruns) propagate; so does a non-object subtree or source.
func MergeAtPath(target, source *Value, path string, opts ...Option) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return target, err
	}
	g := newDepthGuard(opts)
	sub, found, err := lookupPath(target, p, g)
	if err != nil {
		return target, err
	}
	if !found {
		sub = emptyObjectValue()
	}
	merged, err := mergeShallow(sub, source, g)
	if err != nil {
		return target, err
	}
	out, err := writePath(target, p, merged, g)
	if err != nil {
		return target, err
	}
	return out, nil
}

// PatchScalar is MergeShallow with a shape-safety fallback: when either
// operand is not an object the source replaces the target wholesale instead
// of failing. Callers need not know the target's shape up front.
func PatchScalar(target, source *Value, opts ...Option) (*Value, error) {
	if _, ok := target.AsObject(); !ok {
		return source, nil
	}
	if _, ok := source.AsObject(); !ok {
		return source, nil
	}
	return MergeShallow(target, source, opts...)
}

// PatchNested is MergeAtPath with the PatchScalar fallback applied to the
// subtree at path: a non-object subtree or source is replaced wholesale.
func PatchNested(target, source *Value, path string, opts ...Option) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return target, err
	}
	g := newDepthGuard(opts)
	sub, found, err := lookupPath(target, p, g)
	if err != nil {
		return target, err
	}
	if !found {
		sub = emptyObjectValue()
	}
	merged := source
	if _, subIsObj := sub.AsObject(); subIsObj {
		if _, srcIsObj := source.AsObject(); srcIsObj {
			merged, err = mergeShallow(sub, source, g)
			if err != nil {
				return target, err
			}
		}
	}
	out, err := writePath(target, p, merged, g)
	if err != nil {
		return target, err
	}
	return out, nil
}

// PatchArray patches the first element of the array at path whose matchKey
// field equals matchValue. Object updates shallow-merge into the element;
// non-object updates replace it wholesale, mirroring the PatchScalar
// fallback.
func PatchArray(target *Value, path, matchKey string, matchValue, updates *Value, opts ...Option) (*Value, error) {
	return updateWhere(target, path, matchKey, matchValue, updates, true, opts)
}
