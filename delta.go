package jsondelta

import (
	"fmt"
	"sort"
)

// Delta is a structural diff sufficient to reconstruct one value from
// another: either a full-replacement marker carrying a literal value, or an
// object-shaped patch of added keys, removed keys and recursively changed
// keys. Arrays are treated as atomic — positional diffing has no stable
// element identity — consistent with the merge engine's wholesale array
// replacement.
type Delta struct {
	replace bool
	value   *Value
	added   map[string]*Value
	removed map[string]struct{}
	changed map[string]*Delta
}

// IsEmpty reports whether applying the delta is a no-op.
func (d *Delta) IsEmpty() bool {
	return !d.replace && len(d.added) == 0 && len(d.removed) == 0 && len(d.changed) == 0
}

// Compute diffs modified against original. Equal inputs produce the empty
// delta; object pairs diff key-wise with nested deltas for keys whose object
// values differ; any other pairing becomes a full replacement carrying
// modified. The round-trip guarantee holds for every input pair:
// Apply(original, Compute(original, modified)) equals modified.
func Compute(original, modified *Value, opts ...Option) (*Delta, error) {
	return computeDelta(original, modified, newDepthGuard(opts))
}

func computeDelta(original, modified *Value, g *depthGuard) (*Delta, error) {
	oobj, oIsObj := original.AsObject()
	mobj, mIsObj := modified.AsObject()
	if !oIsObj || !mIsObj {
		if original.Equal(modified) {
			return &Delta{}, nil
		}
		return &Delta{replace: true, value: modified}, nil
	}

	d := &Delta{}
	for k, mv := range mobj.fields {
		ov, present := oobj.fields[k]
		if !present {
			if d.added == nil {
				d.added = map[string]*Value{}
			}
			d.added[k] = mv
			continue
		}
		if ov.Equal(mv) {
			continue
		}
		var nested *Delta
		_, ovIsObj := ov.AsObject()
		_, mvIsObj := mv.AsObject()
		if ovIsObj && mvIsObj {
			if err := g.enter(); err != nil {
				return nil, err
			}
			sub, err := computeDelta(ov, mv, g)
			g.leave()
			if err != nil {
				return nil, err
			}
			nested = sub
		} else {
			nested = &Delta{replace: true, value: mv}
		}
		if d.changed == nil {
			d.changed = map[string]*Delta{}
		}
		d.changed[k] = nested
	}
	for k := range oobj.fields {
		if _, present := mobj.fields[k]; !present {
			if d.removed == nil {
				d.removed = map[string]struct{}{}
			}
			d.removed[k] = struct{}{}
		}
	}
	return d, nil
}

// Apply reconstructs the modified value from original and the delta. A
// full-replacement delta returns its literal value outright; an object patch
// adds, removes and recurses per key. A non-object original under an object
// patch is treated as an empty object, which Compute never produces but
// keeps Apply total.
func (d *Delta) Apply(original *Value, opts ...Option) (*Value, error) {
	return applyDelta(original, d, newDepthGuard(opts))
}

func applyDelta(original *Value, d *Delta, g *depthGuard) (*Value, error) {
	if d.replace {
		return d.value, nil
	}
	if d.IsEmpty() {
		return original, nil
	}
	obj, ok := original.AsObject()
	if !ok {
		obj = emptyObject
	}
	fields := make(map[string]*Value, obj.Len()+len(d.added))
	for k, v := range obj.fields {
		fields[k] = v
	}
	for k := range d.removed {
		delete(fields, k)
	}
	for k, v := range d.added {
		fields[k] = v
	}
	for k, nested := range d.changed {
		// Replace leaves consume no depth on either side: Compute builds
		// them without recursing, so Apply must not need a deeper limit than
		// the Compute that produced the delta.
		if nested.replace {
			fields[k] = nested.value
			continue
		}
		child, present := fields[k]
		if !present {
			child = Null()
		}
		if err := g.enter(); err != nil {
			return nil, err
		}
		applied, err := applyDelta(child, nested, g)
		g.leave()
		if err != nil {
			return nil, err
		}
		fields[k] = applied
	}
	return &Value{data: &Object{fields: fields}}, nil
}

// Wire-form keys for Delta.Value / DeltaFromValue. The '$' prefix keeps the
// markers out of the ordinary identifier space.
const (
	deltaReplaceKey = "$replace"
	deltaAddKey     = "$add"
	deltaRemoveKey  = "$remove"
	deltaChangeKey  = "$change"
)

// Value encodes the delta as an ordinary document so a binding layer can
// ship it across the wire. The empty delta encodes as the empty object.
func (d *Delta) Value() *Value {
	if d.replace {
		return ObjectOf(map[string]*Value{deltaReplaceKey: d.value})
	}
	fields := map[string]*Value{}
	if len(d.added) > 0 {
		fields[deltaAddKey] = ObjectOf(d.added)
	}
	if len(d.removed) > 0 {
		names := make([]string, 0, len(d.removed))
		for k := range d.removed {
			names = append(names, k)
		}
		sort.Strings(names) // canonical order for byte-stable output
		removed := make([]*Value, len(names))
		for i, name := range names {
			removed[i] = String(name)
		}
		fields[deltaRemoveKey] = ArrayOf(removed...)
	}
	if len(d.changed) > 0 {
		changed := make(map[string]*Value, len(d.changed))
		for k, nested := range d.changed {
			changed[k] = nested.Value()
		}
		fields[deltaChangeKey] = ObjectOf(changed)
	}
	return ObjectOf(fields)
}

// DeltaFromValue decodes the wire form produced by Value.
func DeltaFromValue(v *Value) (*Delta, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("jsondelta: delta must be an object, got %s", v.Kind())
	}
	d := &Delta{}
	for k, fv := range obj.fields {
		switch k {
		case deltaReplaceKey:
			if obj.Len() != 1 {
				return nil, fmt.Errorf("jsondelta: %s cannot combine with other delta keys", deltaReplaceKey)
			}
			d.replace = true
			d.value = fv
		case deltaAddKey:
			added, ok := fv.AsObject()
			if !ok {
				return nil, fmt.Errorf("jsondelta: %s must be an object, got %s", deltaAddKey, fv.Kind())
			}
			d.added = make(map[string]*Value, added.Len())
			for ak, av := range added.fields {
				d.added[ak] = av
			}
		case deltaRemoveKey:
			removed, ok := fv.AsArray()
			if !ok {
				return nil, fmt.Errorf("jsondelta: %s must be an array, got %s", deltaRemoveKey, fv.Kind())
			}
			d.removed = make(map[string]struct{}, removed.Len())
			for i := 0; i < removed.Len(); i++ {
				name, ok := removed.At(i).AsString()
				if !ok {
					return nil, fmt.Errorf("jsondelta: %s entries must be strings", deltaRemoveKey)
				}
				d.removed[name] = struct{}{}
			}
		case deltaChangeKey:
			changed, ok := fv.AsObject()
			if !ok {
				return nil, fmt.Errorf("jsondelta: %s must be an object, got %s", deltaChangeKey, fv.Kind())
			}
			d.changed = make(map[string]*Delta, changed.Len())
			for ck, cv := range changed.fields {
				nested, err := DeltaFromValue(cv)
				if err != nil {
					return nil, err
				}
				d.changed[ck] = nested
			}
		default:
			return nil, fmt.Errorf("jsondelta: unknown delta key %q", k)
		}
	}
	return d, nil
}
