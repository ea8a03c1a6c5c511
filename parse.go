package jsondelta

import (
	"errors"
	"fmt"
	"strings"

	gyaml "github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// ErrInvalidDocument reports bytes that do not decode as the requested
// encoding.
var ErrInvalidDocument = errors.New("jsondelta: invalid document")

// ParseJSON decodes JSON bytes into a Value tree. Number literals are
// classified from their raw tokens, so integers beyond 2^53 survive intact
// instead of rounding through float64.
func ParseJSON(data []byte) (*Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	return valueFromResult(gjson.ParseBytes(data)), nil
}

func valueFromResult(r gjson.Result) *Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		n, err := NumberFromString(strings.TrimSpace(r.Raw))
		if err != nil {
			return Float(r.Num)
		}
		return Num(n)
	case gjson.String:
		return String(r.Str)
	default:
		if r.IsArray() {
			var elems []*Value
			r.ForEach(func(_, e gjson.Result) bool {
				elems = append(elems, valueFromResult(e))
				return true
			})
			return &Value{data: &Array{elems: elems}}
		}
		fields := map[string]*Value{}
		r.ForEach(func(k, e gjson.Result) bool {
			fields[k.String()] = valueFromResult(e)
			return true
		})
		return &Value{data: &Object{fields: fields}}
	}
}

// ParseYAML decodes YAML bytes into a Value tree. Mappings decode through
// goccy's ordered form so duplicate keys resolve last-wins deterministically.
// Scalar mapping keys fold to their textual form (objects key on strings
// only); container keys are rejected.
func ParseYAML(data []byte) (*Value, error) {
	var raw any
	if err := gyaml.UnmarshalWithOptions(data, &raw, gyaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
	}
	return valueFromYAML(raw)
}

func valueFromYAML(raw any) (*Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return ValueOf(t), nil
	case float64:
		return Float(t), nil
	case []any:
		elems := make([]*Value, len(t))
		for i, e := range t {
			v, err := valueFromYAML(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &Value{data: &Array{elems: elems}}, nil
	case gyaml.MapSlice:
		fields := make(map[string]*Value, len(t))
		for _, item := range t {
			key, err := yamlKeyString(item.Key)
			if err != nil {
				return nil, err
			}
			v, err := valueFromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			fields[key] = v
		}
		return &Value{data: &Object{fields: fields}}, nil
	case map[string]any:
		fields := make(map[string]*Value, len(t))
		for k, e := range t {
			v, err := valueFromYAML(e)
			if err != nil {
				return nil, err
			}
			fields[k] = v
		}
		return &Value{data: &Object{fields: fields}}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported YAML value of type %T", ErrInvalidDocument, raw)
	}
}

// yamlKeyString folds a mapping key to text. goccy hands integer keys over
// already stringified, but bools, floats and nulls arrive typed; container
// keys have no string-keyed object counterpart and fail.
func yamlKeyString(key any) (string, error) {
	switch k := key.(type) {
	case string:
		return k, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(k), nil
	case nil:
		return "null", nil
	default:
		return "", fmt.Errorf("%w: unsupported mapping key of type %T", ErrInvalidDocument, key)
	}
}
