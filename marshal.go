package jsondelta

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes a Value tree as canonical JSON: object keys in sorted
// order, numbers in their lossless textual form. Equal trees always encode
// to identical bytes.
func MarshalJSON(v *Value) ([]byte, error) {
	return marshalJSONValue(v), nil
}

func marshalJSONValue(v *Value) []byte {
	var buf bytes.Buffer
	writeJSON(&buf, v)
	return buf.Bytes()
}

func writeJSON(buf *bytes.Buffer, v *Value) {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		b, _ := v.AsBool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		n, _ := v.AsNumber()
		buf.WriteString(n.String())
	case KindString:
		s, _ := v.AsString()
		writeJSONString(buf, s)
	case KindArray:
		arr, _ := v.AsArray()
		buf.WriteByte('[')
		for i := 0; i < arr.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(buf, arr.At(i))
		}
		buf.WriteByte(']')
	case KindObject:
		obj, _ := v.AsObject()
		buf.WriteByte('{')
		for i, k := range obj.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			child, _ := obj.Get(k)
			writeJSON(buf, child)
		}
		buf.WriteByte('}')
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// encoding/json owns the escaping rules; it cannot fail on a string.
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// MarshalYAML encodes a Value tree as YAML with two-space indent and sorted
// mapping keys.
func MarshalYAML(v *Value) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{yamlNode(v)}}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlNode(v *Value) *yaml.Node {
	switch v.Kind() {
	case KindBool:
		b, _ := v.AsBool()
		val := "false"
		if b {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case KindNumber:
		n, _ := v.AsNumber()
		tag := "!!float"
		if n.IsInt() {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: n.String()}
	case KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case KindArray:
		arr, _ := v.AsArray()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < arr.Len(); i++ {
			node.Content = append(node.Content, yamlNode(arr.At(i)))
		}
		return node
	case KindObject:
		obj, _ := v.AsObject()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range obj.Keys() {
			child, _ := obj.Get(k)
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				yamlNode(child),
			)
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
