package openapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// MarshalYAML serializes the whole document as YAML for embedding next to
// the generated code. Key order follows the JSON encoding of the document.
// Floating-point numbers are written as plain decimals (1e+21 becomes
// 1000000000000000000000.0) using the shortest digits that round-trip.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.NotValidf("nil document")
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, errors.Annotate(err, "cannot encode document")
	}
	return JSONToYAML(raw)
}

// JSONToYAML converts a JSON document to YAML, keeping key order.
func JSONToYAML(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	node, err := decodeNode(dec)
	if err != nil {
		return nil, errors.Annotate(err, "cannot decode document")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Annotate(err, "cannot encode yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Annotate(err, "cannot encode yaml")
	}
	return buf.Bytes(), nil
}

func decodeNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, scalar("!!str", key), val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		case '[':
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				val, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		}
		return nil, errors.Errorf("unexpected delimiter %q", v)
	case string:
		return scalar("!!str", v), nil
	case json.Number:
		return numberNode(v), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(v)), nil
	case nil:
		return scalar("!!null", "null"), nil
	}
	return nil, errors.Errorf("unexpected token %v", tok)
}

func numberNode(n json.Number) *yaml.Node {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		return scalar("!!int", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return scalar("!!float", s)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return scalar("!!float", out)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
