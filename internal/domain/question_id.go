package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// QuestionID identifies a question. Banks may use numbers or strings; the
// original form is kept so ids round-trip unchanged to clients.
type QuestionID struct {
	value   string
	numeric bool
}

// IntID returns a numeric id.
func IntID(n int) QuestionID {
	return QuestionID{value: strconv.Itoa(n), numeric: true}
}

// StringID returns a string id.
func StringID(s string) QuestionID {
	return QuestionID{value: s}
}

func (id QuestionID) String() string {
	return id.value
}

// IsZero reports whether id was never set.
func (id QuestionID) IsZero() bool {
	return id == QuestionID{}
}

func (id QuestionID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = QuestionID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id must be a number or a string: %s", data)
	}
	*id = QuestionID{value: n.String(), numeric: true}
	return nil
}

func (id *QuestionID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("question id must be a number or a string (line %d)", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*id = QuestionID{}
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*id = QuestionID{value: strconv.FormatInt(n, 10), numeric: true}
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*id = QuestionID{value: strconv.FormatFloat(f, 'g', -1, 64), numeric: true}
	default:
		*id = StringID(node.Value)
	}
	return nil
}
