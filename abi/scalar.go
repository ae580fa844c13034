package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar is a JSON number or string kept in its textual form. It is used
// for metadata the generator never interprets, where toolchains disagree
// on quoting and width.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected number or string, got %s", data)
	}
	*s = Scalar(n)
	return nil
}
