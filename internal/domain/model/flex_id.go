package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexID は文字列・数値・{"$oid": "..."} のどれでも読める商品ID。
// 書き出しは文字列。
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
	case b[0] == '{':
		var o struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(b, &o); err != nil {
			return err
		}
		*id = FlexID(o.OID)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unsupported id: %s", string(b))
		}
		*id = FlexID(n.String())
	}
	return nil
}
