package utils

import (
	"encoding/json"
	"testing"
)

func TestStringOrNumberGatewayVariants(t *testing.T) {
	var doc struct {
		BdOrderID StringOrNumber `json:"bdorderid"`
		Status    StringOrNumber `json:"status"`
	}

	// 同一字段网关有时返回字符串有时返回数字
	if err := json.Unmarshal([]byte(`{"bdorderid":"BD123","status":200}`), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc.BdOrderID != "BD123" || doc.Status != "200" {
		t.Errorf("unexpected values: %q, %q", doc.BdOrderID, doc.Status)
	}

	if err := json.Unmarshal([]byte(`{"bdorderid":9001,"status":null}`), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc.BdOrderID != "9001" || doc.Status != "" {
		t.Errorf("unexpected values: %q, %q", doc.BdOrderID, doc.Status)
	}
}

func TestFlexibleMsgVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"plain text"`, "plain text"},
		{`{"reason":"declined"}`, "reason: declined"},
	}
	for _, tc := range cases {
		var m FlexibleMsg
		if err := json.Unmarshal([]byte(tc.raw), &m); err != nil {
			t.Fatalf("unmarshal %s failed: %v", tc.raw, err)
		}
		if m.Text != tc.want {
			t.Errorf("raw %s: got %q, want %q", tc.raw, m.Text, tc.want)
		}
	}
}
