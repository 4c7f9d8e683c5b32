package utils

import (
	"encoding/json"
	"strings"
)

// StringOrNumber 兼容 JSON 字段为 string 或 number 的场景
// 网关响应中 bdorderid、status 等字段类型不稳定，统一按字符串解析。
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringOrNumber(str)
		return nil
	}
	*s = StringOrNumber(strings.TrimSpace(string(b)))
	return nil
}

// FlexibleMsg 兼容 string / object / array 任意结构的 message 字段
type FlexibleMsg struct {
	Text string
}

func (m *FlexibleMsg) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Text = s
		return nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err == nil {
		parts := make([]string, 0, len(obj))
		for k, v := range obj {
			b, _ := json.Marshal(v)
			parts = append(parts, k+": "+strings.Trim(string(b), `"`))
		}
		m.Text = strings.Join(parts, "; ")
		return nil
	}

	m.Text = string(data)
	return nil
}

// MapToJSON 序列化为 JSON 字符串，失败时返回空对象
func MapToJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
