package request

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexibleID 前端可能以数字或字符串提交订单ID
type FlexibleID string

// UnmarshalJSON 同时接受 42 和 "42"
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// Int64 解析为数值ID
func (f FlexibleID) Int64() (int64, bool) {
	id, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
