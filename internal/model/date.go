package model

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// DateLayout 数据文件中的日期格式
const DateLayout = "2006-01-02"

// Date 日历日期，JSON 中为 "YYYY-MM-DD"（兼容 RFC 3339 时间戳）
type Date struct {
	time.Time
}

// ParseDate 解析日期字符串
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("无效日期 %q: 需要 YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// MustDate 仅用于测试与固定数据
func MustDate(s string) *Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

// UnmarshalJSON 实现 json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("日期必须是字符串: %s", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// String 返回 YYYY-MM-DD
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Display 展示格式，如 "Jan 2, 2024"
func (d Date) Display() string {
	return d.Format("Jan 2, 2006")
}
