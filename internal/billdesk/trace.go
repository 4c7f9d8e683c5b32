package billdesk

import (
	"crypto/rand"
	"fmt"
	"time"
)

// istZone BillDesk 要求的固定时区 UTC+5:30
var istZone = time.FixedZone("IST", 5*3600+30*60)

const traceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTraceID 生成请求追踪号：TRC + 毫秒时间戳 + 6 位随机大写字母数字
func NewTraceID() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = traceAlphabet[int(b)%len(traceAlphabet)]
	}
	return fmt.Sprintf("TRC%d%s", time.Now().UnixMilli(), buf)
}

// ISTTimestamp BD-Timestamp 请求头格式 YYYYMMDDHHmmss（IST 本地时间）
func ISTTimestamp(t time.Time) string {
	return t.In(istZone).Format("20060102150405")
}

// OrderDate 业务报文 order_date 字段格式，固定 +05:30 偏移
func OrderDate(t time.Time) string {
	return t.In(istZone).Format("2006-01-02T15:04:05-07:00")
}
