package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealClientIP 获取客户端真实 IP（反向代理场景优先取转发头）
func GetRealClientIP(c *gin.Context) string {
	ipHeaders := []string{
		"CF-Connecting-IP",
		"X-Real-IP",
		"X-Forwarded-For",
	}

	for _, header := range ipHeaders {
		ipList := c.Request.Header.Get(header)
		if ipList == "" {
			continue
		}
		// X-Forwarded-For 可能包含多个 IP，取第一个合法的
		for _, ip := range strings.Split(ipList, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" && net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	ip, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
	if err == nil && net.ParseIP(ip) != nil {
		return ip
	}
	return c.ClientIP()
}
