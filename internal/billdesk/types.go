package billdesk

import "zaika-pay-api/internal/utils"

// OrderPayload 下单业务报文（加密前的明文结构）
type OrderPayload struct {
	MercID         string            `json:"mercid"`
	OrderID        string            `json:"orderid"`
	Amount         string            `json:"amount"`
	OrderDate      string            `json:"order_date"`
	Currency       string            `json:"currency"`
	RU             string            `json:"ru"`
	AdditionalInfo map[string]string `json:"additional_info"`
	ItemCode       string            `json:"itemcode"`
	Device         Device            `json:"device"`
}

// Device 设备指纹块，除 IP 与 UA 外均为固定默认值
type Device struct {
	InitChannel       string `json:"init_channel"`
	IP                string `json:"ip"`
	UserAgent         string `json:"user_agent"`
	AcceptHeader      string `json:"accept_header"`
	FingerprintID     string `json:"fingerprintid"`
	BrowserTZ         string `json:"browser_tz"`
	BrowserColorDepth string `json:"browser_color_depth"`
	BrowserJavaEnable string `json:"browser_java_enabled"`
	BrowserScreenH    string `json:"browser_screen_height"`
	BrowserScreenW    string `json:"browser_screen_width"`
	BrowserLanguage   string `json:"browser_language"`
	BrowserJSEnabled  string `json:"browser_javascript_enabled"`
}

// DefaultDevice 按网关约定填充浏览器指纹默认值
func DefaultDevice(ip, userAgent string) Device {
	if ip == "" {
		ip = "127.0.0.1"
	}
	return Device{
		InitChannel:       "internet",
		IP:                ip,
		UserAgent:         userAgent,
		AcceptHeader:      "text/html",
		BrowserTZ:         "-330",
		BrowserColorDepth: "32",
		BrowserJavaEnable: "false",
		BrowserScreenH:    "768",
		BrowserScreenW:    "1366",
		BrowserLanguage:   "en-US",
		BrowserJSEnabled:  "true",
	}
}

// RedirectParams SDK 跳转所需的三个参数
type RedirectParams struct {
	MerchantID utils.StringOrNumber `json:"merchantid"`
	BdOrderID  utils.StringOrNumber `json:"bdorderid"`
	RData      string               `json:"rdata"`
}

// Link 网关响应中的链接描述
type Link struct {
	Rel        string         `json:"rel"`
	Href       string         `json:"href"`
	Method     string         `json:"method"`
	Parameters RedirectParams `json:"parameters"`
}

// CreateOrderResult 解密后的下单成功响应
type CreateOrderResult struct {
	BdOrderID utils.StringOrNumber `json:"bdorderid"`
	OrderID   utils.StringOrNumber `json:"orderid"`
	Status    utils.StringOrNumber `json:"status"`
	Links     []Link               `json:"links"`

	// TraceID 本次请求使用的追踪号，非网关返回字段
	TraceID string `json:"-"`
}

// RedirectLink 按 rel 定位 redirect 链接，缺失时返回 false
func (r *CreateOrderResult) RedirectLink() (*Link, bool) {
	for i := range r.Links {
		if r.Links[i].Rel == "redirect" {
			return &r.Links[i], true
		}
	}
	return nil, false
}
