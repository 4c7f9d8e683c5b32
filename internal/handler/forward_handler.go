package handler

import (
	"crypto/rand"
	"encoding/base64"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"zaika-pay-api/internal/config"
)

// 跳转中转页：自动提交表单把三个参数 POST 给网关收银台。
// 脚本只允许带本次 nonce 的内联块执行。
var forwardTpl = template.Must(template.New("forward").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Redirecting...</title>
</head>
<body>
<p>Redirecting to payment page...</p>
<form id="sdk" method="POST" action="{{.Action}}">
<input type="hidden" name="merchantid" value="{{.MerchantID}}">
<input type="hidden" name="bdorderid" value="{{.BdOrderID}}">
<input type="hidden" name="rdata" value="{{.RData}}">
</form>
<script nonce="{{.Nonce}}">document.getElementById("sdk").submit();</script>
</body>
</html>
`))

type forwardPage struct {
	Action     string
	MerchantID string
	BdOrderID  string
	RData      string
	Nonce      string
}

type ForwardHandler struct{}

func NewForwardHandler() *ForwardHandler { return &ForwardHandler{} }

// Forward 渲染自动跳转页，三个参数缺一不可
func (h *ForwardHandler) Forward(c *gin.Context) {
	merchantID := c.Query("merchantid")
	bdOrderID := c.Query("bdorderid")
	rdata := c.Query("rdata")
	if merchantID == "" || bdOrderID == "" || rdata == "" {
		c.String(http.StatusBadRequest, "missing redirect parameters")
		return
	}

	nonce, err := newNonce()
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Header("Content-Security-Policy", "script-src 'self' 'nonce-"+nonce+"'")
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	_ = forwardTpl.Execute(c.Writer, forwardPage{
		Action:     config.C.Billdesk.RedirectURL,
		MerchantID: merchantID,
		BdOrderID:  bdOrderID,
		RData:      rdata,
		Nonce:      nonce,
	})
}

func newNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
