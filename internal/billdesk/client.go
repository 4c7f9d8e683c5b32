package billdesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"zaika-pay-api/internal/notify"
	"zaika-pay-api/internal/utils"
)

const createOrderPath = "/payments/ve1_2/orders/create"

// Config BillDesk 接入配置，进程启动时构造一次，之后只读
type Config struct {
	MerchantID      string
	ClientID        string
	EncryptionKey   string
	EncryptionKeyID string
	SigningKey      string
	SigningKeyID    string
	BaseURL         string
	RedirectURL     string
	Timeout         time.Duration
}

// Validate 五项凭据缺一不可，缺失属于配置错误而非运行时错误
func (c Config) Validate() error {
	missing := make([]string, 0, 5)
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("merchantId", c.MerchantID)
	check("clientId", c.ClientID)
	check("encryptionKey", c.EncryptionKey)
	check("encryptionKeyId", c.EncryptionKeyID)
	check("signingKey", c.SigningKey)
	check("signingKeyId", c.SigningKeyID)
	if len(missing) > 0 {
		return fmt.Errorf("billdesk config missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Client BillDesk 网关客户端，单次下单只发起一次同步 HTTP 调用，不做内部重试
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://pguat.billdesk.io"
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = "https://pay.billdesk.com/web/v1_2/embeddedsdk"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *Client) MerchantID() string { return c.cfg.MerchantID }

// RedirectURL SDK 跳转端点，自动提交表单的目标地址
func (c *Client) RedirectURL() string { return c.cfg.RedirectURL }

// CreateOrder 下单：加密 -> 签名 -> POST -> 验签 -> 解密 -> 分类
func (c *Client) CreateOrder(ctx context.Context, payload *OrderPayload) (*CreateOrderResult, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	jwe, err := EncryptPayload(plaintext, c.cfg.EncryptionKey, c.cfg.EncryptionKeyID, c.cfg.ClientID)
	if err != nil {
		return nil, err
	}
	jws, err := SignPayload([]byte(jwe), c.cfg.SigningKey, c.cfg.SigningKeyID, c.cfg.ClientID)
	if err != nil {
		return nil, err
	}

	traceID := NewTraceID()
	endpoint := c.cfg.BaseURL + createOrderPath
	log.Printf("[Billdesk] 请求地址: %s, traceId: %s, orderId: %s", endpoint, traceID, payload.OrderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(jws))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/jose")
	req.Header.Set("Accept", "application/jose")
	req.Header.Set("BD-Traceid", traceID)
	req.Header.Set("BD-Timestamp", ISTTimestamp(time.Now()))

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[Billdesk] 网关不可达: %v", err)
		notify.NotifyGatewayAlert("error", "BillDesk 网关不可达", endpoint, payload, map[string]string{
			"错误": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.classifyError(resp, body, payload, endpoint)
	}

	decrypted, err := c.decode(string(body))
	if err != nil {
		// 成功状态码却无法解码同样按传输层错误收敛，不向上抛密码层细节
		log.Printf("[Billdesk] 成功响应解码失败: %v", err)
		return nil, &TransportError{Reason: resp.Status}
	}

	var result CreateOrderResult
	if err := json.Unmarshal(decrypted, &result); err != nil {
		log.Printf("[Billdesk] 响应 JSON 解析失败: %v, 原始数据: %s", err, decrypted)
		return nil, &TransportError{Reason: resp.Status}
	}
	result.TraceID = traceID

	log.Printf("[Billdesk] 下单成功, bdorderid=%s, traceId=%s", result.BdOrderID, traceID)
	return &result, nil
}

// decode 验签 -> 解密，成功与错误响应共用同一解码链路
func (c *Client) decode(envelope string) ([]byte, error) {
	jwe, err := VerifyPayload(envelope, c.cfg.SigningKey, c.cfg.SigningKeyID)
	if err != nil {
		return nil, err
	}
	return DecryptPayload(string(jwe), c.cfg.EncryptionKey, c.cfg.EncryptionKeyID)
}

// classifyError 网关以同样的加密信封返回错误，先解码再分类；
// 解码失败时只向上抛 HTTP 状态描述，密码层错误绝不外泄
func (c *Client) classifyError(resp *http.Response, body []byte, payload *OrderPayload, endpoint string) error {
	decrypted, err := c.decode(string(body))
	if err != nil {
		log.Printf("[Billdesk] 错误响应解码失败: %v", err)
		notify.NotifyGatewayAlert("error", "BillDesk 错误响应解码失败", endpoint, payload, map[string]string{
			"HTTP状态": resp.Status,
		})
		return &TransportError{Reason: resp.Status}
	}

	var gwErr struct {
		ErrorCode string            `json:"error_code"`
		Message   utils.FlexibleMsg `json:"message"`
	}
	if err := json.Unmarshal(decrypted, &gwErr); err != nil {
		gwErr.Message.Text = string(decrypted)
	}
	if gwErr.ErrorCode == "" {
		gwErr.ErrorCode = "UNKNOWN"
	}
	msg := gwErr.Message.Text
	if msg == "" {
		msg = resp.Status
	}

	log.Printf("[Billdesk] 网关业务拒绝: code=%s, msg=%s", gwErr.ErrorCode, msg)
	notify.NotifyGatewayAlert("warn", "BillDesk 交易拒绝", endpoint, payload, map[string]string{
		"网关Code": gwErr.ErrorCode,
		"网关Msg":  msg,
	})
	return &BusinessError{Code: gwErr.ErrorCode, Message: msg}
}

// IsUnreachable 网络层失败判定，状态机据此决定是否允许原样重试
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
