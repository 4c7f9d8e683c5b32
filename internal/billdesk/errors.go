package billdesk

import (
	"errors"
	"fmt"
)

// 密码层错误只在本包内部使用，跨 Client 边界前统一收敛为 TransportError
var (
	ErrKeyLength        = errors.New("billdesk: key length invalid")
	ErrSignatureInvalid = errors.New("billdesk: signature invalid")
	ErrDecryptionFailed = errors.New("billdesk: decryption failed")
)

// ErrUnreachable 网络层失败（连接拒绝、超时），调用方可安全重试整个请求
var ErrUnreachable = errors.New("billdesk: gateway unreachable")

// ErrNoRedirect 网关成功响应中缺少 redirect 链接，属于协议违例而非业务拒绝
var ErrNoRedirect = errors.New("billdesk: no redirect link in response")

// BusinessError 网关以加密信封返回的业务拒绝，原样透传给调用方
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("billdesk error [%s]: %s", e.Code, e.Message)
}

// TransportError 非预期的网关响应（错误体无法验签/解密），只携带 HTTP 状态描述
type TransportError struct {
	Reason string
}

func (e *TransportError) Error() string {
	return "billdesk api error: " + e.Reason
}
