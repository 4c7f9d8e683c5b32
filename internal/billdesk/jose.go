package billdesk

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// BillDesk 密钥约定：原始密钥做 base64url(无填充) 后作为 oct 密钥传输，
// 即原始 32 字节密钥本身就是 A256GCM / HS256 的密钥。
const contentKeyLen = 32

const (
	gcmNonceLen = 12
	gcmTagLen   = 16
)

var b64 = base64.RawURLEncoding

// joseHeader 受保护头，BillDesk 要求携带 clientid
type joseHeader struct {
	Alg      string `json:"alg"`
	Enc      string `json:"enc,omitempty"`
	Kid      string `json:"kid"`
	ClientID string `json:"clientid"`
}

// deriveKey 校验密钥长度并返回内容密钥（加密/签名共用同一派生规则）
func deriveKey(secret string) ([]byte, error) {
	k := []byte(secret)
	if len(k) != contentKeyLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrKeyLength, len(k), contentKeyLen)
	}
	return k, nil
}

// EncryptPayload 使用 A256GCM 加密明文，输出 JWE 紧凑格式
// 五段式：header..iv.ciphertext.tag（dir 模式下密钥段为空）
func EncryptPayload(plaintext []byte, encryptionKey, keyID, clientID string) (string, error) {
	key, err := deriveKey(encryptionKey)
	if err != nil {
		return "", err
	}

	hdr, err := json.Marshal(joseHeader{Alg: "dir", Enc: "A256GCM", Kid: keyID, ClientID: clientID})
	if err != nil {
		return "", err
	}
	protected := b64.EncodeToString(hdr)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcmNonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	// AAD 为受保护头的 base64url 串本身
	sealed := gcm.Seal(nil, nonce, plaintext, []byte(protected))
	ct := sealed[:len(sealed)-gcmTagLen]
	tag := sealed[len(sealed)-gcmTagLen:]

	return strings.Join([]string{
		protected,
		"",
		b64.EncodeToString(nonce),
		b64.EncodeToString(ct),
		b64.EncodeToString(tag),
	}, "."), nil
}

// DecryptPayload 解密 JWE 紧凑串，校验失败或结构非法时返回 ErrDecryptionFailed
func DecryptPayload(token, encryptionKey, keyID string) ([]byte, error) {
	key, err := deriveKey(encryptionKey)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 5 segments, got %d", ErrDecryptionFailed, len(parts))
	}

	rawHdr, err := b64.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad header encoding", ErrDecryptionFailed)
	}
	var hdr joseHeader
	if err := json.Unmarshal(rawHdr, &hdr); err != nil {
		return nil, fmt.Errorf("%w: bad header json", ErrDecryptionFailed)
	}
	if hdr.Enc != "A256GCM" {
		return nil, fmt.Errorf("%w: unsupported enc %q", ErrDecryptionFailed, hdr.Enc)
	}

	nonce, err := b64.DecodeString(parts[2])
	if err != nil || len(nonce) != gcmNonceLen {
		return nil, fmt.Errorf("%w: bad iv", ErrDecryptionFailed)
	}
	ct, err := b64.DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: bad ciphertext", ErrDecryptionFailed)
	}
	tag, err := b64.DecodeString(parts[4])
	if err != nil || len(tag) != gcmTagLen {
		return nil, fmt.Errorf("%w: bad tag", ErrDecryptionFailed)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, append(ct, tag...), []byte(parts[0]))
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// SignPayload 使用 HMAC-SHA256 对载荷签名，输出 JWS 紧凑格式
func SignPayload(payload []byte, signingKey, keyID, clientID string) (string, error) {
	key, err := deriveKey(signingKey)
	if err != nil {
		return "", err
	}

	hdr, err := json.Marshal(joseHeader{Alg: "HS256", Kid: keyID, ClientID: clientID})
	if err != nil {
		return "", err
	}

	protected := b64.EncodeToString(hdr)
	body := b64.EncodeToString(payload)
	input := protected + "." + body

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(input))

	return input + "." + b64.EncodeToString(mac.Sum(nil)), nil
}

// VerifyPayload 校验 JWS 签名并返回内部载荷，签名不匹配返回 ErrSignatureInvalid
// 内部载荷可能是 JSON 也可能是裸文本（例如嵌套的 JWE 串），由调用方自行判断
func VerifyPayload(token, signingKey, keyID string) ([]byte, error) {
	key, err := deriveKey(signingKey)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrSignatureInvalid, len(parts))
	}

	tag, err := b64.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: bad signature encoding", ErrSignatureInvalid)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	if !hmac.Equal(tag, mac.Sum(nil)) {
		return nil, ErrSignatureInvalid
	}

	payload, err := b64.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad payload encoding", ErrSignatureInvalid)
	}
	return payload, nil
}
