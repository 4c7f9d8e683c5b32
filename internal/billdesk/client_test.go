package billdesk

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		MerchantID:      "UATZAIKV2",
		ClientID:        "uatzaikv2",
		EncryptionKey:   testEncKey,
		EncryptionKeyID: "1",
		SigningKey:      testSignKey,
		SigningKeyID:    "1",
		BaseURL:         baseURL,
	})
	if err != nil {
		t.Fatalf("client init failed: %v", err)
	}
	return c
}

func testPayload() *OrderPayload {
	return &OrderPayload{
		MercID:    "UATZAIKV2",
		OrderID:   "ORD1001",
		Amount:    "100.00",
		Currency:  "356",
		ItemCode:  "DIRECT",
		Device:    DefaultDevice("", "test-agent"),
		OrderDate: "2025-06-15T17:30:00+05:30",
	}
}

// 模拟网关：验签解密请求，用同一信封格式返回给定 JSON
func encodeEnvelope(t *testing.T, body interface{}) string {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	jwe, err := EncryptPayload(raw, testEncKey, "1", "uatzaikv2")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	jws, err := SignPayload([]byte(jwe), testSignKey, "1", "uatzaikv2")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return jws
}

func TestCreateOrderSuccess(t *testing.T) {
	var gotHeaders http.Header
	var gotPayload OrderPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)

		jwe, err := VerifyPayload(string(body), testSignKey, "1")
		if err != nil {
			t.Errorf("request signature invalid: %v", err)
		}
		raw, err := DecryptPayload(string(jwe), testEncKey, "1")
		if err != nil {
			t.Errorf("request decryption failed: %v", err)
		}
		if err := json.Unmarshal(raw, &gotPayload); err != nil {
			t.Errorf("request payload not json: %v", err)
		}

		w.WriteHeader(200)
		io.WriteString(w, encodeEnvelope(t, map[string]interface{}{
			"bdorderid": "BD123",
			"orderid":   "ORD1001",
			"status":    "OK",
			"links": []map[string]interface{}{
				{"rel": "self", "href": "https://x/orders/BD123", "method": "GET"},
				{
					"rel": "redirect", "method": "POST",
					"parameters": map[string]interface{}{
						"merchantid": "UATZAIKV2",
						"bdorderid":  "BD123",
						"rdata":      "opaque-blob",
					},
				},
			},
		}))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	result, err := c.CreateOrder(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if gotHeaders.Get("Content-Type") != "application/jose" {
		t.Errorf("Content-Type = %q, want application/jose", gotHeaders.Get("Content-Type"))
	}
	if gotHeaders.Get("Accept") != "application/jose" {
		t.Errorf("Accept = %q, want application/jose", gotHeaders.Get("Accept"))
	}
	if !regexp.MustCompile(`^TRC\d{13}[A-Z0-9]{6}$`).MatchString(gotHeaders.Get("Bd-Traceid")) {
		t.Errorf("BD-Traceid malformed: %q", gotHeaders.Get("Bd-Traceid"))
	}
	if !regexp.MustCompile(`^\d{14}$`).MatchString(gotHeaders.Get("Bd-Timestamp")) {
		t.Errorf("BD-Timestamp malformed: %q", gotHeaders.Get("Bd-Timestamp"))
	}

	if gotPayload.OrderID != "ORD1001" || gotPayload.MercID != "UATZAIKV2" {
		t.Errorf("gateway saw wrong payload: %+v", gotPayload)
	}

	if string(result.BdOrderID) != "BD123" {
		t.Errorf("bdorderid = %q, want BD123", result.BdOrderID)
	}
	if result.TraceID == "" {
		t.Error("trace id not recorded on result")
	}
	link, ok := result.RedirectLink()
	if !ok {
		t.Fatal("redirect link missing")
	}
	if link.Parameters.RData != "opaque-blob" {
		t.Errorf("rdata = %q, want opaque-blob", link.Parameters.RData)
	}
}

func TestCreateOrderBusinessError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		io.WriteString(w, encodeEnvelope(t, map[string]string{
			"error_code": "101",
			"message":    "Invalid amount",
		}))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.CreateOrder(context.Background(), testPayload())

	var bizErr *BusinessError
	if !errors.As(err, &bizErr) {
		t.Fatalf("expected BusinessError, got %v", err)
	}
	if bizErr.Code != "101" || bizErr.Message != "Invalid amount" {
		t.Errorf("unexpected business error: %+v", bizErr)
	}
}

func TestCreateOrderUndecodableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(502)
		io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.CreateOrder(context.Background(), testPayload())

	var transErr *TransportError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transErr.Reason != "502 Bad Gateway" {
		t.Errorf("reason = %q, want 502 Bad Gateway", transErr.Reason)
	}
	// 密码层错误不得泄露到调用方
	if errors.Is(err, ErrSignatureInvalid) || errors.Is(err, ErrDecryptionFailed) {
		t.Error("crypto error leaked past client boundary")
	}
}

func TestCreateOrderUndecodableSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		io.WriteString(w, "not-a-jose-envelope")
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.CreateOrder(context.Background(), testPayload())

	var transErr *TransportError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestCreateOrderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.CreateOrder(context.Background(), testPayload())
	if !IsUnreachable(err) {
		t.Errorf("expected unreachable error, got %v", err)
	}
}

func TestNewClientMissingCredentials(t *testing.T) {
	_, err := NewClient(Config{MerchantID: "M", ClientID: "C"})
	if err == nil {
		t.Fatal("expected error for missing key material")
	}
}
