package billdesk

import (
	"errors"
	"strings"
	"testing"
)

const (
	testEncKey  = "0123456789abcdef0123456789abcdef"
	testSignKey = "fedcba9876543210fedcba9876543210"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(`{"mercid":"UATZAIKV2","amount":"100.00"}`),
		[]byte(""),
		[]byte("订单金额 ₹100 🙂"),
	}
	for _, plaintext := range cases {
		token, err := EncryptPayload(plaintext, testEncKey, "1", "uatzaikv2")
		if err != nil {
			t.Fatalf("encrypt failed: %v", err)
		}
		if parts := strings.Split(token, "."); len(parts) != 5 {
			t.Fatalf("expected 5 segments, got %d: %s", len(parts), token)
		} else if parts[1] != "" {
			t.Errorf("dir mode key segment should be empty, got %q", parts[1])
		}

		out, err := DecryptPayload(token, testEncKey, "1")
		if err != nil {
			t.Fatalf("decrypt failed: %v", err)
		}
		if string(out) != string(plaintext) {
			t.Errorf("round trip mismatch: got %q, want %q", out, plaintext)
		}
	}
}

func TestEncryptProducesUniqueTokens(t *testing.T) {
	plaintext := []byte("same input")
	a, _ := EncryptPayload(plaintext, testEncKey, "1", "cid")
	b, _ := EncryptPayload(plaintext, testEncKey, "1", "cid")
	if a == b {
		t.Error("two encryptions produced identical tokens, nonce not random")
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	token, err := EncryptPayload([]byte("secret body"), testEncKey, "1", "cid")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	parts := strings.Split(token, ".")
	// 翻转密文第一个字符
	ct := []byte(parts[3])
	if ct[0] == 'A' {
		ct[0] = 'B'
	} else {
		ct[0] = 'A'
	}
	parts[3] = string(ct)

	_, err = DecryptPayload(strings.Join(parts, "."), testEncKey, "1")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecryptMalformedToken(t *testing.T) {
	cases := []string{
		"",
		"only.three.parts",
		"a.b.c.d",
		"!!!..!!!.!!!.!!!",
	}
	for _, tc := range cases {
		if _, err := DecryptPayload(tc, testEncKey, "1"); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("token %q: expected ErrDecryptionFailed, got %v", tc, err)
		}
	}
}

func TestDecryptWrongKey(t *testing.T) {
	token, _ := EncryptPayload([]byte("body"), testEncKey, "1", "cid")
	other := "ffffffffffffffffffffffffffffffff"
	if _, err := DecryptPayload(token, other, "1"); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed with wrong key, got %v", err)
	}
}

func TestKeyLengthValidation(t *testing.T) {
	for _, key := range []string{"", "short", strings.Repeat("x", 31), strings.Repeat("x", 33)} {
		if _, err := EncryptPayload([]byte("x"), key, "1", "cid"); !errors.Is(err, ErrKeyLength) {
			t.Errorf("key len %d: expected ErrKeyLength, got %v", len(key), err)
		}
		if _, err := SignPayload([]byte("x"), key, "1", "cid"); !errors.Is(err, ErrKeyLength) {
			t.Errorf("key len %d: expected ErrKeyLength, got %v", len(key), err)
		}
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	payload := []byte("eyJhbGciOiJkaXIifQ..abc.def.ghi")
	token, err := SignPayload(payload, testSignKey, "1", "uatzaikv2")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}

	out, err := VerifyPayload(token, testSignKey, "1")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if string(out) != string(payload) {
		t.Errorf("payload mismatch: got %q, want %q", out, payload)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	token, _ := SignPayload([]byte("original"), testSignKey, "1", "cid")
	parts := strings.Split(token, ".")
	body := []byte(parts[1])
	if body[0] == 'A' {
		body[0] = 'B'
	} else {
		body[0] = 'A'
	}
	parts[1] = string(body)

	_, err := VerifyPayload(strings.Join(parts, "."), testSignKey, "1")
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	token, _ := SignPayload([]byte("payload"), testSignKey, "1", "cid")
	other := "00000000000000000000000000000000"
	if _, err := VerifyPayload(token, other, "1"); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("expected ErrSignatureInvalid with wrong key, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	for _, tc := range []string{"", "a.b", "a.b.c.d"} {
		if _, err := VerifyPayload(tc, testSignKey, "1"); !errors.Is(err, ErrSignatureInvalid) {
			t.Errorf("token %q: expected ErrSignatureInvalid, got %v", tc, err)
		}
	}
}
