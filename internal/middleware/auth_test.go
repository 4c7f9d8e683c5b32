package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"zaika-pay-api/internal/config"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", UserAuth(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": UserID(c)})
	})
	r.GET("/admin", AdminAuth(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func userToken(secret, userID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(userID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestUserAuth(t *testing.T) {
	config.C.Security.HMACSecret = "test-secret"
	r := authRouter()

	cases := []struct {
		name     string
		userID   string
		token    string
		wantCode int
	}{
		{"valid", "42", userToken("test-secret", "42"), 0},
		{"missing headers", "", "", 1200},
		{"bad token", "42", "deadbeef", 1203},
		{"token for other user", "42", userToken("test-secret", "43"), 1203},
		{"non numeric user", "abc", userToken("test-secret", "abc"), 1200},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if tc.userID != "" {
			req.Header.Set("X-User-Id", tc.userID)
		}
		if tc.token != "" {
			req.Header.Set("X-User-Token", tc.token)
		}
		r.ServeHTTP(w, req)

		body := w.Body.String()
		if tc.wantCode == 0 {
			if !strings.Contains(body, `"user_id":42`) {
				t.Errorf("%s: expected authenticated pass, body: %s", tc.name, body)
			}
		} else if !strings.Contains(body, `"code":`+strconv.Itoa(tc.wantCode)) {
			t.Errorf("%s: expected code %d, body: %s", tc.name, tc.wantCode, body)
		}
	}
}

func TestAdminAuth(t *testing.T) {
	config.C.Security.AdminToken = "admin-secret"
	r := authRouter()

	good := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Admin-Token", "admin-secret")
	r.ServeHTTP(good, req)
	if !strings.Contains(good.Body.String(), `"ok":true`) {
		t.Errorf("valid admin token rejected: %s", good.Body.String())
	}

	bad := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Admin-Token", "wrong")
	r.ServeHTTP(bad, req)
	if !strings.Contains(bad.Body.String(), `"code":1200`) {
		t.Errorf("invalid admin token accepted: %s", bad.Body.String())
	}

	// 未配置管理令牌时一律拒绝
	config.C.Security.AdminToken = ""
	empty := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Admin-Token", "")
	r.ServeHTTP(empty, req)
	if !strings.Contains(empty.Body.String(), `"code":1200`) {
		t.Errorf("empty admin token accepted: %s", empty.Body.String())
	}
}
