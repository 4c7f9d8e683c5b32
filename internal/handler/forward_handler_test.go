package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"zaika-pay-api/internal/config"
)

func forwardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/payment/forward", NewForwardHandler().Forward)
	return r
}

func doForward(t *testing.T, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	config.C.Billdesk.RedirectURL = "https://uat.billdesk.com/web/v1_2/embeddedsdk"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/payment/forward?"+params.Encode(), nil)
	forwardRouter().ServeHTTP(w, req)
	return w
}

func TestForwardRendersAutoSubmitForm(t *testing.T) {
	w := doForward(t, url.Values{
		"merchantid": {"UATZAIKV2"},
		"bdorderid":  {"BD123"},
		"rdata":      {"opaque-blob"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		`action="https://uat.billdesk.com/web/v1_2/embeddedsdk"`,
		`name="merchantid" value="UATZAIKV2"`,
		`name="bdorderid" value="BD123"`,
		`name="rdata" value="opaque-blob"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	csp := w.Header().Get("Content-Security-Policy")
	m := regexp.MustCompile(`^script-src 'self' 'nonce-([A-Za-z0-9_-]+)'$`).FindStringSubmatch(csp)
	if m == nil {
		t.Fatalf("CSP header malformed: %q", csp)
	}
	if !strings.Contains(body, `<script nonce="`+m[1]+`">`) {
		t.Error("script nonce does not match CSP header")
	}
}

func TestForwardEscapesHostileParams(t *testing.T) {
	w := doForward(t, url.Values{
		"merchantid": {`"><script>alert(1)</script>`},
		"bdorderid":  {"BD123"},
		"rdata":      {`" onmouseover="evil()`},
	})

	body := w.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("script tag not escaped")
	}
	if strings.Contains(body, `" onmouseover=`) {
		t.Error("attribute breakout not escaped")
	}
}

func TestForwardNonceUniquePerRequest(t *testing.T) {
	params := url.Values{"merchantid": {"M"}, "bdorderid": {"B"}, "rdata": {"R"}}
	a := doForward(t, params).Header().Get("Content-Security-Policy")
	b := doForward(t, params).Header().Get("Content-Security-Policy")
	if a == b {
		t.Error("CSP nonce repeated across requests")
	}
}

func TestForwardMissingParams(t *testing.T) {
	cases := []url.Values{
		{},
		{"merchantid": {"M"}, "bdorderid": {"B"}},
		{"merchantid": {"M"}, "rdata": {"R"}},
		{"bdorderid": {"B"}, "rdata": {"R"}},
	}
	for _, params := range cases {
		if w := doForward(t, params); w.Code != http.StatusBadRequest {
			t.Errorf("params %v: status = %d, want 400", params, w.Code)
		}
	}
}
