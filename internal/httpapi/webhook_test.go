package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestWebhook_InvalidSignatureRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler("testsecret", nil)
	router := gin.New()
	router.POST("/callback", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(`{"events":[]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Line-Signature", "bogus")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid signature", w.Code)
	}
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler("testsecret", nil)
	router := gin.New()
	router.POST("/callback", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(`{"events":[]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		t.Fatal("unsigned request accepted")
	}
}
