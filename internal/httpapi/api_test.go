package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vibpath/vibgate/internal/prefs"
)

type memStore struct {
	data      map[string]bool
	connected bool
}

func (m *memStore) GetStatus(ctx context.Context, userID string) bool {
	if v, ok := m.data[userID]; ok {
		return v
	}
	return prefs.DefaultEnabled
}

func (m *memStore) SetStatus(ctx context.Context, userID string, enabled bool) bool {
	if !m.connected {
		return false
	}
	m.data[userID] = enabled
	return true
}

func (m *memStore) Delete(ctx context.Context, userID string) error {
	delete(m.data, userID)
	return nil
}

func (m *memStore) List(ctx context.Context) ([]prefs.UserPreference, error) {
	out := make([]prefs.UserPreference, 0, len(m.data))
	for id, enabled := range m.data {
		out = append(out, prefs.UserPreference{UserID: id, AIReplyEnabled: enabled})
	}
	return out, nil
}

func (m *memStore) Connected() bool { return m.connected }
func (m *memStore) Close() error    { return nil }

func newTestRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := prefs.NewService(store, prefs.NewCache(time.Hour))
	router := gin.New()
	NewAPI(svc).Register(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAPI_Health(t *testing.T) {
	router := newTestRouter(&memStore{data: map[string]bool{}, connected: true})
	w := doRequest(router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["storeConnected"] != true {
		t.Fatalf("storeConnected = %v", body["storeConnected"])
	}
}

func TestAPI_GetPreferenceDefaultsTrue(t *testing.T) {
	router := newTestRouter(&memStore{data: map[string]bool{}, connected: true})
	w := doRequest(router, http.MethodGet, "/api/users/u1/preferences", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		UserID         string `json:"userId"`
		AIReplyEnabled bool   `json:"aiReplyEnabled"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.UserID != "u1" || !body.AIReplyEnabled {
		t.Fatalf("body = %+v", body)
	}
}

func TestAPI_PutPreference(t *testing.T) {
	store := &memStore{data: map[string]bool{}, connected: true}
	router := newTestRouter(store)

	w := doRequest(router, http.MethodPut, "/api/users/u1/preferences", `{"aiReplyEnabled": false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if v, ok := store.data["u1"]; !ok || v {
		t.Fatalf("store[u1] = (%v, %v), want (false, true)", v, ok)
	}
}

func TestAPI_PutPreferenceValidation(t *testing.T) {
	router := newTestRouter(&memStore{data: map[string]bool{}, connected: true})

	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"wrong type", `{"aiReplyEnabled": "yes"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPut, "/api/users/u1/preferences", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestAPI_PutPreferenceStoreDown(t *testing.T) {
	router := newTestRouter(&memStore{data: map[string]bool{}, connected: false})
	w := doRequest(router, http.MethodPut, "/api/users/u1/preferences", `{"aiReplyEnabled": true}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestAPI_ListUsersStoreDown(t *testing.T) {
	router := newTestRouter(&memStore{data: map[string]bool{}, connected: false})
	w := doRequest(router, http.MethodGet, "/api/users", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestAPI_DeletePreference(t *testing.T) {
	store := &memStore{data: map[string]bool{"u1": false}, connected: true}
	router := newTestRouter(store)

	w := doRequest(router, http.MethodDelete, "/api/users/u1/preferences", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, ok := store.data["u1"]; ok {
		t.Fatal("record not deleted")
	}
}

func TestAPI_CacheEndpoints(t *testing.T) {
	router := newTestRouter(&memStore{data: map[string]bool{"u1": false}, connected: true})

	// Warm the cache through a read.
	doRequest(router, http.MethodGet, "/api/users/u1/preferences", "")

	w := doRequest(router, http.MethodGet, "/api/cache/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats struct {
		Size int `json:"size"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Size != 1 {
		t.Fatalf("size = %d, want 1", stats.Size)
	}

	if w := doRequest(router, http.MethodPost, "/api/cache/clear", ""); w.Code != http.StatusOK {
		t.Fatalf("clear status = %d", w.Code)
	}
	w = doRequest(router, http.MethodGet, "/api/cache/stats", "")
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Size != 0 {
		t.Fatalf("size after clear = %d, want 0", stats.Size)
	}
}
