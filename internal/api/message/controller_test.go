package message

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, svc)
	return r
}

func TestHandleRejectsMalformedJSON(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/message", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] != "invalid_payload" {
		t.Errorf("got body %v", body)
	}
	if len(f.logs.inserts) != 0 {
		t.Error("rejected payload still produced a log row")
	}
}

func TestHandleProcessesMessage(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.svc)

	payload := `{"MobileNo": "919876543210", "Wa_Name": "Ramesh", "WA_Msg_Text": "Jai Shree Ram", "WA_Msg_Type": "text"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/message", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var resp MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not a MessageResponse: %v", err)
	}
	if resp.PhoneNumber != "919876543210" || resp.AIResponse == "" {
		t.Errorf("got %+v", resp)
	}
}

func TestClassifyOnlyRequiresMessage(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/classify-only", strings.NewReader(`{"is_image": false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
}

func TestClassifyOnly(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/classify-only", strings.NewReader(`{"message": "Jai Shree Ram"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["classification"] != "General|Greeting" {
		t.Errorf("got %v", body)
	}
	if f.router.calls != 0 {
		t.Error("classify-only must not generate a reply")
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}
	var body struct {
		Categories []struct {
			Category      string   `json:"category"`
			Definition    string   `json:"definition"`
			Subcategories []string `json:"subcategories"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(body.Categories) != 9 {
		t.Fatalf("got %d categories, want 9", len(body.Categories))
	}
	if body.Categories[0].Category != "Donation Related Enquiries" {
		t.Errorf("first category is %q", body.Categories[0].Category)
	}
	for _, c := range body.Categories {
		if c.Definition == "" || len(c.Subcategories) == 0 {
			t.Errorf("category %q is incomplete", c.Category)
		}
	}
}
