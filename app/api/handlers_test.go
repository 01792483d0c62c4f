package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skywatch/stargazer/app/apod"
	"github.com/skywatch/stargazer/app/autopopulate"
	"github.com/skywatch/stargazer/app/database"
	"github.com/skywatch/stargazer/app/images"
)

type stubApodService struct {
	payload json.RawMessage
	err     error
}

func (s *stubApodService) Get(ctx context.Context, date string) (json.RawMessage, error) {
	return s.payload, s.err
}

type stubRangeFetcher struct {
	payload json.RawMessage
	err     error
}

func (s *stubRangeFetcher) FetchRange(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	return s.payload, s.err
}

type stubResolver struct {
	urls map[string]string
}

func (s *stubResolver) Resolve(ctx context.Context, objectName string) images.Result {
	if url, ok := s.urls[objectName]; ok {
		return images.Result{Success: true, ObjectName: objectName, ImageURL: url, Source: images.SourcePrimary}
	}
	return images.Result{Success: false, ObjectName: objectName, Error: "No suitable image found"}
}

func (s *stubResolver) ResolvePreview(ctx context.Context, objectName string) images.Result {
	return s.Resolve(ctx, objectName)
}

type stubPreviews struct {
	preview *autopopulate.Preview
}

func (s *stubPreviews) BuildPreview(ctx context.Context, month string, year int) *autopopulate.Preview {
	if s.preview != nil {
		return s.preview
	}
	return &autopopulate.Preview{Month: month, Year: year}
}

type testEnv struct {
	router   *gin.Engine
	objects  database.ObjectRepository
	guides   database.GuideRepository
	resolver *stubResolver
	apodSvc  *stubApodService
}

func newTestEnv(t *testing.T, apiAccessKey string) *testEnv {
	t.Helper()

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	objects := database.NewObjectRepository(db)
	observations := database.NewObservationRepository(db)
	guides := database.NewGuideRepository(db)
	tips := database.NewTipRepository(db)

	resolver := &stubResolver{urls: map[string]string{}}
	apodSvc := &stubApodService{payload: json.RawMessage(`{"title":"apod"}`)}

	handler := NewHandler(objects, observations, guides, tips,
		apodSvc, &stubRangeFetcher{payload: json.RawMessage(`[]`)},
		resolver, &stubPreviews{})

	return &testEnv{
		router:   NewServer(handler, apiAccessKey),
		objects:  objects,
		guides:   guides,
		resolver: resolver,
		apodSvc:  apodSvc,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestGetApod(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, "GET", "/api/apod?date=2026-08-23", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/apod = %d, want 200", w.Code)
	}
	if w.Body.String() != `{"title":"apod"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGetApodErrorMapping(t *testing.T) {
	env := newTestEnv(t, "")
	env.apodSvc.payload = nil
	env.apodSvc.err = &apod.StatusError{Code: 429}

	w := env.do(t, "GET", "/api/apod", nil, nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("GET /api/apod = %d, want 429", w.Code)
	}
}

func TestGetApodRangeRequiresDates(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, "GET", "/api/apod/range?start_date=2026-08-01", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("GET /api/apod/range without end_date = %d, want 400", w.Code)
	}

	w = env.do(t, "GET", "/api/apod/range?start_date=2026-08-01&end_date=2026-08-07", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/apod/range = %d, want 200", w.Code)
	}
}

func TestCelestialObjectEndpoints(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, "POST", "/api/celestial-objects", map[string]interface{}{
		"name":        "Ring Nebula",
		"type":        "nebula",
		"description": "A planetary nebula in Lyra.",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/celestial-objects = %d, body %s", w.Code, w.Body.String())
	}

	var created database.CelestialObject
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created object: %v", err)
	}
	if created.ImageURL != stockImageURL {
		t.Errorf("imageUrl = %q, want the stock fallback", created.ImageURL)
	}
	if created.Constellation != "Not specified" || created.VisibilityRating != "Custom" {
		t.Errorf("placeholder defaults not applied: %+v", created)
	}

	w = env.do(t, "GET", "/api/celestial-objects", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/celestial-objects = %d", w.Code)
	}
	var list []database.CelestialObject
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode object list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Ring Nebula" {
		t.Errorf("list = %+v", list)
	}

	w = env.do(t, "GET", "/api/celestial-objects/99", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET missing object = %d, want 404", w.Code)
	}

	w = env.do(t, "POST", "/api/celestial-objects", map[string]interface{}{"name": "No Type"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("POST without type = %d, want 400", w.Code)
	}

	w = env.do(t, "GET", "/api/celestial-object-types", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/celestial-object-types = %d", w.Code)
	}
	var types []string
	if err := json.Unmarshal(w.Body.Bytes(), &types); err != nil {
		t.Fatalf("failed to decode types: %v", err)
	}
	if len(types) == 0 {
		t.Error("object types list is empty")
	}
}

func TestObservationLifecycle(t *testing.T) {
	env := newTestEnv(t, "")

	objectID, err := env.objects.CreateObject(database.CelestialObject{
		Name: "Saturn", Type: "planet", Description: "The ringed planet.",
	})
	if err != nil {
		t.Fatalf("CreateObject() error = %v", err)
	}

	w := env.do(t, "POST", "/api/observations", map[string]interface{}{"objectId": 999}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("POST observation for missing object = %d, want 404", w.Code)
	}

	w = env.do(t, "POST", "/api/observations", map[string]interface{}{"objectId": objectID}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/observations = %d, body %s", w.Code, w.Body.String())
	}
	var obs database.Observation
	if err := json.Unmarshal(w.Body.Bytes(), &obs); err != nil {
		t.Fatalf("failed to decode observation: %v", err)
	}

	w = env.do(t, "GET", "/api/observations", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/observations = %d", w.Code)
	}
	var listed []observationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode observations: %v", err)
	}
	if len(listed) != 1 || listed[0].CelestialObject == nil || listed[0].CelestialObject.Name != "Saturn" {
		t.Errorf("observation list = %+v, want joined Saturn", listed)
	}

	w = env.do(t, "PATCH", "/api/observations/"+itoa(obs.ID), map[string]interface{}{
		"isObserved":       true,
		"observationNotes": "Seeing was excellent",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH /api/observations = %d, body %s", w.Code, w.Body.String())
	}
	var updated database.Observation
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode updated observation: %v", err)
	}
	if !updated.IsObserved || updated.ObservationNotes != "Seeing was excellent" {
		t.Errorf("updated observation = %+v", updated)
	}

	w = env.do(t, "DELETE", "/api/observations/"+itoa(obs.ID), nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE /api/observations = %d", w.Code)
	}
	w = env.do(t, "DELETE", "/api/observations/"+itoa(obs.ID), nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("DELETE again = %d, want 404", w.Code)
	}
}

func TestGetMonthlyGuide(t *testing.T) {
	env := newTestEnv(t, "")

	if _, err := env.guides.CreateGuide(database.MonthlyGuide{
		Month: "January", Year: 2026, Headline: "Winter Showpieces", Hemisphere: "both",
	}); err != nil {
		t.Fatalf("CreateGuide() error = %v", err)
	}

	w := env.do(t, "GET", "/api/monthly-guide?month=January&year=2026&hemisphere=Southern", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/monthly-guide = %d, body %s", w.Code, w.Body.String())
	}

	// Month names are matched case-insensitively
	w = env.do(t, "GET", "/api/monthly-guide?month=january&year=2026", nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("GET with lowercase month = %d, want 200", w.Code)
	}

	w = env.do(t, "GET", "/api/monthly-guide?month=March&year=2026", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET missing guide = %d, want 404", w.Code)
	}
}

func TestNasaImageSearch(t *testing.T) {
	env := newTestEnv(t, "")
	env.resolver.urls["M42"] = "https://images.example.org/m42.jpg"

	w := env.do(t, "GET", "/api/nasa-image-search", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("GET without object = %d, want 400", w.Code)
	}

	w = env.do(t, "GET", "/api/nasa-image-search?object=M42", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/nasa-image-search = %d", w.Code)
	}
	var result images.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if !result.Success || result.ImageURL != "https://images.example.org/m42.jpg" {
		t.Errorf("result = %+v", result)
	}
}

func TestAutoPopulateConfirm(t *testing.T) {
	env := newTestEnv(t, "")
	env.resolver.urls["M42"] = "https://images.example.org/m42.jpg"

	if _, err := env.objects.CreateObject(database.CelestialObject{
		Name: "Jupiter", Type: "planet", Description: "Already here.",
	}); err != nil {
		t.Fatalf("CreateObject() error = %v", err)
	}

	w := env.do(t, "POST", "/api/auto-populate/confirm", confirmRequest{
		Month: "January",
		Objects: []autopopulate.SuggestedObject{
			{Name: "M42", Type: "nebula", Description: "The Orion Nebula.", ViewingTips: "Use low power.", Difficulty: "easy"},
			{Name: "Jupiter", Type: "planet", Description: "Gas giant."},
			{Name: "NGC 7000", Type: "galaxy", Description: "North America Nebula region."},
		},
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/auto-populate/confirm = %d, body %s", w.Code, w.Body.String())
	}

	var response struct {
		Created []database.CelestialObject `json:"created"`
		Skipped []string                   `json:"skipped"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Skipped) != 1 || response.Skipped[0] != "Jupiter" {
		t.Errorf("skipped = %v, want existing Jupiter", response.Skipped)
	}
	if len(response.Created) != 2 {
		t.Fatalf("created %d objects, want 2", len(response.Created))
	}

	byName := map[string]database.CelestialObject{}
	for _, obj := range response.Created {
		byName[obj.Name] = obj
	}
	if byName["M42"].ImageURL != "https://images.example.org/m42.jpg" {
		t.Errorf("M42 image = %q, want the resolved URL", byName["M42"].ImageURL)
	}
	if byName["NGC 7000"].ImageURL != stockImageURL {
		t.Errorf("NGC 7000 image = %q, want the stock fallback", byName["NGC 7000"].ImageURL)
	}
	if byName["M42"].Information != "Use low power." || byName["M42"].Month != "January" {
		t.Errorf("M42 = %+v, tips and month not carried over", byName["M42"])
	}
}

func TestAutoPopulateAuth(t *testing.T) {
	env := newTestEnv(t, "secret-key")

	w := env.do(t, "POST", "/api/auto-populate/preview", autoPopulateRequest{Month: "January", Year: 2026}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("preview without key = %d, want 401", w.Code)
	}

	w = env.do(t, "POST", "/api/auto-populate/preview", autoPopulateRequest{Month: "January", Year: 2026},
		map[string]string{"X-API-Key": "secret-key"})
	if w.Code != http.StatusOK {
		t.Fatalf("preview with key = %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(t, "POST", "/api/auto-populate/preview", autoPopulateRequest{Month: "January", Year: 2026},
		map[string]string{"Authorization": "Bearer secret-key"})
	if w.Code != http.StatusOK {
		t.Fatalf("preview with bearer token = %d", w.Code)
	}

	// Read endpoints stay open
	w = env.do(t, "GET", "/api/celestial-objects", nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("GET objects with auth enabled = %d, want 200", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, "GET", "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if health["timestamp"] == nil {
		t.Error("health response missing timestamp")
	}
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"january", "January"},
		{"JULY", "July"},
		{"December", "December"},
	}

	for _, tt := range tests {
		if got := normalizeMonth(tt.input); got != tt.want {
			t.Errorf("normalizeMonth(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Month normalization runs in every handler goroutine, so it must hold no
// shared casing state
func TestNormalizeMonthConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := normalizeMonth("january"); got != "January" {
					t.Errorf("normalizeMonth(january) = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
