package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/smartstay/navigator/internal/adapters/http"
	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/usecases"
)

// ---- Mock repositories ----

type mockStayRepo struct {
	listFn    func(ctx context.Context) ([]domain.Stay, error)
	getByIDFn func(ctx context.Context, id string) (*domain.Stay, error)
}

func (m *mockStayRepo) Create(ctx context.Context, s *domain.Stay) error { return nil }
func (m *mockStayRepo) List(ctx context.Context) ([]domain.Stay, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockStayRepo) GetByID(ctx context.Context, id string) (*domain.Stay, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

type mockSpotRepo struct {
	listFn func(ctx context.Context, category string) ([]domain.TouristSpot, error)
}

func (m *mockSpotRepo) Create(ctx context.Context, s *domain.TouristSpot) error { return nil }
func (m *mockSpotRepo) GetByID(ctx context.Context, id string) (*domain.TouristSpot, error) {
	return nil, nil
}
func (m *mockSpotRepo) List(ctx context.Context, category string) ([]domain.TouristSpot, error) {
	if m.listFn != nil {
		return m.listFn(ctx, category)
	}
	return nil, nil
}

type mockEventRepo struct {
	createFn           func(ctx context.Context, e *domain.Event) error
	listUpcomingNearFn func(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error)
	incInterestFn      func(ctx context.Context, id string) (int, error)
}

func (m *mockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, e)
	}
	return nil
}
func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return &domain.Event{ID: id, Title: "Beach Yoga"}, nil
}
func (m *mockEventRepo) List(ctx context.Context) ([]domain.Event, error) { return nil, nil }
func (m *mockEventRepo) ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	return nil, nil
}
func (m *mockEventRepo) ListUpcomingNear(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error) {
	if m.listUpcomingNearFn != nil {
		return m.listUpcomingNearFn(ctx, lat, lon, limit)
	}
	return nil, nil
}
func (m *mockEventRepo) ListByTag(ctx context.Context, tag string, limit int) ([]domain.Event, error) {
	return nil, nil
}
func (m *mockEventRepo) IncrementInterest(ctx context.Context, id string) (int, error) {
	if m.incInterestFn != nil {
		return m.incInterestFn(ctx, id)
	}
	return 1, nil
}
func (m *mockEventRepo) AddComment(ctx context.Context, c *domain.EventComment) error { return nil }
func (m *mockEventRepo) GetComments(ctx context.Context, eventID string) ([]domain.EventComment, error) {
	return nil, nil
}

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{
		Stays:     usecases.NewStayService(&mockStayRepo{}, nil),
		Spots:     usecases.NewSpotService(&mockSpotRepo{}, nil),
		Events:    usecases.NewEventService(&mockEventRepo{}, nil),
		Assist:    usecases.NewAssistService(nil, nil),
		Translate: usecases.NewTranslateService(),
		Culture:   usecases.NewCultureService(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func gp(lat, lon float64) *domain.GeoPoint {
	return &domain.GeoPoint{Lat: lat, Lon: lon}
}

// ---- Stay handler tests ----

func TestListStays_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stays = usecases.NewStayService(&mockStayRepo{
			listFn: func(ctx context.Context) ([]domain.Stay, error) {
				return []domain.Stay{
					{ID: "s1", Name: "Sea View Homestay", Location: gp(13.345, 74.742), Rating: 4.5},
					{ID: "s2", Name: "Hilltop Lodge", Location: gp(13.80, 75.20), Rating: 4.8},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stays", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Stay `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 2 || len(result.Data) != 2 {
		t.Errorf("expected 2 stays, got total %d len %d", result.Pagination.Total, len(result.Data))
	}
}

func TestListStays_DistanceFilter(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stays = usecases.NewStayService(&mockStayRepo{
			listFn: func(ctx context.Context) ([]domain.Stay, error) {
				return []domain.Stay{
					{ID: "near", Name: "Sea View", Location: gp(13.345, 74.742)},
					{ID: "far", Name: "Hilltop", Location: gp(13.80, 75.20)},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/stays?lat=13.344&lon=74.742", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data []domain.Stay `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if len(result.Data) != 1 || result.Data[0].ID != "near" {
		t.Errorf("expected only the nearby stay, got %+v", result.Data)
	}
	if result.Data[0].Distance == nil {
		t.Error("expected computed distance on filtered stay")
	}
}

func TestListStays_HalfCoordinate(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/stays?lat=13.344", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for half-supplied coordinates, got %d", resp.StatusCode)
	}
}

// ---- Event handler tests ----

func TestListEvents_LocationRequired(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/events", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 without viewer location, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "location_required" {
		t.Errorf("expected location_required code, got %s", apiErr.Code)
	}
}

func TestListEvents_VisibilityGate(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Events = usecases.NewEventService(&mockEventRepo{
			listUpcomingNearFn: func(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error) {
				return []domain.Event{
					{ID: "visible", Title: "Beach Yoga", Location: gp(13.345, 74.742),
						VisibilityRadiusKm: 10, Date: time.Now().Add(time.Hour)},
					{ID: "hidden", Title: "Hill Trek", Location: gp(14.5, 75.9),
						VisibilityRadiusKm: 5, Date: time.Now().Add(time.Hour)},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/events?lat=13.344&lon=74.742", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Events []domain.Event `json:"events"`
		Count  int            `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Count != 1 || result.Events[0].ID != "visible" {
		t.Errorf("expected only the visible event, got %+v", result.Events)
	}
}

func TestCreateEvent_ModerationRejected(t *testing.T) {
	app := setupApp(makeDeps())

	body := strings.NewReader(`{"title":"Buy now","description":"this is spam"}`)
	req := httptest.NewRequest("POST", "/v1/events", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for rejected content, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Message string `json:"message"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if !strings.Contains(apiErr.Message, "inappropriate") {
		t.Errorf("expected moderation reason in message, got %q", apiErr.Message)
	}
}

func TestCreateEvent_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Events = usecases.NewEventService(&mockEventRepo{
			createFn: func(ctx context.Context, e *domain.Event) error {
				e.ID = "e1"
				return nil
			},
		}, nil)
	})
	app := setupApp(deps)

	body := strings.NewReader(`{"title":"Sunset Kayaking","coordinate":{"lat":13.34,"lon":74.74}}`)
	req := httptest.NewRequest("POST", "/v1/events", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var event domain.Event
	json.NewDecoder(resp.Body).Decode(&event)
	if event.ID != "e1" {
		t.Errorf("expected created event id, got %q", event.ID)
	}
	if event.VisibilityRadiusKm != domain.DefaultVisibilityRadiusKm {
		t.Errorf("expected default visibility radius, got %v", event.VisibilityRadiusKm)
	}
}

func TestMarkInterest(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Events = usecases.NewEventService(&mockEventRepo{
			incInterestFn: func(ctx context.Context, id string) (int, error) { return 7, nil },
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("POST", "/v1/events/e1/interest", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Count int `json:"interested_count"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Count != 7 {
		t.Errorf("expected interested_count 7, got %d", result.Count)
	}
}

// ---- Spot handler tests ----

func TestSurpriseSpot_LocationRequired(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/tourist-spots/surprise", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 without viewer location, got %d", resp.StatusCode)
	}
}

func TestRecommendSpots_RatingPreference(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Spots = usecases.NewSpotService(&mockSpotRepo{
			listFn: func(ctx context.Context, category string) ([]domain.TouristSpot, error) {
				return []domain.TouristSpot{
					{ID: "low", Name: "Quiet Park", Rating: 3.9, Location: gp(13.34, 74.74)},
					{ID: "high", Name: "Krishna Temple", Rating: 4.9, Location: gp(13.35, 74.75)},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/tourist-spots/recommendations?preference=rating", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Recommendations []domain.TouristSpot `json:"recommendations"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if len(result.Recommendations) != 2 || result.Recommendations[0].ID != "high" {
		t.Errorf("expected highest-rated first, got %+v", result.Recommendations)
	}
}

// ---- Assist handler tests ----

func TestChat_FallbackProvider(t *testing.T) {
	app := setupApp(makeDeps())

	body := strings.NewReader(`{"message":"hello there"}`)
	req := httptest.NewRequest("POST", "/v1/assist/chat", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Response string `json:"response"`
		Provider string `json:"provider"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Provider != string(domain.ProviderFallback) {
		t.Errorf("expected fallback provider, got %s", result.Provider)
	}
	if result.Response == "" {
		t.Error("expected a non-empty offline response")
	}
}

func TestChat_MissingMessage(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/assist/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTranslate_Unavailable(t *testing.T) {
	app := setupApp(makeDeps())

	body := strings.NewReader(`{"text":"hello","source_lang":"en","target_lang":"es"}`)
	req := httptest.NewRequest("POST", "/v1/translate", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503 with no translators configured, got %d", resp.StatusCode)
	}
}

// ---- Culture handler tests ----

func TestCultureCard(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/culture?location=udupi", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Card domain.CultureFact `json:"card"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Card.Title == "" || result.Card.Fact == "" {
		t.Errorf("expected a populated culture card, got %+v", result.Card)
	}
}

func TestEmergencyContacts_UnknownCountryFallsBack(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/emergency?country=atlantis", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Contacts map[string]string `json:"contacts"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Contacts["police"] != "100" {
		t.Errorf("expected default contacts, got %+v", result.Contacts)
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
