package config_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"Food-Rescue-Backend/cmd/config"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/utils/cache"
	"Food-Rescue-Backend/internal/utils/testdb"
	"Food-Rescue-Backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testApp struct {
	app    *config.App
	db     *gorm.DB
	jwt    jwt.JWTService
	logDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testdb.New(t)
	logDir := t.TempDir()
	tokens := jwt.NewJWTServiceWithSecret("test-secret")

	app, err := config.NewApp(config.AppOptions{
		DB:         db,
		Cache:      cache.NewMemoryCache(time.Minute),
		JWTService: tokens,
		Clock:      clockwork.NewFakeClockAt(now),
		Location:   time.UTC,
		Logger:     zap.NewNop(),
		LogDir:     logDir,
	})
	require.NoError(t, err)

	return &testApp{app: app, db: db, jwt: tokens, logDir: logDir}
}

func (a *testApp) user(t *testing.T, name, role string) *entities.User {
	t.Helper()
	u := &entities.User{Name: name, Email: strings.ToLower(name) + "@example.com", Role: role}
	require.NoError(t, a.db.Create(u).Error)
	return u
}

func (a *testApp) token(t *testing.T, u *entities.User) string {
	t.Helper()
	token, err := a.jwt.GenerateTokenUser(u.ID.String(), u.Role)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Fiber.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPing(t *testing.T) {
	a := newTestApp(t)

	status, _ := a.do(t, httptest.NewRequest(http.MethodGet, "/api/ping", nil), "")
	assert.Equal(t, http.StatusOK, status)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	a := newTestApp(t)
	plain := a.user(t, "Plain", entities.RoleUser)
	admin := a.user(t, "Root", entities.RoleAdmin)

	status, body := a.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil), "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, body.Status)

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil), "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, body.Status)

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil), a.token(t, plain))
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, body.Status)

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil), a.token(t, admin))
	require.Equal(t, http.StatusOK, status)
	assert.True(t, body.Status)

	var stats struct {
		TotalUsers int64 `json:"totalUsers"`
		UserRoles  struct {
			NormalUserCount int64 `json:"normalUserCount"`
		} `json:"userRoles"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &stats))
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.UserRoles.NormalUserCount)
}

func TestAdminRequestsAreAudited(t *testing.T) {
	a := newTestApp(t)
	admin := a.user(t, "Root", entities.RoleAdmin)

	status, _ := a.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), a.token(t, admin))
	require.Equal(t, http.StatusOK, status)

	audit, err := os.ReadFile(filepath.Join(a.logDir, "admin-log.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(audit), admin.ID.String())
	assert.Contains(t, string(audit), "GET /api/admin/users")
}

func TestTopDonorsOverHTTP(t *testing.T) {
	a := newTestApp(t)
	admin := a.user(t, "Root", entities.RoleAdmin)
	for _, donor := range []struct {
		name     string
		quantity int
	}{{"Alpha", 50}, {"Beta", 30}, {"Gamma", 20}} {
		restaurant := a.user(t, donor.name, entities.RoleRestaurant)
		require.NoError(t, a.db.Create(&entities.Food{
			Title:        donor.name + " surplus",
			Quantity:     donor.quantity,
			Status:       entities.FoodStatusDonated,
			ExpiryTime:   now.Add(time.Hour),
			RestaurantID: restaurant.ID,
			Timestamp:    entities.Timestamp{CreatedAt: now.Add(-time.Hour)},
		}).Error)
	}

	status, body := a.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/donors/top?limit=2", nil), a.token(t, admin))
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		TotalQuantity int64 `json:"totalQuantity"`
		TopDonors     []struct {
			Name       string `json:"name"`
			Percentage string `json:"percentage"`
		} `json:"topDonors"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.Equal(t, int64(100), resp.TotalQuantity)
	require.Len(t, resp.TopDonors, 2)
	assert.Equal(t, "Alpha", resp.TopDonors[0].Name)
	assert.Equal(t, "50.00%", resp.TopDonors[0].Percentage)
	assert.Equal(t, "Beta", resp.TopDonors[1].Name)
	assert.Equal(t, "30.00%", resp.TopDonors[1].Percentage)

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/donors/top?limit=1099511627776", nil), a.token(t, admin))
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.Len(t, resp.TopDonors, 3)
}

func TestDashboardConfigRejectsUnknownWidget(t *testing.T) {
	a := newTestApp(t)
	admin := a.user(t, "Root", entities.RoleSuperAdmin)
	token := a.token(t, admin)

	status, body := a.do(t, jsonRequest(t, http.MethodPost, "/api/admin/dashboard/config", map[string]string{"add": "weather"}), token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Status)

	status, body = a.do(t, jsonRequest(t, http.MethodPost, "/api/admin/dashboard/config", map[string]string{"add": "location-stats"}), token)
	require.Equal(t, http.StatusOK, status)

	var cfg struct {
		PermanentWidgets []string `json:"permanentWidgets"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &cfg))
	assert.Contains(t, cfg.PermanentWidgets, "location-stats")
}

func TestDeleteUserStatusMapping(t *testing.T) {
	a := newTestApp(t)
	admin := a.user(t, "Root", entities.RoleAdmin)
	token := a.token(t, admin)

	status, _ := a.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/user/not-a-uuid", nil), token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/user/"+uuid.NewString(), nil), token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateFoodFromMultipartForm(t *testing.T) {
	a := newTestApp(t)
	restaurant := a.user(t, "Kitchen", entities.RoleRestaurant)

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	for key, value := range map[string]string{
		"title":        "Fried rice",
		"quantity":     "4",
		"category":     "meal",
		"expiry_time":  now.Add(6 * time.Hour).Format(time.RFC3339),
		"donate_ready": "true",
	} {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/foods/create", &form)
	req.Header.Set("Content-Type", w.FormDataContentType())

	status, body := a.do(t, req, a.token(t, restaurant))
	require.Equal(t, http.StatusCreated, status, body.Error)

	var created entities.Food
	require.NoError(t, a.db.First(&created).Error)
	assert.Equal(t, "Fried rice", created.Title)
	assert.Equal(t, restaurant.ID, created.RestaurantID)

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/foods/available", nil), "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), created.ID.String())
}

func TestCreateFoodRequiresRestaurant(t *testing.T) {
	a := newTestApp(t)
	ngo := a.user(t, "Helpers", entities.RoleNGO)

	req := jsonRequest(t, http.MethodPost, "/api/foods/create", map[string]any{"title": "Bread"})
	status, _ := a.do(t, req, a.token(t, ngo))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestClaimLifecycleOverHTTP(t *testing.T) {
	a := newTestApp(t)
	restaurant := a.user(t, "Kitchen", entities.RoleRestaurant)
	ngo := a.user(t, "Helpers", entities.RoleNGO)
	admin := a.user(t, "Root", entities.RoleAdmin)

	posting := &entities.Food{
		Title:        "Soup",
		Quantity:     10,
		Status:       entities.FoodStatusAvailable,
		ExpiryTime:   now.Add(3 * time.Hour),
		DonateReady:  true,
		RestaurantID: restaurant.ID,
	}
	require.NoError(t, a.db.Create(posting).Error)

	status, body := a.do(t, jsonRequest(t, http.MethodPost, "/api/claim/request", map[string]string{"foodId": posting.ID.String()}), a.token(t, ngo))
	require.Equal(t, http.StatusCreated, status, body.Error)

	var claim struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &claim))

	status, _ = a.do(t, jsonRequest(t, http.MethodPost, "/api/claim/request", map[string]string{"foodId": posting.ID.String()}), a.token(t, ngo))
	assert.Equal(t, http.StatusBadRequest, status)

	target := "/api/claim/" + claim.ID + "/status"
	status, _ = a.do(t, jsonRequest(t, http.MethodPatch, target, map[string]string{"status": "maybe"}), a.token(t, admin))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, jsonRequest(t, http.MethodPatch, "/api/claim/"+uuid.NewString()+"/status", map[string]string{"status": "accepted"}), a.token(t, admin))
	assert.Equal(t, http.StatusNotFound, status)

	status, body = a.do(t, jsonRequest(t, http.MethodPatch, target, map[string]string{"status": "approved"}), a.token(t, admin))
	require.Equal(t, http.StatusOK, status, body.Error)

	var stored entities.Food
	require.NoError(t, a.db.First(&stored, "id = ?", posting.ID).Error)
	assert.Equal(t, entities.FoodStatusDonated, stored.Status)

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/claim/my-claims", nil), a.token(t, ngo))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), entities.ClaimStatusAccepted)
}

func TestWasteCollectionOverHTTP(t *testing.T) {
	a := newTestApp(t)
	restaurant := a.user(t, "Kitchen", entities.RoleRestaurant)
	recycler := a.user(t, "Compost", entities.RoleRecycler)

	status, body := a.do(t, jsonRequest(t, http.MethodPost, "/api/waste/mark", map[string]any{
		"name":     "Peels",
		"category": "organic",
		"quantity": 2.5,
		"unit":     "kg",
	}), a.token(t, restaurant))
	require.Equal(t, http.StatusCreated, status, body.Error)

	var waste struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &waste))

	status, body = a.do(t, httptest.NewRequest(http.MethodGet, "/api/waste/available", nil), a.token(t, recycler))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), waste.ID)

	status, body = a.do(t, jsonRequest(t, http.MethodPost, "/api/waste/request", map[string]string{"wasteId": waste.ID}), a.token(t, recycler))
	require.Equal(t, http.StatusCreated, status, body.Error)

	status, _ = a.do(t, jsonRequest(t, http.MethodPost, "/api/waste/request", map[string]string{"wasteId": uuid.NewString()}), a.token(t, recycler))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPurgeExpiredOverHTTP(t *testing.T) {
	a := newTestApp(t)
	admin := a.user(t, "Root", entities.RoleAdmin)
	restaurant := a.user(t, "Kitchen", entities.RoleRestaurant)

	require.NoError(t, a.db.Create(&entities.Food{
		Title:        "Old salad",
		Quantity:     1,
		Status:       entities.FoodStatusAvailable,
		ExpiryTime:   now.Add(-48 * time.Hour),
		RestaurantID: restaurant.ID,
	}).Error)

	status, body := a.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/util/purge-expired", nil), a.token(t, admin))
	require.Equal(t, http.StatusOK, status, body.Error)

	var result struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.Equal(t, int64(1), result.DeletedCount)
}
