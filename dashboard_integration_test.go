package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/order-dashboard/config"
	"github.com/yeremiapane/order-dashboard/database"
	"github.com/yeremiapane/order-dashboard/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	database.SecretHashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// fakeBackend serves the order backend contract for one restaurant.
type fakeBackend struct {
	mu     sync.Mutex
	orders []map[string]interface{}
}

func newFakeBackend() *fakeBackend {
	now := time.Now().UTC().Format("2006-01-02T15:04:05")
	return &fakeBackend{orders: []map[string]interface{}{
		{"id": "a", "restaurantId": "resto001", "table": "4", "total": 12.5, "status": "pending", "createdAt": now,
			"items": []map[string]interface{}{{"itemId": "1", "name": "Soup", "quantity": 1, "price": 12.5}}},
		{"id": "b", "restaurantId": "resto001", "table": "7", "total": 30, "status": "completed", "timestamp": now,
			"items": []map[string]interface{}{{"itemId": "2", "itemName": "Steak", "quantity": 1, "price": 30}}},
	}}
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/signin":
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid email or password"}`))
			return
		}
		w.Write([]byte(`{"restaurant":{"id":"r-1","retailerId":"resto001","name":"Bella Vista Restaurant","email":"bella@restaurant.com","createdAt":"2024-01-01T00:00:00"}}`))
	case r.Method == http.MethodGet && r.URL.Path == "/restaurants":
		w.Write([]byte(`[{"id":"resto001","name":"Bella Vista Restaurant"}]`))
	case r.Method == http.MethodGet && r.URL.Path == "/orders/resto001":
		json.NewEncoder(w).Encode(fb.orders)
	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/complete"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/orders/"), "/complete")
		for _, o := range fb.orders {
			if o["id"] == id {
				o["status"] = "completed"
				json.NewEncoder(w).Encode(o)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Order not found"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func setupTestApp(t *testing.T, mode config.AuthMode, backendURL string) *app {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:                "0",
		BackendURL:          backendURL,
		BackendTimeout:      5 * time.Second,
		AuthMode:            mode,
		PollInterval:        time.Hour,
		CORSOrigin:          "http://127.0.0.1:5500",
		SigninRatePerMinute: 100,
	}
	a := newApp(cfg, db)
	t.Cleanup(a.Dashboard.Close)
	return a
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func statValue(t *testing.T, view map[string]interface{}, key string) string {
	t.Helper()
	for _, s := range view["stats"].([]interface{}) {
		card := s.(map[string]interface{})
		if card["key"] == key {
			return card["value"].(string)
		}
	}
	t.Fatalf("stat %s not found", key)
	return ""
}

// TestRemoteDashboardFlow covers sign-in, completing an order, the status
// filter and sign-out against a backend.
func TestRemoteDashboardFlow(t *testing.T) {
	backend := httptest.NewServer(newFakeBackend())
	defer backend.Close()
	a := setupTestApp(t, config.AuthModeRemote, backend.URL)
	r := a.Engine

	code, _ := doJSON(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, r, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := doJSON(t, r, http.MethodPost, "/signin", map[string]string{"email": "bella", "password": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	errs := env.Data["errors"].(map[string]interface{})
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Equal(t, "Password is required", errs["password"])

	code, env = doJSON(t, r, http.MethodPost, "/signin", map[string]string{"email": "bella@restaurant.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Message)

	code, env = doJSON(t, r, http.MethodPost, "/signin", map[string]string{"email": "bella@restaurant.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, code, env.Message)
	dashboard := env.Data["dashboard"].(map[string]interface{})
	assert.Len(t, dashboard["orders"], 2)
	assert.Equal(t, "2", statValue(t, dashboard, "total"))
	assert.Equal(t, "1", statValue(t, dashboard, "pending"))
	assert.Equal(t, "$30.00", statValue(t, dashboard, "revenue"))

	code, env = doJSON(t, r, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, env.Data["signedIn"])

	code, env = doJSON(t, r, http.MethodPut, "/orders/a/complete", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "0", statValue(t, env.Data, "pending"))
	assert.Equal(t, "$42.50", statValue(t, env.Data, "revenue"))
	assert.Equal(t, "$21.25", statValue(t, env.Data, "average"))

	code, env = doJSON(t, r, http.MethodPut, "/orders/zzz/complete", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Order not found", env.Message)

	code, env = doJSON(t, r, http.MethodPut, "/dashboard/filter", map[string]string{"status": "pending"})
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, env.Data["orders"])
	assert.Equal(t, "All orders have been completed!", env.Data["empty"].(map[string]interface{})["message"])
	assert.Equal(t, "Order not found", env.Data["error"])

	code, _ = doJSON(t, r, http.MethodPut, "/dashboard/filter", map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = doJSON(t, r, http.MethodGet, "/orders?status=completed", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, env.Data["orders"], 2)

	code, _ = doJSON(t, r, http.MethodGet, "/orders?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, r, http.MethodPost, "/signout", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, r, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestBackendDownClearsOrders(t *testing.T) {
	backend := httptest.NewServer(newFakeBackend())
	a := setupTestApp(t, config.AuthModeRemote, backend.URL)

	code, _ := doJSON(t, a.Engine, http.MethodPost, "/signin", map[string]string{"email": "bella@restaurant.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)

	backend.Close()

	code, env := doJSON(t, a.Engine, http.MethodPost, "/orders/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Contains(t, env.Message, "Failed to fetch orders")

	code, env = doJSON(t, a.Engine, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, env.Data["orders"])
	assert.Contains(t, env.Data["error"], "Failed to fetch orders")
}

func TestMockModeSignUpAndDemo(t *testing.T) {
	a := setupTestApp(t, config.AuthModeMock, "http://127.0.0.1:1")
	r := a.Engine

	code, env := doJSON(t, r, http.MethodGet, "/restaurants", nil)
	require.Equal(t, http.StatusOK, code)

	code, env = doJSON(t, r, http.MethodPost, "/signup", map[string]string{
		"email": "owner@bella.com", "retailerId": "resto001", "secretCode": "BELLA2024",
		"password": "longenough", "confirmPassword": "longenough",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid retailer ID and secret code combination, or account already active.", env.Message)

	code, env = doJSON(t, r, http.MethodPost, "/signin", map[string]string{"email": "demo@restaurant.com", "password": "password123"})
	require.Equal(t, http.StatusOK, code, env.Message)
	dashboard := env.Data["dashboard"].(map[string]interface{})
	assert.Len(t, dashboard["orders"], 3)
	assert.Equal(t, "Demo Restaurant", dashboard["header"].(map[string]interface{})["title"])

	code, env = doJSON(t, r, http.MethodPut, "/orders/order-002/complete", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "1", statValue(t, env.Data, "pending"))

	code, env = doJSON(t, r, http.MethodPut, "/orders/order-999/complete", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Order order-999 not found", env.Message)
}

func TestDashboardWebsocket(t *testing.T) {
	backend := httptest.NewServer(newFakeBackend())
	defer backend.Close()
	a := setupTestApp(t, config.AuthModeRemote, backend.URL)

	server := httptest.NewServer(a.Engine)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/dashboard"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	code, _ := doJSON(t, a.Engine, http.MethodPost, "/signin", map[string]string{"email": "bella@restaurant.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() map[string]interface{} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	first := read()
	assert.Equal(t, "dashboard", first["event"])
	assert.Len(t, first["data"].(map[string]interface{})["orders"], 2)

	code, _ = doJSON(t, a.Engine, http.MethodPut, "/orders/a/complete", nil)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, "order_completed", read()["event"])
	refreshed := read()
	assert.Equal(t, "orders_refreshed", refreshed["event"])
	assert.Equal(t, "0", statValue(t, refreshed["data"].(map[string]interface{}), "pending"))
}
