package dependency_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter/adaptertest"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/cache"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

type api struct {
	t      *testing.T
	engine *gin.Engine
	token  string
	redis  *miniredis.Miniredis
	events *adaptertest.RecordingPublisher
}

func newAPI(t *testing.T) *api {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  time.Minute,
			RefreshTokenExpiry: time.Hour,
		},
		Password:  config.PasswordConfig{HashCost: bcrypt.MinCost},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	events := &adaptertest.RecordingPublisher{}
	injector := dependency.NewInjector(cfg, persistencetest.NewDB(t), dependency.Externals{
		ValuationCache: cache.NewValuationCache(client, time.Hour),
		Publisher:      events,
	})

	return &api{
		t:      t,
		engine: injector.Router.Setup("test"),
		redis:  mr,
		events: events,
	}
}

func (a *api) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (a *api) register(email string) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    email,
		"name":     "Ana",
		"password": "s3cret-pass",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	a.token = decode(a.t, w)["access_token"].(string)
}

func TestHealth(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "disabled", body["cache"])
}

func TestAuthenticationRequired(t *testing.T) {
	a := newAPI(t)

	for _, path := range []string{"/api/v1/transactions", "/api/v1/investments", "/api/v1/dashboard/monthly", "/api/v1/users/me"} {
		w := a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	a.token = "not-a-jwt"
	w := a.do(http.MethodGet, "/api/v1/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH-030001", decode(t, w)["code"])
}

func TestTransactionFlow(t *testing.T) {
	a := newAPI(t)
	a.register("ana@example.com")

	entry := map[string]any{
		"description":   "Market",
		"value":         "12.50",
		"date":          "2024-03-15",
		"categoryLabel": "  Groceries ",
		"categoryType":  "cost",
	}

	w := a.do(http.MethodPost, "/api/v1/transactions", entry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, true, created["categoryCreated"])
	assert.Equal(t, 12.5, created["value"])
	assert.Equal(t, "2024-03-15", created["date"])
	id := created["id"].(string)

	t.Run("same occurrence is rejected", func(t *testing.T) {
		w := a.do(http.MethodPost, "/api/v1/transactions", entry)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		assert.Equal(t, "TXN-020001", decode(t, w)["code"])
	})

	t.Run("per-field update", func(t *testing.T) {
		w := a.do(http.MethodPatch, "/api/v1/transactions/"+id+"/value", map[string]any{"value": 13})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 13.0, decode(t, w)["value"])

		w = a.do(http.MethodPatch, "/api/v1/transactions/"+id+"/value", map[string]any{"value": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("category in use cannot be deleted", func(t *testing.T) {
		categoryID := created["categoryId"].(string)
		w := a.do(http.MethodDelete, "/api/v1/categories/"+categoryID, nil)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("dashboard sees the entry", func(t *testing.T) {
		w := a.do(http.MethodGet, "/api/v1/dashboard/monthly?startDate=2024-01-01&endDate=2024-12-31", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		months := decode(t, w)["months"].([]any)
		require.Len(t, months, 1)
		month := months[0].(map[string]any)
		assert.Equal(t, "2024-03", month["month"])
		assert.Equal(t, 13.0, month["cost"])
	})

	t.Run("malformed dashboard date", func(t *testing.T) {
		w := a.do(http.MethodGet, "/api/v1/dashboard/categories?startDate=yesterday", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("other users cannot see it", func(t *testing.T) {
		other := newAPIWithEngine(a)
		other.register("bob@example.com")
		w := other.do(http.MethodGet, "/api/v1/transactions/"+id, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := a.do(http.MethodDelete, "/api/v1/transactions/"+id, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = a.do(http.MethodGet, "/api/v1/transactions/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// newAPIWithEngine returns a second client of the same server.
func newAPIWithEngine(a *api) *api {
	return &api{t: a.t, engine: a.engine, redis: a.redis, events: a.events}
}

func TestInvestmentFlow(t *testing.T) {
	a := newAPI(t)
	a.register("ana@example.com")

	w := a.do(http.MethodPost, "/api/v1/investments", map[string]any{
		"description":    "CDB",
		"value":          1000,
		"date":           "2024-01-15",
		"recurrence":     "yes",
		"rate":           "0.01",
		"entrance":       1000,
		"recurrenceAdd":  100,
		"monthsDuration": 12,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.Equal(t, 0.01, created["rate"])
	assert.Equal(t, 12.0, created["monthsDuration"])

	valuation := func(query string) float64 {
		t.Helper()
		w := a.do(http.MethodGet, "/api/v1/investments/"+id+"/valuation"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		value, err := strconv.ParseFloat(w.Body.String(), 64)
		require.NoError(t, err)
		return value
	}

	t.Run("valuation on a date is unrounded and cached", func(t *testing.T) {
		// 1000*1.01^3 + 100*(1.01^3-1)/0.01
		assert.InDelta(t, 1333.311, valuation("?date=2024-04-15"), 1e-9)
		assert.True(t, a.redis.Exists("valuation:"+id))
	})

	t.Run("valuation at horizon", func(t *testing.T) {
		// 1000*1.01^12 + 100*(1.01^12-1)/0.01
		assert.InDelta(t, 2395.0753, valuation("?at=horizon"), 1e-3)
	})

	t.Run("update evicts cached valuations", func(t *testing.T) {
		w := a.do(http.MethodPatch, "/api/v1/investments/"+id+"/rate", map[string]any{"rate": 0})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.False(t, a.redis.Exists("valuation:"+id))

		assert.InDelta(t, 1300.0, valuation("?date=2024-04-15"), 1e-9)
	})

	t.Run("rate of minus one is rejected", func(t *testing.T) {
		w := a.do(http.MethodPatch, "/api/v1/investments/"+id+"/rate", map[string]any{"rate": -1})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Equal(t, "INV-010001", decode(t, w)["code"])
	})

	t.Run("projection", func(t *testing.T) {
		w := a.do(http.MethodGet, "/api/v1/investments/"+id+"/projection?months=2", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		points := decode(t, w)["points"].([]any)
		require.Len(t, points, 3)
		assert.Equal(t, 1200.0, points[2].(map[string]any)["value"])
	})

	t.Run("projection beyond the float range is unprocessable", func(t *testing.T) {
		w := a.do(http.MethodPatch, "/api/v1/investments/"+id+"/rate", map[string]any{"rate": "10"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = a.do(http.MethodGet, "/api/v1/investments/"+id+"/projection?months=1200", nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		assert.Equal(t, "INV-020001", decode(t, w)["code"])
	})

	t.Run("events are published", func(t *testing.T) {
		assert.NotEmpty(t, a.events.Events())
	})
}
