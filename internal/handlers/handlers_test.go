package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/arkade-01/arkID/internal/api"
	"github.com/arkade-01/arkID/internal/checkout"
	"github.com/arkade-01/arkID/internal/config"
	"github.com/arkade-01/arkID/internal/handlers"
	"github.com/arkade-01/arkID/internal/router"
	"github.com/arkade-01/arkID/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	mux  http.Handler
	hits *int64
}

// newEnv wires the full handler stack against a fake order backend.
func newEnv(t *testing.T, backend http.HandlerFunc) env {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		backend(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{
		BackendAPIURL: srv.URL,
		CardAmount:    30000,
		CardCurrency:  "NGN",
		VerifyDelay:   0, // tests must not wait out the settle delay
		SupportEmail:  "support@arkid.com",
		Env:           "test",
	}

	logger := utils.NewLogger("test")
	client := api.New(cfg.BackendAPIURL, logger)
	h := handlers.NewHandler(checkout.NewDiscount(client, logger), checkout.NewOrders(client, logger), cfg, logger)
	return env{mux: router.New(h), hits: &hits}
}

func (e env) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestApplyDiscount_Valid(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discounts/validate/WAIVE100", r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	})

	rec, body := e.do(t, http.MethodPost, "/checkout/discounts/apply", `{"code":"WAIVE100"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["valid"])
}

func TestApplyDiscount_BlankCode(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	rec, body := e.do(t, http.MethodPost, "/checkout/discounts/apply", `{"code":"  "}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["valid"])
	assert.EqualValues(t, 0, *e.hits)
}

func TestApplyDiscount_Invalid(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"not found"}`))
	})

	_, body := e.do(t, http.MethodPost, "/checkout/discounts/apply", `{"code":"NOPE"}`)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "Invalid discount code", body["message"])
}

func TestCreateOrder_RedirectPath(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		var order map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.EqualValues(t, 30000, order["amount"])
		assert.Equal(t, "NGN", order["currency"])
		w.Write([]byte(`{"success":true,"data":{"status":"pending"},"paymentUrl":"https://pay.example/x","reference":"ref-9"}`))
	})

	rec, body := e.do(t, http.MethodPost, "/checkout/orders",
		`{"name":"Ada Obi","email":"ada@example.com","address":"1 Marina Rd","amount":"30,000"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["completed"])
	assert.Equal(t, "https://pay.example/x", body["paymentUrl"])
	assert.Equal(t, "ref-9", body["reference"])
}

func TestCreateOrder_DefaultsToCardPrice(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		var order map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.EqualValues(t, 30000, order["amount"])
		w.Write([]byte(`{"success":true,"data":{"status":"pending"},"paymentUrl":"https://pay.example/x","reference":"ref-9"}`))
	})

	rec, _ := e.do(t, http.MethodPost, "/checkout/orders",
		`{"name":"Ada Obi","email":"ada@example.com","address":"1 Marina Rd"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateOrder_DiscountCovered(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"_id":"ord-1","status":"completed","reference":"ref-1","amount":0}}`))
	})

	rec, body := e.do(t, http.MethodPost, "/checkout/orders",
		`{"name":"Ada Obi","email":"ada@example.com","address":"1 Marina Rd","amount":"0","discountCode":"WAIVE100"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["completed"])
	assert.Equal(t, "/payment/callback?status=success&reference=ref-1&order=ord-1", body["redirectUrl"])
}

func TestCreateOrder_DiscountCoveredFallbackRedirect(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"status":"completed"}}`))
	})

	_, body := e.do(t, http.MethodPost, "/checkout/orders",
		`{"name":"Ada Obi","email":"ada@example.com","address":"1 Marina Rd","amount":"0","discountCode":"WAIVE100"}`)
	assert.Equal(t, "/payment/callback?status=success&reference=discount&order=completed", body["redirectUrl"])
}

func TestCreateOrder_ZeroAmountRequiresDiscountCode(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	rec, _ := e.do(t, http.MethodPost, "/checkout/orders",
		`{"name":"Ada Obi","email":"ada@example.com","address":"1 Marina Rd","amount":"0"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, 0, *e.hits)
}

func TestCreateOrder_BackendFailure(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	rec, body := e.do(t, http.MethodPost, "/checkout/orders",
		`{"name":"Ada Obi","email":"ada@example.com","address":"1 Marina Rd","amount":"30000"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "API request failed: 500 Internal Server Error", body["message"])
}

func TestOrderStatus(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc123", r.URL.Query().Get("reference"))
		w.Write([]byte(`{"success":true,"data":{"status":"completed"}}`))
	})

	rec, body := e.do(t, http.MethodGet, "/checkout/orders/status?reference=abc123", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", body["status"])
}

func TestOrderStatus_MissingReference(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	rec, _ := e.do(t, http.MethodGet, "/checkout/orders/status", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentCallback_VerifiesReference(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"status":"completed"}}`))
	})

	rec, body := e.do(t, http.MethodGet, "/payment/callback?reference=abc123", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", body["state"])
	assert.Equal(t, true, body["verified"])
	assert.EqualValues(t, 1, *e.hits)

	presentation := body["presentation"].(map[string]interface{})
	assert.Equal(t, "Payment Successful!", presentation["title"])
	assert.Equal(t, true, presentation["showEmailMessage"])
}

func TestPaymentCallback_URLSuccessSkipsBackend(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	_, body := e.do(t, http.MethodGet, "/payment/callback?status=success&reference=discount&order=completed", "")
	assert.Equal(t, "completed", body["state"])
	assert.EqualValues(t, 0, *e.hits)
}

func TestPaymentCallback_PathStatusHint(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	_, body := e.do(t, http.MethodGet, "/payment/failed", "")
	presentation := body["presentation"].(map[string]interface{})
	assert.Equal(t, "Payment Failed", presentation["title"])
	assert.EqualValues(t, 0, *e.hits)
}

func TestPaymentCallback_ErrorMessageFromURL(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	_, body := e.do(t, http.MethodGet, "/payment/callback?status=error&message=gateway+timeout", "")
	presentation := body["presentation"].(map[string]interface{})
	assert.Equal(t, "Payment Error", presentation["title"])
	assert.Equal(t, "gateway timeout", presentation["message"])
}

func TestRefreshStatus(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"status":"pending"}}`))
	})

	rec, body := e.do(t, http.MethodPost, "/payment/callback/refresh", `{"reference":"abc123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", body["state"])

	presentation := body["presentation"].(map[string]interface{})
	assert.Equal(t, "Payment Pending", presentation["title"])
	assert.Equal(t, true, presentation["showRefresh"])
}

func TestRefreshStatus_MissingReference(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	rec, _ := e.do(t, http.MethodPost, "/payment/callback/refresh", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	rec, body := e.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "online", body["message"])
	assert.NotZero(t, body["routeCount"])
}
