package router

import (
	"net/http"

	"github.com/arkade-01/arkID/internal/handlers"
	"github.com/arkade-01/arkID/internal/utils"

	"github.com/gorilla/mux"
)

func New(h *handlers.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(utils.CorsMiddleware)
	r.Use(utils.RequestIDMiddleware)
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.HandleFunc("/checkout/discounts/apply", h.ApplyDiscount).Methods(http.MethodPost)
	r.HandleFunc("/checkout/orders", h.CreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/checkout/orders/status", h.OrderStatus).Methods(http.MethodGet)

	r.HandleFunc("/payment/callback", h.PaymentCallback).Methods(http.MethodGet)
	r.HandleFunc("/payment/callback/refresh", h.RefreshStatus).Methods(http.MethodPost)
	// The backend also redirects to path-based outcomes without ?status=.
	r.HandleFunc("/payment/{status:success|failed|error}", h.PaymentCallback).Methods(http.MethodGet)

	r.HandleFunc("/health", h.Health(r)).Methods(http.MethodGet)
	return r
}
