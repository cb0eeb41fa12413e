package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/arkade-01/arkID/internal/api"
	"github.com/arkade-01/arkID/internal/models"
	"github.com/arkade-01/arkID/internal/utils"
)

// SubmitResult is the tagged outcome of an order submission. Exactly one of
// Order and PaymentURL is populated on success: Completed means the
// discount covered the full price and no external payment happens;
// otherwise the caller must navigate the browser to PaymentURL.
type SubmitResult struct {
	Success    bool
	Completed  bool
	Order      *models.OrderSnapshot
	PaymentURL string
	Reference  string
	Err        string
}

type Orders struct {
	api *api.Client
	log *utils.Logger

	mu      sync.Mutex
	loading bool
	err     string
}

func NewOrders(client *api.Client, logger *utils.Logger) *Orders {
	return &Orders{api: client, log: logger}
}

// Submit creates the order against the backend and dispatches on the
// returned order status. Callers must not call Submit again while a prior
// call is in flight; only one order is ever in flight per form.
func (o *Orders) Submit(ctx context.Context, order models.OrderData) SubmitResult {
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.loading = false
		o.mu.Unlock()
	}()

	raw, err := o.api.Request(ctx, http.MethodPost, api.EndpointOrders, order)
	var resp models.OrderResponse
	if err == nil {
		if uerr := json.Unmarshal(raw, &resp); uerr != nil {
			err = uerr
		} else if !resp.Success {
			err = &api.DomainError{Message: resp.Message}
		}
	}

	if err != nil {
		msg := "Failed to process order"
		var terr *api.TransportError
		var derr *api.DomainError
		switch {
		case errors.As(err, &terr):
			msg = terr.Error()
		case errors.As(err, &derr) && derr.Message != "":
			msg = derr.Message
		}
		o.log.Error("order_submit_failed", map[string]interface{}{"email": order.Email, "error": err.Error()})
		o.setErr(msg)
		return SubmitResult{Err: msg}
	}

	if models.ParsePaymentStatus(string(resp.Data.Status)) == models.PaymentStatusCompleted {
		order := resp.Data
		return SubmitResult{Success: true, Completed: true, Order: &order}
	}

	return SubmitResult{
		Success:    true,
		PaymentURL: resp.PaymentURL,
		Reference:  resp.Reference,
	}
}

// Status looks up the payment status for a reference. It degrades to
// PaymentStatusUnknown on any failure and never returns an error.
func (o *Orders) Status(ctx context.Context, reference string) models.PaymentStatus {
	raw, err := o.api.Get(ctx, api.EndpointPaymentStatus+"?reference="+url.QueryEscape(reference))
	if err != nil {
		o.log.Error("payment_status_failed", map[string]interface{}{"reference": reference, "error": err.Error()})
		return models.PaymentStatusUnknown
	}

	var resp models.OrderStatusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		o.log.Error("payment_status_bad_response", map[string]interface{}{"reference": reference, "error": err.Error()})
		return models.PaymentStatusUnknown
	}

	return models.ParsePaymentStatus(resp.Data.Status)
}

func (o *Orders) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

func (o *Orders) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

func (o *Orders) ClearError() {
	o.setErr("")
}

func (o *Orders) setErr(msg string) {
	o.mu.Lock()
	o.err = msg
	o.mu.Unlock()
}
