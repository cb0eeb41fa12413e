// Package verify reconciles a payment-gateway return with the backend's
// authoritative payment status.
package verify

import (
	"context"
	"sync"
	"time"

	"github.com/arkade-01/arkID/internal/checkout"
	"github.com/arkade-01/arkID/internal/models"
	"github.com/arkade-01/arkID/internal/utils"
)

// Params are the callback-route query parameters. The verifier takes them
// as explicit input and never reads ambient request state.
type Params struct {
	Reference string
	OrderID   string
	Status    string
	Message   string
}

// Verifier drives one callback view's verification lifecycle:
// verifying -> {completed, pending, failed, error}. The guard latches the
// first time verification finishes or is skipped, so the backend status
// call fires at most once per Verifier unless Refresh runs before the
// latch.
type Verifier struct {
	orders      *checkout.Orders
	log         *utils.Logger
	settleDelay time.Duration
	sleep       func(ctx context.Context, d time.Duration)

	params Params

	mu      sync.Mutex
	guard   bool
	state   models.VerificationState
	loading bool
}

func New(orders *checkout.Orders, logger *utils.Logger, settleDelay time.Duration, params Params) *Verifier {
	return &Verifier{
		orders:      orders,
		log:         logger,
		settleDelay: settleDelay,
		sleep:       sleepCtx,
		params:      params,
		state:       models.VerificationVerifying,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Run evaluates the mount-time transition rules in precedence order.
func (v *Verifier) Run(ctx context.Context) {
	if v.params.Status == "success" {
		// Discount-covered order or a definitive backend redirect; no
		// payment to reconcile.
		v.mu.Lock()
		v.state = models.VerificationCompleted
		v.guard = true
		v.loading = false
		v.mu.Unlock()
		return
	}

	if v.params.Reference == "" {
		// Backend already redirected with a final human-readable status;
		// nothing to verify.
		v.mu.Lock()
		v.loading = false
		v.mu.Unlock()
		return
	}

	// An in-flight check counts as latched: a second mount-triggered Run
	// must not issue another backend call while the first is pending.
	v.mu.Lock()
	if v.guard || v.loading {
		v.mu.Unlock()
		return
	}
	v.loading = true
	v.mu.Unlock()

	// Give the backend time to settle its own gateway callback, which can
	// race with the browser redirect that got us here.
	v.sleep(ctx, v.settleDelay)

	v.check(ctx)
}

// Refresh repeats the status check without the settle delay. No-op once
// the guard has latched or when there is no reference.
func (v *Verifier) Refresh(ctx context.Context) {
	if v.params.Reference == "" {
		v.log.Info("refresh_skipped_no_reference", map[string]interface{}{})
		return
	}

	v.mu.Lock()
	if v.guard || v.loading {
		v.mu.Unlock()
		v.log.Info("refresh_skipped_already_verified", map[string]interface{}{"reference": v.params.Reference})
		return
	}
	v.loading = true
	v.mu.Unlock()

	v.check(ctx)
}

func (v *Verifier) check(ctx context.Context) {
	status := v.orders.Status(ctx, v.params.Reference)

	next := models.VerificationError
	switch status {
	case models.PaymentStatusCompleted:
		next = models.VerificationCompleted
	case models.PaymentStatusPending:
		next = models.VerificationPending
	case models.PaymentStatusFailed:
		next = models.VerificationFailed
	}

	v.mu.Lock()
	v.state = next
	v.guard = true
	v.loading = false
	v.mu.Unlock()

	v.log.Info("payment_verified", map[string]interface{}{
		"reference": v.params.Reference,
		"status":    string(status),
		"state":     string(next),
	})
}

func (v *Verifier) State() models.VerificationState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Verifier) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *Verifier) Verified() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.guard
}

func (v *Verifier) Params() Params { return v.params }
