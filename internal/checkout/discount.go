// Package checkout holds the storefront order and discount workflows.
// Workflows never leak raw errors: failures become boolean/enum results
// plus an out-of-band message callers can surface inline.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/arkade-01/arkID/internal/api"
	"github.com/arkade-01/arkID/internal/models"
	"github.com/arkade-01/arkID/internal/utils"
)

type Discount struct {
	api *api.Client
	log *utils.Logger

	mu      sync.Mutex
	loading bool
	err     string
}

func NewDiscount(client *api.Client, logger *utils.Logger) *Discount {
	return &Discount{api: client, log: logger}
}

// Apply validates a discount code against the backend. A blank code is a
// no-op: false, zero network calls. Invalid codes and transport failures
// both return false; the distinction is carried in Err.
func (d *Discount) Apply(ctx context.Context, code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}

	d.mu.Lock()
	d.loading = true
	d.err = ""
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.loading = false
		d.mu.Unlock()
	}()

	raw, err := d.api.Get(ctx, api.EndpointDiscountCheck+url.PathEscape(code))
	var resp models.DiscountValidationResponse
	if err == nil {
		if uerr := json.Unmarshal(raw, &resp); uerr != nil {
			err = uerr
		} else if !resp.Success {
			err = &api.DomainError{Message: resp.Message}
		}
	}

	if err != nil {
		// Backend-declared rejection reads differently from a transport
		// failure.
		var derr *api.DomainError
		if errors.As(err, &derr) {
			d.setErr("Invalid discount code")
		} else {
			d.log.Error("discount_check_failed", map[string]interface{}{"code": code, "error": err.Error()})
			d.setErr("Failed to verify discount code")
		}
		return false
	}

	return true
}

func (d *Discount) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *Discount) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Discount) ClearError() {
	d.setErr("")
}

func (d *Discount) setErr(msg string) {
	d.mu.Lock()
	d.err = msg
	d.mu.Unlock()
}
