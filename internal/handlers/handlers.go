package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/arkade-01/arkID/internal/checkout"
	"github.com/arkade-01/arkID/internal/config"
	"github.com/arkade-01/arkID/internal/models"
	"github.com/arkade-01/arkID/internal/presenter"
	"github.com/arkade-01/arkID/internal/utils"
	"github.com/arkade-01/arkID/internal/verify"

	"github.com/gorilla/mux"
)

type Handler struct {
	Discount *checkout.Discount
	Orders   *checkout.Orders
	Cfg      config.Config
	Log      *utils.Logger
}

func NewHandler(discount *checkout.Discount, orders *checkout.Orders, cfg config.Config, logger *utils.Logger) *Handler {
	return &Handler{
		Discount: discount,
		Orders:   orders,
		Cfg:      cfg,
		Log:      logger,
	}
}

type applyDiscountRequest struct {
	Code string `json:"code"`
}

type createOrderRequest struct {
	Name         string `json:"name"`
	CardLink     string `json:"cardLink"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Currency     string `json:"currency"`
	Email        string `json:"email"`
	Amount       string `json:"amount"`
	DiscountCode string `json:"discountCode"`
}

type refreshRequest struct {
	Reference string `json:"reference"`
}

func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req applyDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	code := strings.TrimSpace(req.Code)
	valid := h.Discount.Apply(r.Context(), code)

	resp := map[string]interface{}{
		"valid": valid,
	}
	if msg := h.Discount.Err(); msg != "" {
		resp["message"] = msg
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	address := strings.TrimSpace(req.Address)
	if name == "" || email == "" || address == "" {
		utils.RespondError(w, http.StatusBadRequest, "name, email and address are required")
		return
	}

	// The card has one fixed price; an omitted amount means "charge it".
	amount := h.Cfg.CardAmount
	if strings.TrimSpace(req.Amount) != "" {
		var err error
		amount, err = utils.ParseAmount(req.Amount)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
			return
		}
	}

	discountCode := strings.TrimSpace(req.DiscountCode)
	if amount == 0 && discountCode == "" {
		// Zero-amount orders only exist on the discount-covered path.
		utils.RespondError(w, http.StatusBadRequest, "a discount code is required for a zero amount")
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = h.Cfg.CardCurrency
	}

	order := models.OrderData{
		Name:         name,
		CardLink:     strings.TrimSpace(req.CardLink),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      address,
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		Currency:     currency,
		Email:        email,
		Amount:       amount,
		DiscountCode: discountCode,
	}

	result := h.Orders.Submit(r.Context(), order)
	if !result.Success {
		utils.RespondError(w, http.StatusBadGateway, result.Err)
		return
	}

	if result.Completed {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"completed":   true,
			"order":       result.Order,
			"amount":      utils.FormatNaira(result.Order.Amount),
			"redirectUrl": completedCallbackURL(result.Order),
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"completed":  false,
		"paymentUrl": result.PaymentURL,
		"reference":  result.Reference,
	})
}

// completedCallbackURL builds the discount-covered redirect:
// /payment/callback?status=success&reference={ref-or-"discount"}&order={id-or-"completed"}
func completedCallbackURL(order *models.OrderSnapshot) string {
	ref := order.Reference
	if ref == "" {
		ref = "discount"
	}
	id := order.ID
	if id == "" {
		id = "completed"
	}
	return fmt.Sprintf("/payment/callback?status=success&reference=%s&order=%s",
		url.QueryEscape(ref), url.QueryEscape(id))
}

func (h *Handler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	reference := strings.TrimSpace(r.URL.Query().Get("reference"))
	if reference == "" {
		utils.RespondError(w, http.StatusBadRequest, "reference is required")
		return
	}

	status := h.Orders.Status(r.Context(), reference)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"reference": reference,
		"status":    string(status),
	})
}

// PaymentCallback handles the return from the payment gateway. Each
// request is one mounted view of the callback page: a fresh verifier runs
// the transition rules once and the presenter shapes the outcome.
func (h *Handler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	params := callbackParams(r)

	v := verify.New(h.Orders, h.Log, h.Cfg.VerifyDelay, params)
	v.Run(r.Context())

	h.respondCallback(w, v)
}

// RefreshStatus re-checks a pending payment without the settle delay.
func (h *Handler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	params := verify.Params{Reference: strings.TrimSpace(req.Reference)}
	if params.Reference == "" {
		utils.RespondError(w, http.StatusBadRequest, "reference is required")
		return
	}

	v := verify.New(h.Orders, h.Log, 0, params)
	v.Refresh(r.Context())

	h.respondCallback(w, v)
}

func (h *Handler) respondCallback(w http.ResponseWriter, v *verify.Verifier) {
	params := v.Params()
	info := presenter.Describe(params.Status, params.Message, v.State())

	resp := map[string]interface{}{
		"state":        string(v.State()),
		"verified":     v.Verified(),
		"presentation": info,
		"supportEmail": h.Cfg.SupportEmail,
	}
	if params.Reference != "" {
		resp["reference"] = params.Reference
	}
	if params.OrderID != "" {
		resp["order"] = params.OrderID
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

// callbackParams reads the gateway-redirect query parameters. The backend
// sometimes redirects to /payment/{success|failed|error} instead of
// passing ?status=, so the route path doubles as a status hint.
func callbackParams(r *http.Request) verify.Params {
	q := r.URL.Query()
	params := verify.Params{
		Reference: strings.TrimSpace(q.Get("reference")),
		OrderID:   strings.TrimSpace(q.Get("order")),
		Status:    strings.TrimSpace(q.Get("status")),
		Message:   strings.TrimSpace(q.Get("message")),
	}

	if params.Status == "" {
		if hint, ok := mux.Vars(r)["status"]; ok {
			params.Status = hint
		}
	}
	return params
}
