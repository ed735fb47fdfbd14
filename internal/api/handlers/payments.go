package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/signcast/signcast/internal/logger"
	"github.com/signcast/signcast/pkg/quota"
	"github.com/signcast/signcast/pkg/signage/models"
	"github.com/signcast/signcast/pkg/signage/store"
)

// PaymentHandler handles package purchase endpoints.
//
// The gateway round-trip lives outside this server: a payment is created
// pending, and confirmation (driven by a gateway webhook or an operator)
// marks it paid and applies the purchased package to the tenant. Applying
// a smaller package runs quota enforcement, exactly like a direct package
// change.
type PaymentHandler struct {
	store  store.Store
	engine *quota.Engine
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(s store.Store, engine *quota.Engine) *PaymentHandler {
	return &PaymentHandler{
		store:  s,
		engine: engine,
	}
}

// CreatePaymentRequest is the request body for POST /api/payments.
type CreatePaymentRequest struct {
	PackageID string `json:"package_id"`
}

// ConfirmPaymentRequest is the request body for POST /api/payments/{id}/confirm.
type ConfirmPaymentRequest struct {
	ExternalRef string `json:"external_ref,omitempty"`
}

// PaymentResponse is the wire representation of a payment, with the
// cleanup report of the package application when one ran.
type PaymentResponse struct {
	*models.Payment
	StorageCleanup *StorageCleanupView `json:"storageCleanup,omitempty"`
}

// List handles GET /api/payments.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	payments, err := h.store.ListPaymentsByTenant(r.Context(), tenantID)
	if err != nil {
		InternalServerError(w, "Failed to list payments")
		return
	}
	WriteJSONOK(w, payments)
}

// Get handles GET /api/payments/{id}.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	payment, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}
	WriteJSONOK(w, PaymentResponse{Payment: payment})
}

// Create handles POST /api/payments.
// Opens a pending payment for the tenant to purchase the given package,
// priced from the package at creation time.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.PackageID == "" {
		BadRequest(w, "package_id is required")
		return
	}

	pkg, err := h.store.GetPackage(r.Context(), req.PackageID)
	if err != nil {
		if errors.Is(err, models.ErrPackageNotFound) {
			UnprocessableEntity(w, "Package does not exist")
			return
		}
		InternalServerError(w, "Failed to fetch package")
		return
	}
	if !pkg.Active {
		UnprocessableEntity(w, "Package is not available for purchase")
		return
	}

	payment := &models.Payment{
		TenantID:    tenantID,
		PackageID:   pkg.ID,
		AmountCents: pkg.PriceCents,
		Currency:    pkg.Currency,
	}

	id, err := h.store.CreatePayment(r.Context(), payment)
	if err != nil {
		InternalServerError(w, "Failed to create payment")
		return
	}

	created, err := h.store.GetPayment(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to fetch created payment")
		return
	}
	WriteJSONCreated(w, PaymentResponse{Payment: created})
}

// Confirm handles POST /api/payments/{id}/confirm.
//
// Marks a pending payment paid and applies the purchased package to the
// tenant. Quota enforcement runs after the package switch; its cleanup
// report is embedded in the response when content was deleted.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	payment, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	var req ConfirmPaymentRequest
	if r.ContentLength > 0 && !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.store.MarkPaymentPaid(r.Context(), payment.ID, req.ExternalRef, time.Now().UTC()); err != nil {
		if errors.Is(err, models.ErrPaymentNotPending) {
			Conflict(w, "Payment is not pending")
			return
		}
		InternalServerError(w, "Failed to confirm payment")
		return
	}

	if err := h.store.SetTenantPackage(r.Context(), payment.TenantID, payment.PackageID); err != nil {
		InternalServerError(w, "Failed to apply purchased package")
		return
	}

	report, err := h.engine.Enforce(r.Context(), payment.TenantID)
	if err != nil {
		var partial *quota.PartialCleanupError
		switch {
		case errors.As(err, &partial) && partial.Cause != nil:
			// The payment is marked paid and the package applied, but a
			// deletion error aborted enforcement; report failure.
			logger.Error("cleanup aborted after payment confirmation",
				"payment_id", payment.ID,
				"tenant_id", payment.TenantID,
				"error", err)
			CleanupFailed(w, partial.Report)
			return
		case errors.As(err, &partial):
			logger.Warn("storage still over limit after payment confirmation",
				"payment_id", payment.ID,
				"tenant_id", payment.TenantID,
				"deleted", partial.Report.DeletedCount)
			report = partial.Report
		default:
			InternalServerError(w, "Quota enforcement failed")
			return
		}
	}

	confirmed, err := h.store.GetPayment(r.Context(), payment.ID)
	if err != nil {
		InternalServerError(w, "Failed to fetch confirmed payment")
		return
	}

	WriteJSONOK(w, PaymentResponse{
		Payment:        confirmed,
		StorageCleanup: cleanupToView(report),
	})
}

// Fail handles POST /api/payments/{id}/fail.
func (h *PaymentHandler) Fail(w http.ResponseWriter, r *http.Request) {
	payment, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	if err := h.store.MarkPaymentFailed(r.Context(), payment.ID); err != nil {
		if errors.Is(err, models.ErrPaymentNotPending) {
			Conflict(w, "Payment is not pending")
			return
		}
		InternalServerError(w, "Failed to mark payment failed")
		return
	}
	WriteNoContent(w)
}

func (h *PaymentHandler) fetchAuthorized(w http.ResponseWriter, r *http.Request) (*models.Payment, bool) {
	payment, err := h.store.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotFound) {
			NotFound(w, "Payment not found")
			return nil, false
		}
		InternalServerError(w, "Failed to fetch payment")
		return nil, false
	}

	if !authorizeTenant(w, r, payment.TenantID) {
		return nil, false
	}
	return payment, true
}
