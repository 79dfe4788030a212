package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v78"

	"github.com/Reece-Nunez/EHR/internal/config"
	"github.com/Reece-Nunez/EHR/internal/eventstore"
	"github.com/Reece-Nunez/EHR/internal/models"
	"github.com/Reece-Nunez/EHR/internal/notify"
	"github.com/Reece-Nunez/EHR/internal/stripeclient"
	"github.com/Reece-Nunez/EHR/internal/utils"
)

type Handler struct {
	Stripe   stripeclient.API
	Notifier *notify.Notifier
	Events   eventstore.Store
	Cfg      config.Config
	Log      *logrus.Logger

	validate *validator.Validate
}

func NewHandler(api stripeclient.API, notifier *notify.Notifier, events eventstore.Store, cfg config.Config, log *logrus.Logger) *Handler {
	return &Handler{
		Stripe:   api,
		Notifier: notifier,
		Events:   events,
		Cfg:      cfg,
		Log:      log,
		validate: validator.New(),
	}
}

type createIntentRequest struct {
	Amount    float64 `json:"amount" validate:"required,gte=1"`
	Recurring bool    `json:"recurring"`
}

// intentMetadata is stamped onto every created intent so webhook events
// can be tied back to the donation without any local storage.
func (h *Handler) intentMetadata(req createIntentRequest) map[string]string {
	return map[string]string{
		models.MetadataAmount:       utils.FormatDollars(req.Amount),
		models.MetadataRecurring:    strconv.FormatBool(req.Recurring),
		models.MetadataOrganization: h.Cfg.OrganizationName,
		models.MetadataReference:    uuid.NewString(),
	}
}

// CreatePaymentIntent starts the card flow. The browser completes the
// payment with the returned client secret.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	pi, err := h.Stripe.CreatePaymentIntent(r.Context(), utils.DollarsToCents(req.Amount), h.intentMetadata(req))
	if err != nil {
		h.Log.WithError(err).Error("payment_intent_creation_failed")
		utils.RespondError(w, http.StatusInternalServerError, vendorMessage(err, "Failed to create payment intent"))
		return
	}

	h.Log.WithFields(logrus.Fields{
		"payment_intent_id": pi.ID,
		"amount":            req.Amount,
		"recurring":         req.Recurring,
	}).Info("payment_intent_created")
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"clientSecret": pi.ClientSecret,
	})
}

// CreateSetupIntent starts the ACH flow. The bank account is verified
// first; the charge itself lands out of band and arrives later as a
// payment_intent.succeeded event.
func (h *Handler) CreateSetupIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	si, err := h.Stripe.CreateSetupIntent(r.Context(), h.intentMetadata(req))
	if err != nil {
		h.Log.WithError(err).Error("setup_intent_creation_failed")
		utils.RespondError(w, http.StatusInternalServerError, vendorMessage(err, "Failed to create setup intent"))
		return
	}

	h.Log.WithFields(logrus.Fields{
		"setup_intent_id": si.ID,
		"amount":          req.Amount,
		"recurring":       req.Recurring,
	}).Info("setup_intent_created")
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"clientSecret": si.ClientSecret,
	})
}

// ClientConfig exposes the publishable key the donation form needs to
// initialize Stripe.js.
func (h *Handler) ClientConfig(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"publishableKey": h.Cfg.StripePublishableKey,
	})
}

// vendorMessage surfaces Stripe's own message on upstream failures so
// operators see the real cause instead of a generic 500.
func vendorMessage(err error, fallback string) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
