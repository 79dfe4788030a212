package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/Reece-Nunez/EHR/internal/models"
	"github.com/Reece-Nunez/EHR/internal/utils"
)

// StripeWebhook receives signed event notifications from Stripe.
//
// Receipt delivery and payment processing are separate failure domains: a
// flaky email provider must never make Stripe believe the webhook failed
// and retry. So once the signature checks out, the response is always
// 200 {received: true}; notifier errors are logged only.
func (h *Handler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		h.Log.Error("missing_stripe_signature_header")
		utils.RespondError(w, http.StatusBadRequest, "Missing stripe-signature header")
		return
	}

	event, err := webhook.ConstructEvent(payload, signature, h.Cfg.StripeWebhookSecret)
	if err != nil {
		h.Log.WithError(err).Error("webhook_signature_verification_failed")
		utils.RespondError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	// Stripe delivers at least once. With an event store configured,
	// repeats of an already-dispatched event are acknowledged without
	// re-sending receipts. Store errors fail open: better a duplicate
	// email than a retry storm.
	if h.Events != nil {
		first, markErr := h.Events.MarkProcessed(r.Context(), event.ID)
		if markErr != nil {
			h.Log.WithError(markErr).WithField("event_id", event.ID).Warn("event_store_unavailable")
		} else if !first {
			h.Log.WithField("event_id", event.ID).Info("event_already_processed")
			utils.RespondJSON(w, http.StatusOK, map[string]bool{"received": true})
			return
		}
	}

	switch event.Type {
	case models.EventPaymentIntentSucceeded:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			h.Log.WithError(err).WithField("event_id", event.ID).Error("invalid_event_payload")
			break
		}
		if err := h.Notifier.PaymentSucceeded(r.Context(), &pi); err != nil {
			h.Log.WithError(err).WithFields(logrus.Fields{
				"event_id":          event.ID,
				"payment_intent_id": pi.ID,
			}).Error("receipt_notification_failed")
		}

	case models.EventSetupIntentSucceeded:
		var si stripe.SetupIntent
		if err := json.Unmarshal(event.Data.Raw, &si); err != nil {
			h.Log.WithError(err).WithField("event_id", event.ID).Error("invalid_event_payload")
			break
		}
		if err := h.Notifier.SetupSucceeded(r.Context(), &si); err != nil {
			h.Log.WithError(err).WithFields(logrus.Fields{
				"event_id":        event.ID,
				"setup_intent_id": si.ID,
			}).Error("setup_notification_failed")
		}

	case models.EventChargeSucceeded:
		// Co-occurs with payment_intent.succeeded; emailing here too
		// would double up receipts. Log and acknowledge.
		var ch stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &ch); err == nil {
			h.Log.WithField("charge_id", ch.ID).Info("charge_succeeded")
		}

	default:
		h.Log.WithField("event_type", string(event.Type)).Info("unhandled_event_type")
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
