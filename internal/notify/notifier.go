package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v78"

	"github.com/Reece-Nunez/EHR/internal/config"
	"github.com/Reece-Nunez/EHR/internal/email"
	"github.com/Reece-Nunez/EHR/internal/models"
	"github.com/Reece-Nunez/EHR/internal/stripeclient"
	"github.com/Reece-Nunez/EHR/internal/utils"
)

// Notifier sends receipt emails for completed donations. Failures are
// reported to the caller but never block webhook acknowledgment; the
// webhook handler logs and moves on.
type Notifier struct {
	stripe       stripeclient.API
	sender       email.Sender
	from         string
	oversight    string
	organization string
	log          *logrus.Logger
}

func New(api stripeclient.API, sender email.Sender, cfg config.Config, log *logrus.Logger) *Notifier {
	return &Notifier{
		stripe:       api,
		sender:       sender,
		from:         cfg.EmailFrom,
		oversight:    cfg.OversightEmail,
		organization: cfg.OrganizationName,
		log:          log,
	}
}

// PaymentSucceeded emails a receipt for a completed card or ACH charge.
// The payment intent carries no billing email, so it is resolved from the
// intent's latest charge. No resolvable email is not an error: the
// donation went through, there is just nobody to write to.
func (n *Notifier) PaymentSucceeded(ctx context.Context, pi *stripe.PaymentIntent) error {
	ch, err := n.stripe.LatestChargeForPaymentIntent(ctx, pi.ID)
	if err != nil {
		return fmt.Errorf("listing charges for %s: %w", pi.ID, err)
	}

	payerEmail := ""
	if ch != nil && ch.BillingDetails != nil {
		payerEmail = ch.BillingDetails.Email
	}
	if payerEmail == "" {
		n.log.WithField("payment_intent_id", pi.ID).Warn("no_email_for_payment_intent")
		return nil
	}

	amount := utils.FormatCents(pi.Amount)
	recurring := pi.Metadata[models.MetadataRecurring] == "true"
	date := time.Now().Format("January 2, 2006")

	msg := email.Message{
		From:    n.from,
		To:      []string{payerEmail, n.oversight},
		Subject: "Thank You for Your Donation - " + n.organization,
		HTML:    renderReceipt(amount, date, pi.ID, n.organization, recurring),
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending receipt for %s: %w", pi.ID, err)
	}

	n.log.WithFields(logrus.Fields{
		"payment_intent_id": pi.ID,
		"amount":            amount,
		"recurring":         recurring,
	}).Info("receipt_email_sent")
	return nil
}

// SetupSucceeded emails a bank-account-verified confirmation for an ACH
// setup intent. The actual charge lands later and triggers its own
// payment_intent.succeeded receipt.
func (n *Notifier) SetupSucceeded(ctx context.Context, si *stripe.SetupIntent) error {
	if si.PaymentMethod == nil || si.PaymentMethod.ID == "" {
		n.log.WithField("setup_intent_id", si.ID).Warn("setup_intent_without_payment_method")
		return nil
	}

	pm, err := n.stripe.GetPaymentMethod(ctx, si.PaymentMethod.ID)
	if err != nil {
		return fmt.Errorf("retrieving payment method for %s: %w", si.ID, err)
	}

	payerEmail := ""
	if pm != nil && pm.BillingDetails != nil {
		payerEmail = pm.BillingDetails.Email
	}
	if payerEmail == "" {
		n.log.WithField("setup_intent_id", si.ID).Warn("no_email_for_setup_intent")
		return nil
	}

	amount := si.Metadata[models.MetadataAmount]
	recurring := si.Metadata[models.MetadataRecurring] == "true"

	msg := email.Message{
		From:    n.from,
		To:      []string{payerEmail, n.oversight},
		Subject: "Bank Account Verified - " + n.organization,
		HTML:    renderSetupConfirmation(amount, n.organization, recurring),
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending setup confirmation for %s: %w", si.ID, err)
	}

	n.log.WithFields(logrus.Fields{
		"setup_intent_id": si.ID,
		"recurring":       recurring,
	}).Info("setup_confirmation_email_sent")
	return nil
}
