package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"

	"github.com/Reece-Nunez/EHR/internal/config"
	"github.com/Reece-Nunez/EHR/internal/email"
)

type fakeStripeAPI struct {
	charge    *stripe.Charge
	chargeErr error
	pm        *stripe.PaymentMethod
	pmErr     error

	chargeLookups int
	pmLookups     int
}

func (f *fakeStripeAPI) CreatePaymentIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*stripe.PaymentIntent, error) {
	return nil, errors.New("not used")
}

func (f *fakeStripeAPI) CreateSetupIntent(ctx context.Context, metadata map[string]string) (*stripe.SetupIntent, error) {
	return nil, errors.New("not used")
}

func (f *fakeStripeAPI) LatestChargeForPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.Charge, error) {
	f.chargeLookups++
	return f.charge, f.chargeErr
}

func (f *fakeStripeAPI) GetPaymentMethod(ctx context.Context, id string) (*stripe.PaymentMethod, error) {
	f.pmLookups++
	return f.pm, f.pmErr
}

type recordingSender struct {
	sent []email.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg email.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func testConfig() config.Config {
	return config.Config{
		EmailFrom:        "EHR Research Institute <noreply@erhri.org>",
		OversightEmail:   "erhri@proton.me",
		OrganizationName: "EHR Research Institute",
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func chargeFromJSON(t *testing.T, raw string) *stripe.Charge {
	t.Helper()
	var ch stripe.Charge
	require.NoError(t, json.Unmarshal([]byte(raw), &ch))
	return &ch
}

func paymentMethodFromJSON(t *testing.T, raw string) *stripe.PaymentMethod {
	t.Helper()
	var pm stripe.PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(raw), &pm))
	return &pm
}

func TestPaymentSucceededSendsReceipt(t *testing.T) {
	api := &fakeStripeAPI{
		charge: chargeFromJSON(t, `{"id":"ch_1","billing_details":{"email":"donor@example.org"}}`),
	}
	sender := &recordingSender{}
	n := New(api, sender, testConfig(), quietLogger())

	pi := &stripe.PaymentIntent{
		ID:       "pi_123",
		Amount:   250000,
		Metadata: map[string]string{"amount": "2500", "recurring": "true"},
	}
	require.NoError(t, n.PaymentSucceeded(context.Background(), pi))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"donor@example.org", "erhri@proton.me"}, msg.To)
	assert.Equal(t, "EHR Research Institute <noreply@erhri.org>", msg.From)
	assert.Equal(t, "Thank You for Your Donation - EHR Research Institute", msg.Subject)
	assert.Contains(t, msg.HTML, "$2500.00")
	assert.Contains(t, msg.HTML, "Monthly Recurring")
	assert.Contains(t, msg.HTML, "pi_123")
	assert.Contains(t, msg.HTML, time.Now().Format("January 2, 2006"))
}

func TestPaymentSucceededOneTimeLabel(t *testing.T) {
	api := &fakeStripeAPI{
		charge: chargeFromJSON(t, `{"id":"ch_2","billing_details":{"email":"donor@example.org"}}`),
	}
	sender := &recordingSender{}
	n := New(api, sender, testConfig(), quietLogger())

	pi := &stripe.PaymentIntent{ID: "pi_9", Amount: 2550}
	require.NoError(t, n.PaymentSucceeded(context.Background(), pi))

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "$25.50")
	assert.Contains(t, sender.sent[0].HTML, "One-Time")
	assert.NotContains(t, sender.sent[0].HTML, "Monthly Recurring")
}

func TestPaymentSucceededNoEmailIsNotAnError(t *testing.T) {
	tests := []struct {
		name   string
		charge *stripe.Charge
	}{
		{"no charge at all", nil},
		{"charge without billing details", &stripe.Charge{ID: "ch_1"}},
		{"billing details without email", func() *stripe.Charge {
			var ch stripe.Charge
			_ = json.Unmarshal([]byte(`{"id":"ch_1","billing_details":{}}`), &ch)
			return &ch
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeStripeAPI{charge: tt.charge}
			sender := &recordingSender{}
			n := New(api, sender, testConfig(), quietLogger())

			err := n.PaymentSucceeded(context.Background(), &stripe.PaymentIntent{ID: "pi_1", Amount: 100})
			require.NoError(t, err)
			assert.Empty(t, sender.sent)
		})
	}
}

func TestPaymentSucceededChargeLookupFailure(t *testing.T) {
	api := &fakeStripeAPI{chargeErr: errors.New("stripe unavailable")}
	sender := &recordingSender{}
	n := New(api, sender, testConfig(), quietLogger())

	err := n.PaymentSucceeded(context.Background(), &stripe.PaymentIntent{ID: "pi_1"})
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestPaymentSucceededSenderFailure(t *testing.T) {
	api := &fakeStripeAPI{
		charge: chargeFromJSON(t, `{"id":"ch_3","billing_details":{"email":"donor@example.org"}}`),
	}
	sender := &recordingSender{err: errors.New("provider down")}
	n := New(api, sender, testConfig(), quietLogger())

	err := n.PaymentSucceeded(context.Background(), &stripe.PaymentIntent{ID: "pi_1", Amount: 100})
	require.Error(t, err)
	require.Len(t, sender.sent, 1)
}

func TestSetupSucceededSendsConfirmation(t *testing.T) {
	api := &fakeStripeAPI{
		pm: paymentMethodFromJSON(t, `{"id":"pm_1","billing_details":{"email":"donor@example.org"}}`),
	}
	sender := &recordingSender{}
	n := New(api, sender, testConfig(), quietLogger())

	si := &stripe.SetupIntent{
		ID:            "seti_1",
		PaymentMethod: &stripe.PaymentMethod{ID: "pm_1"},
		Metadata:      map[string]string{"amount": "2500", "recurring": "true"},
	}
	require.NoError(t, n.SetupSucceeded(context.Background(), si))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"donor@example.org", "erhri@proton.me"}, msg.To)
	assert.Equal(t, "Bank Account Verified - EHR Research Institute", msg.Subject)
	assert.Contains(t, msg.HTML, "monthly recurring")
	assert.Contains(t, msg.HTML, "Your donation of $2500 will be processed shortly.")
	assert.Equal(t, 1, api.pmLookups)
}

func TestSetupSucceededWithoutAmountMetadata(t *testing.T) {
	api := &fakeStripeAPI{
		pm: paymentMethodFromJSON(t, `{"id":"pm_2","billing_details":{"email":"donor@example.org"}}`),
	}
	sender := &recordingSender{}
	n := New(api, sender, testConfig(), quietLogger())

	si := &stripe.SetupIntent{ID: "seti_2", PaymentMethod: &stripe.PaymentMethod{ID: "pm_2"}}
	require.NoError(t, n.SetupSucceeded(context.Background(), si))

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "Your donation will be processed shortly.")
	assert.Contains(t, sender.sent[0].HTML, "one-time")
}

func TestSetupSucceededWithoutPaymentMethod(t *testing.T) {
	api := &fakeStripeAPI{}
	sender := &recordingSender{}
	n := New(api, sender, testConfig(), quietLogger())

	require.NoError(t, n.SetupSucceeded(context.Background(), &stripe.SetupIntent{ID: "seti_3"}))
	assert.Empty(t, sender.sent)
	assert.Zero(t, api.pmLookups)
}

func TestSetupSucceededNoEmailIsNotAnError(t *testing.T) {
	api := &fakeStripeAPI{pm: &stripe.PaymentMethod{ID: "pm_1"}}
	sender := &recordingSender{}
	n := New(api, sender, testConfig(), quietLogger())

	si := &stripe.SetupIntent{ID: "seti_4", PaymentMethod: &stripe.PaymentMethod{ID: "pm_1"}}
	require.NoError(t, n.SetupSucceeded(context.Background(), si))
	assert.Empty(t, sender.sent)
}
