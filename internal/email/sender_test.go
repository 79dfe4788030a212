package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reece-Nunez/EHR/internal/config"
)

func TestNewSelectsProvider(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, config.Config{EmailProvider: "resend", ResendAPIKey: "re_123"})
	require.NoError(t, err)
	assert.IsType(t, &ResendSender{}, s)

	s, err = New(ctx, config.Config{EmailProvider: "sendgrid", SendGridAPIKey: "SG.123"})
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, s)

	s, err = New(ctx, config.Config{
		EmailProvider: "smtp",
		SMTPHost:      "mail.example.org",
		SMTPPort:      "587",
		SMTPUser:      "mailer",
		SMTPPassword:  "secret",
	})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)
}

func TestNewRejectsMissingCredentials(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, config.Config{EmailProvider: "resend"})
	assert.Error(t, err)

	_, err = New(ctx, config.Config{EmailProvider: "sendgrid"})
	assert.Error(t, err)

	_, err = New(ctx, config.Config{EmailProvider: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestSplitAddress(t *testing.T) {
	name, addr := splitAddress("EHR Research Institute <noreply@erhri.org>")
	assert.Equal(t, "EHR Research Institute", name)
	assert.Equal(t, "noreply@erhri.org", addr)

	name, addr = splitAddress("erhri@proton.me")
	assert.Equal(t, "", name)
	assert.Equal(t, "erhri@proton.me", addr)
}

func TestResendSenderSend(t *testing.T) {
	var got resendSendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test")
	s.baseURL = srv.URL

	err := s.Send(context.Background(), Message{
		From:    "EHR Research Institute <noreply@erhri.org>",
		To:      []string{"donor@example.org", "erhri@proton.me"},
		Subject: "Thank You for Your Donation - EHR Research Institute",
		HTML:    "<p>receipt</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, []string{"donor@example.org", "erhri@proton.me"}, got.To)
	assert.Equal(t, "Thank You for Your Donation - EHR Research Institute", got.Subject)
	assert.Equal(t, "<p>receipt</p>", got.HTML)
}

func TestResendSenderSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test")
	s.baseURL = srv.URL

	err := s.Send(context.Background(), Message{To: []string{"donor@example.org"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=422")
	assert.Contains(t, err.Error(), "invalid from address")
}
