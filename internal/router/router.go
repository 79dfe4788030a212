package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Reece-Nunez/EHR/internal/handlers"
)

func New(h *handlers.Handler) *mux.Router {
	r := mux.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Stripe-Signature"},
	})
	r.Use(c.Handler)

	r.HandleFunc("/api/create-payment-intent", h.CreatePaymentIntent).Methods(http.MethodPost)
	r.HandleFunc("/api/create-setup-intent", h.CreateSetupIntent).Methods(http.MethodPost)
	r.HandleFunc("/api/webhooks/stripe", h.StripeWebhook).Methods(http.MethodPost)
	r.HandleFunc("/api/config", h.ClientConfig).Methods(http.MethodGet)
	r.HandleFunc("/api/health", h.Health(r)).Methods(http.MethodGet)
	return r
}
