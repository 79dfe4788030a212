package models

// Stripe event types this service reacts to. Everything else is
// acknowledged and ignored.
const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventSetupIntentSucceeded   = "setup_intent.succeeded"
	EventChargeSucceeded        = "charge.succeeded"
)

// Metadata keys stamped onto intents at creation time and read back
// from webhook events.
const (
	MetadataAmount       = "amount"
	MetadataRecurring    = "recurring"
	MetadataOrganization = "organization"
	MetadataReference    = "reference"
)

type DonationFlow string

const (
	FlowCard DonationFlow = "card"
	FlowACH  DonationFlow = "ach"
)
