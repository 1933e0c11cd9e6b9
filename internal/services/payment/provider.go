// Package payment abstracts the hosted checkout provider used by the booking
// flow. Amounts cross this boundary in minor units (kobo).
package payment

import (
	"context"
	"time"
)

// Charge statuses as reported by the provider.
const (
	StatusSuccess   = "success"
	StatusAbandoned = "abandoned"
	StatusFailed    = "failed"
)

type InitRequest struct {
	Reference string
	Email     string
	Amount    int64 // minor units
	Metadata  map[string]string
}

type InitResponse struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

// Charge is the provider's record of a checkout attempt.
type Charge struct {
	Reference string
	Status    string
	Amount    int64 // minor units
	PaidAt    time.Time
}

// Provider is the hosted-checkout integration. Initialize opens a checkout for
// a fresh reference, Verify reads the authoritative outcome after the rider
// finishes (or abandons) it, and Refund reverses a verified charge when the
// booking commit loses the seat race.
type Provider interface {
	Initialize(ctx context.Context, req InitRequest) (InitResponse, error)
	Verify(ctx context.Context, reference string) (Charge, error)
	Refund(ctx context.Context, reference string, amount int64) error
}
