package webhook

import (
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v74"
	stripewebhook "github.com/stripe/stripe-go/v74/webhook"
)

// Verifier validates inbound webhook signatures against the shared secret
// and yields the parsed event. All failures are terminal for the request.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: strings.TrimSpace(secret)}
}

func (v *Verifier) Verify(payload []byte, signatureHeader string) (stripe.Event, error) {
	if strings.TrimSpace(signatureHeader) == "" {
		return stripe.Event{}, ErrSignatureMissing
	}
	if v.secret == "" {
		return stripe.Event{}, ErrConfigMissing
	}

	event, err := stripewebhook.ConstructEvent(payload, signatureHeader, v.secret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return event, nil
}
