package webhook

import "errors"

var (
	// ErrSignatureMissing means the request carried no signature header at
	// all; the provider will redeliver per its own policy.
	ErrSignatureMissing = errors.New("signature_missing")
	// ErrSignatureInvalid covers a wrong secret, a tampered body, and an
	// expired timestamp tolerance.
	ErrSignatureInvalid = errors.New("signature_invalid")
	// ErrConfigMissing means no shared secret is configured; operator
	// intervention is required.
	ErrConfigMissing = errors.New("webhook_secret_not_configured")
	// ErrUnhandledEvent marks a relevant event type without a handler.
	ErrUnhandledEvent = errors.New("unhandled_event")
)
