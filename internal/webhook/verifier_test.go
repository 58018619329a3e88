package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v74"
)

const testSecret = "whsec_test_secret"

// signPayload produces a provider-format signature header for the payload.
func signPayload(t *testing.T, secret string, payload []byte) string {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerify_ValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","api_version":"` + stripe.APIVersion + `","type":"product.created","data":{"object":{"id":"prod_1"}}}`)
	v := NewVerifier(testSecret)

	event, err := v.Verify(payload, signPayload(t, testSecret, payload))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "product.created", string(event.Type))
}

func TestVerify_TamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"product.created","data":{"object":{"id":"prod_1"}}}`)
	header := signPayload(t, testSecret, payload)
	tampered := []byte(`{"id":"evt_1","type":"product.deleted","data":{"object":{"id":"prod_1"}}}`)

	v := NewVerifier(testSecret)
	_, err := v.Verify(tampered, header)
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"product.created","data":{"object":{}}}`)
	header := signPayload(t, "whsec_other", payload)

	v := NewVerifier(testSecret)
	_, err := v.Verify(payload, header)
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerify_MalformedHeader(t *testing.T) {
	v := NewVerifier(testSecret)
	_, err := v.Verify([]byte(`{}`), "not-a-signature")
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerify_MissingHeader(t *testing.T) {
	v := NewVerifier(testSecret)
	_, err := v.Verify([]byte(`{}`), "  ")
	require.ErrorIs(t, err, ErrSignatureMissing)
}

func TestVerify_MissingSecret(t *testing.T) {
	v := NewVerifier("")
	_, err := v.Verify([]byte(`{}`), "t=1,v1=abc")
	require.ErrorIs(t, err, ErrConfigMissing)
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(ErrSignatureMissing))
	assert.True(t, IsAuthError(fmt.Errorf("%w: bad digest", ErrSignatureInvalid)))
	assert.False(t, IsAuthError(ErrConfigMissing))
	assert.False(t, IsAuthError(nil))
}
