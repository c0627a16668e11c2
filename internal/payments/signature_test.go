package payments_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimitchavdadev/ecommerce-platform/internal/payments"
)

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyAcceptsGenuineSignature(t *testing.T) {
	v := payments.NewVerifier("test-secret")

	sig := sign("test-secret", "order_abc|pay_xyz")
	assert.True(t, v.Verify("order_abc", "pay_xyz", sig))
}

func TestVerifyRejectsTamperedCallback(t *testing.T) {
	v := payments.NewVerifier("test-secret")
	sig := sign("test-secret", "order_abc|pay_xyz")

	// Wrong payment id, wrong secret, truncated and empty signatures must all
	// fail; no partial credit.
	assert.False(t, v.Verify("order_abc", "pay_other", sig))
	assert.False(t, v.Verify("order_abc", "pay_xyz", sign("wrong-secret", "order_abc|pay_xyz")))
	assert.False(t, v.Verify("order_abc", "pay_xyz", sig[:len(sig)-2]))
	assert.False(t, v.Verify("order_abc", "pay_xyz", ""))
}

func TestMinorUnitsRoundsExactly(t *testing.T) {
	assert.Equal(t, int64(1000), payments.MinorUnits(10.00))
	assert.Equal(t, int64(1999), payments.MinorUnits(19.99))
	assert.Equal(t, int64(5), payments.MinorUnits(0.05))
	// 349.70*100 is 34969.999... in float64; the explicit round keeps the
	// intent from coming up a paisa short.
	assert.Equal(t, int64(34970), payments.MinorUnits(349.70))
	assert.Equal(t, int64(0), payments.MinorUnits(0))
}
