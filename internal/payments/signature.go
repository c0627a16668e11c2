package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier authenticates gateway callbacks. The gateway signs the string
// "{gateway_order_id}|{gateway_payment_id}" with the shared key secret using
// HMAC-SHA256 and sends the hex digest alongside the callback.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) Verifier {
	return Verifier{secret: []byte(secret)}
}

// Verify recomputes the signature and compares it byte-for-byte. Exact match
// only; any deviation means the callback did not come from the gateway.
func (v Verifier) Verify(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
