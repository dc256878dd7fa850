package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// HMACVerifier checks the gateway's callback signature: hex(HMAC-SHA256 of
// "<order_id>:<approved>" under the shared key).
type HMACVerifier struct {
	key []byte
}

func NewHMACVerifier(key string) *HMACVerifier {
	return &HMACVerifier{key: []byte(key)}
}

func (v *HMACVerifier) Verify(req CallbackRequest) bool {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(strconv.FormatInt(req.OrderID, 10) + ":" + strconv.FormatBool(req.Approved)))
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(req.Signature))
}
