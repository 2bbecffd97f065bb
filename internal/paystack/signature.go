package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
)

// SignatureHeader carries hex(HMAC-SHA512(secret, raw body)).
const SignatureHeader = "X-Paystack-Signature"

var ErrInvalidSignature = errors.New("invalid webhook signature")

func Sign(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. An empty signature never verifies.
func Verify(body []byte, signature, secret string) error {
	if signature == "" {
		return ErrInvalidSignature
	}
	expected := Sign(body, secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// Event is the subset of a webhook body the reconciler reads.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

type EventData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PaidAt    string `json:"paid_at"`
}

// ParseEvent decodes a webhook body. Each data field is decoded on its own so
// a malformed optional field leaves only that field zero. An error means the
// body is not a JSON object with an object-valued data member.
func ParseEvent(raw []byte) (Event, error) {
	var env struct {
		Event json.RawMessage            `json:"event"`
		Data  map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Event{}, err
	}

	var ev Event
	decodeField(env.Event, &ev.Event)
	decodeField(env.Data["reference"], &ev.Data.Reference)
	decodeField(env.Data["status"], &ev.Data.Status)
	decodeField(env.Data["amount"], &ev.Data.Amount)
	decodeField(env.Data["currency"], &ev.Data.Currency)
	decodeField(env.Data["paid_at"], &ev.Data.PaidAt)
	return ev, nil
}

func decodeField(raw json.RawMessage, dst interface{}) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// Succeeded reports whether the gateway declared the charge settled.
func (e Event) Succeeded() bool {
	return e.Data.Status == "success"
}
