package ledger

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	PrefixDeposit  = "ps"
	PrefixTransfer = "tr"
)

// NewReference returns prefix + "_" + a ULID, e.g. "tr_01J9Z6M3X1V8QZ8K5T2YB7C4DN".
func NewReference(prefix string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return prefix + "_" + id.String()
}
