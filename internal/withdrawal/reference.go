package withdrawal

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewReference returns WD-YYYYMMDDHHMMSS-XXXXXX: the creation time in UTC and six
// characters of ULID randomness.
func NewReference(t time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()

	return "WD-" + t.UTC().Format("20060102150405") + "-" + id[len(id)-6:]
}
