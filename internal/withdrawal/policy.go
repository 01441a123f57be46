package withdrawal

import (
	"crypto/sha256"
	"crypto/subtle"
	"time"
)

// Policy holds the rules withdrawals are checked against.
type Policy struct {
	RequiredApprovals int
	MinAmount         int64
	Credentials       []string
	// DailyLimit caps what one requester may ask for in a rolling 24 hours. Zero disables it.
	DailyLimit int64
	// BusinessHours, when set, restricts request creation to those hours.
	BusinessHours *BusinessHours
}

// BusinessHours is a half-open [Start, End) hour window in Location.
type BusinessHours struct {
	Start    int
	End      int
	Location *time.Location
}

func (b *BusinessHours) Contains(t time.Time) bool {
	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}

	h := t.In(loc).Hour()

	return h >= b.Start && h < b.End
}

// validCredential compares against every configured credential without short-circuiting.
func (p Policy) validCredential(credential string) bool {
	if credential == "" {
		return false
	}

	given := sha256.Sum256([]byte(credential))
	match := 0

	for _, c := range p.Credentials {
		want := sha256.Sum256([]byte(c))
		match |= subtle.ConstantTimeCompare(given[:], want[:])
	}

	return match == 1
}
