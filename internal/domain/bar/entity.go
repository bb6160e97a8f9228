package bar

import (
	"github.com/google/uuid"
)

type Address struct {
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Bar is the persisted record: loaded wholesale, edited in a working
// copy, written back wholesale on save. Fields stay exported because
// the record round-trips through the document column and the edit
// session store; the JSON names are the stored document shape.
type Bar struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	HeroImageURL string           `json:"heroImageURL"`
	Address      Address          `json:"address"`
	FullAddress  string           `json:"fullAddress"`
	PhoneNumber  string           `json:"phoneNumber"`
	Website      string           `json:"website"`
	HappyHours   []HappyHourEntry `json:"happyHours"`
}

// Sanitize repairs nil slices left behind by older writers so callers
// can range without nil checks.
func (b *Bar) Sanitize() {
	if b.HappyHours == nil {
		b.HappyHours = []HappyHourEntry{}
	}
	for i := range b.HappyHours {
		b.HappyHours[i].sanitize()
	}
}

// AppendHappyHours appends the reconciled entries without touching the
// existing ones: identities and order of the current list are preserved
// as a prefix.
func (b *Bar) AppendHappyHours(entries []HappyHourEntry) {
	b.HappyHours = append(b.HappyHours, entries...)
}

// FindHappyHour returns the entry with the given identity, or nil.
func (b *Bar) FindHappyHour(id uuid.UUID) *HappyHourEntry {
	for i := range b.HappyHours {
		if b.HappyHours[i].ID == id {
			return &b.HappyHours[i]
		}
	}
	return nil
}
