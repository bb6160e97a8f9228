package bar

import (
	"time"

	"github.com/google/uuid"
)

// Deal text defaults. The analysis service omits fields freely; a
// persisted deal is always fully populated.
const (
	DefaultDealItem        = "Unknown Item"
	DefaultDealDescription = "No description available"
	DefaultDealText        = "Price not specified"
)

// DefaultEntryName names sessions the analyzer could not title.
const DefaultEntryName = "Happy Hour"

type Deal struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	Deal        string `json:"deal"`
}

// NormalizeDeal fills missing textual fields with their defaults.
// Total and idempotent.
func NormalizeDeal(d Deal) Deal {
	if d.Item == "" {
		d.Item = DefaultDealItem
	}
	if d.Description == "" {
		d.Description = DefaultDealDescription
	}
	if d.Deal == "" {
		d.Deal = DefaultDealText
	}
	return d
}

// HappyHourEntry is one promotion window on a bar. The JSON field names
// match the stored document shape, including the legacy singular "day".
// ID is assigned once at creation and keys the entry's menu PDF in the
// object store, so it never changes afterwards.
type HappyHourEntry struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Days         []Weekday  `json:"day"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Drinks       []string   `json:"drinks"`
	Deals        []Deal     `json:"deals"`
	DealsSummary string     `json:"deals_summary"`
}

// NewEmptyEntry is the blank template created by an explicit user
// action, before any analysis runs.
func NewEmptyEntry(id uuid.UUID) HappyHourEntry {
	return HappyHourEntry{
		ID:     id,
		Name:   DefaultEntryName,
		Days:   []Weekday{},
		Drinks: []string{},
		Deals:  []Deal{},
	}
}

// sanitize repairs nil slices in documents written by older clients.
func (e *HappyHourEntry) sanitize() {
	if e.Days == nil {
		e.Days = []Weekday{}
	}
	if e.Drinks == nil {
		e.Drinks = []string{}
	}
	if e.Deals == nil {
		e.Deals = []Deal{}
	}
}
