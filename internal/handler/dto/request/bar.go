package request

import (
	"time"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/pkg/patch"

	"github.com/google/uuid"
)

type AddressPatch struct {
	Neighborhood *string `json:"neighborhood" binding:"omitempty,max=200"`
	City         *string `json:"city" binding:"omitempty,max=200"`
	State        *string `json:"state" binding:"omitempty,max=100"`
}

type DealPayload struct {
	Item        string `json:"item" binding:"max=500"`
	Description string `json:"description" binding:"max=2000"`
	Deal        string `json:"deal" binding:"max=500"`
}

// HappyHourPayload is one row of the draft's entry list as the client
// edits it. Times come in as HH:MM wall-clock strings; rows without an
// id are new and get one assigned on apply.
type HappyHourPayload struct {
	ID           *uuid.UUID    `json:"id"`
	Name         string        `json:"name" binding:"max=500"`
	Days         []string      `json:"day"`
	StartTime    string        `json:"startTime"`
	EndTime      string        `json:"endTime"`
	Drinks       []string      `json:"drinks"`
	Deals        []DealPayload `json:"deals"`
	DealsSummary string        `json:"deals_summary" binding:"max=5000"`
}

func (p *HappyHourPayload) toDomain(now time.Time, newID func() uuid.UUID) bar.HappyHourEntry {
	id := uuid.Nil
	if p.ID != nil {
		id = *p.ID
	}
	if id == uuid.Nil {
		id = newID()
	}

	name := p.Name
	if name == "" {
		name = bar.DefaultEntryName
	}

	deals := make([]bar.Deal, 0, len(p.Deals))
	for _, d := range p.Deals {
		deals = append(deals, bar.NormalizeDeal(bar.Deal{
			Item:        d.Item,
			Description: d.Description,
			Deal:        d.Deal,
		}))
	}

	drinks := p.Drinks
	if drinks == nil {
		drinks = []string{}
	}

	return bar.HappyHourEntry{
		ID:           id,
		Name:         name,
		Days:         bar.MapDays(p.Days),
		StartTime:    bar.ParseClockTime(p.StartTime, now),
		EndTime:      bar.ParseClockTime(p.EndTime, now),
		Drinks:       drinks,
		Deals:        deals,
		DealsSummary: p.DealsSummary,
	}
}

// UpdateBarDraftRequest patches the working copy. Absent fields keep
// their draft values; a present happyHours list replaces the draft's
// list wholesale.
type UpdateBarDraftRequest struct {
	Name         *string             `json:"name" binding:"omitempty,max=500"`
	HeroImageURL *string             `json:"heroImageURL" binding:"omitempty,max=2000"`
	FullAddress  *string             `json:"fullAddress" binding:"omitempty,max=1000"`
	PhoneNumber  *string             `json:"phoneNumber" binding:"omitempty,max=50"`
	Website      *string             `json:"website" binding:"omitempty,max=2000"`
	Address      *AddressPatch       `json:"address"`
	HappyHours   *[]HappyHourPayload `json:"happyHours"`
}

func (r *UpdateBarDraftRequest) Apply(b *bar.Bar, now time.Time, newID func() uuid.UUID) {
	b.Name = patch.Coalesce(r.Name, b.Name)
	b.HeroImageURL = patch.Coalesce(r.HeroImageURL, b.HeroImageURL)
	b.FullAddress = patch.Coalesce(r.FullAddress, b.FullAddress)
	b.PhoneNumber = patch.Coalesce(r.PhoneNumber, b.PhoneNumber)
	b.Website = patch.Coalesce(r.Website, b.Website)

	if r.Address != nil {
		b.Address.Neighborhood = patch.Coalesce(r.Address.Neighborhood, b.Address.Neighborhood)
		b.Address.City = patch.Coalesce(r.Address.City, b.Address.City)
		b.Address.State = patch.Coalesce(r.Address.State, b.Address.State)
	}

	if r.HappyHours != nil {
		entries := make([]bar.HappyHourEntry, 0, len(*r.HappyHours))
		for i := range *r.HappyHours {
			entries = append(entries, (*r.HappyHours)[i].toDomain(now, newID))
		}
		b.HappyHours = entries
	}
}
