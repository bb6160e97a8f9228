package bar

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator supplies entry identities; tests inject a deterministic
// sequence.
type IDGenerator func() uuid.UUID

// BuildEntries reconciles an analysis result into persisted entry
// shape. Each session gets a fresh identity and field-by-field default
// filling: name falls back to DefaultEntryName, days go through
// MapDays, times through ParseClockTime (individually nullable), deals
// through NormalizeDeal, drinks start empty. A session with no
// schedule, deals and summary is still accepted — a human reviews the
// draft before it is committed, so partial data is preserved rather
// than rejected.
func BuildEntries(result AnalysisResult, newID IDGenerator, now time.Time) []HappyHourEntry {
	entries := make([]HappyHourEntry, 0, len(result.HappyHours))
	for _, session := range result.HappyHours {
		entries = append(entries, buildEntry(session, newID(), now))
	}
	return entries
}

func buildEntry(session AnalysisSession, id uuid.UUID, now time.Time) HappyHourEntry {
	name := session.Name
	if name == "" {
		name = DefaultEntryName
	}

	deals := make([]Deal, 0, len(session.Deals))
	for _, d := range session.Deals {
		deals = append(deals, NormalizeDeal(Deal{
			Item:        d.Item,
			Description: d.Description,
			Deal:        d.Deal,
		}))
	}

	return HappyHourEntry{
		ID:           id,
		Name:         name,
		Days:         MapDays(session.Schedule.Days),
		StartTime:    ParseClockTime(session.Schedule.StartTime, now),
		EndTime:      ParseClockTime(session.Schedule.EndTime, now),
		Drinks:       []string{},
		Deals:        deals,
		DealsSummary: session.DealsSummary,
	}
}
