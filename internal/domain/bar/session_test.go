//go:build unit

package bar_test

import (
	"encoding/json"
	"testing"

	"happyhour-console/internal/domain/bar"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func committedBar() bar.Bar {
	b := bar.Bar{
		ID:           uuid.New(),
		Name:         "The Green Mill",
		HeroImageURL: "https://img.example/green-mill.jpg",
		Address:      bar.Address{Neighborhood: "Uptown", City: "Chicago", State: "IL"},
		FullAddress:  "4802 N Broadway, Chicago, IL",
		PhoneNumber:  "+17738785552",
		Website:      "https://greenmilljazz.com",
		HappyHours: []bar.HappyHourEntry{
			bar.NewEmptyEntry(uuid.New()),
		},
	}
	return b
}

func TestEditSession(t *testing.T) {
	t.Run("starts Viewing with no readable draft", func(t *testing.T) {
		s := bar.NewEditSession(committedBar())
		assert.Equal(t, bar.StateViewing, s.State())

		_, err := s.Draft()
		assert.ErrorIs(t, err, bar.ErrNotEditing)
	})

	t.Run("BeginEdit forks an independent deep copy", func(t *testing.T) {
		committed := committedBar()
		s := bar.NewEditSession(committed)
		require.NoError(t, s.BeginEdit())
		assert.Equal(t, bar.StateEditing, s.State())

		draft, err := s.Draft()
		require.NoError(t, err)

		if diff := cmp.Diff(s.Committed(), *draft); diff != "" {
			t.Errorf("fork mismatch (-committed +draft):\n%s", diff)
		}

		// Mutating the draft must not leak into the committed copy.
		draft.Name = "renamed"
		draft.HappyHours[0].Name = "changed"
		assert.Equal(t, "The Green Mill", s.Committed().Name)
		assert.Equal(t, "Happy Hour", s.Committed().HappyHours[0].Name)
	})

	t.Run("ApplyAnalysis with no entries changes nothing and stays Viewing", func(t *testing.T) {
		s := bar.NewEditSession(committedBar())
		before := s.Committed()

		changed, err := s.ApplyAnalysis(nil)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, bar.StateViewing, s.State())

		if diff := cmp.Diff(before, s.Committed()); diff != "" {
			t.Errorf("committed copy changed (-before +after):\n%s", diff)
		}
	})

	t.Run("ApplyAnalysis appends after the existing entries and enters Editing", func(t *testing.T) {
		s := bar.NewEditSession(committedBar())
		existingID := s.Committed().HappyHours[0].ID

		added := []bar.HappyHourEntry{
			bar.NewEmptyEntry(uuid.New()),
			bar.NewEmptyEntry(uuid.New()),
		}
		changed, err := s.ApplyAnalysis(added)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, bar.StateEditing, s.State())

		draft, err := s.Draft()
		require.NoError(t, err)
		require.Len(t, draft.HappyHours, 3)
		assert.Equal(t, existingID, draft.HappyHours[0].ID)
		assert.Equal(t, added[0].ID, draft.HappyHours[1].ID)
		assert.Equal(t, added[1].ID, draft.HappyHours[2].ID)
	})

	t.Run("Commit promotes the draft and clears the staged upload", func(t *testing.T) {
		s := bar.NewEditSession(committedBar())
		require.NoError(t, s.BeginEdit())
		s.StageMenu("staging/abc.pdf")

		require.NoError(t, s.UpdateDraft(func(b *bar.Bar) { b.Website = "https://new.example" }))
		require.NoError(t, s.Commit())

		assert.Equal(t, bar.StateViewing, s.State())
		assert.Equal(t, "https://new.example", s.Committed().Website)
		assert.Empty(t, s.StagedMenuKey())
	})

	t.Run("Cancel reverts to committed and drops the staged upload", func(t *testing.T) {
		s := bar.NewEditSession(committedBar())
		require.NoError(t, s.BeginEdit())
		s.StageMenu("staging/abc.pdf")
		require.NoError(t, s.UpdateDraft(func(b *bar.Bar) { b.Name = "scribbles" }))

		s.Cancel()

		assert.Equal(t, bar.StateViewing, s.State())
		assert.Equal(t, "The Green Mill", s.Committed().Name)
		assert.Empty(t, s.StagedMenuKey())

		_, err := s.Draft()
		assert.ErrorIs(t, err, bar.ErrNotEditing)
	})

	t.Run("Commit while Viewing is rejected", func(t *testing.T) {
		s := bar.NewEditSession(committedBar())
		assert.ErrorIs(t, s.Commit(), bar.ErrNotEditing)
	})

	t.Run("JSON round-trip preserves both copies and the staged key", func(t *testing.T) {
		s := bar.NewEditSession(committedBar())
		require.NoError(t, s.BeginEdit())
		s.StageMenu("staging/xyz.pdf")
		require.NoError(t, s.UpdateDraft(func(b *bar.Bar) { b.PhoneNumber = "+13125550000" }))

		raw, err := json.Marshal(s)
		require.NoError(t, err)

		var restored bar.EditSession
		require.NoError(t, json.Unmarshal(raw, &restored))

		assert.Equal(t, bar.StateEditing, restored.State())
		assert.Equal(t, "staging/xyz.pdf", restored.StagedMenuKey())

		origDraft, err := s.Draft()
		require.NoError(t, err)
		gotDraft, err := restored.Draft()
		require.NoError(t, err)

		if diff := cmp.Diff(origDraft, gotDraft); diff != "" {
			t.Errorf("draft mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(s.Committed(), restored.Committed()); diff != "" {
			t.Errorf("committed mismatch (-want +got):\n%s", diff)
		}
	})
}
