//go:build unit

package bar_test

import (
	"testing"

	"happyhour-console/internal/domain/bar"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeDeal(t *testing.T) {
	t.Run("fills every missing field with its default", func(t *testing.T) {
		got := bar.NormalizeDeal(bar.Deal{})
		assert.Equal(t, bar.Deal{
			Item:        "Unknown Item",
			Description: "No description available",
			Deal:        "Price not specified",
		}, got)
	})

	t.Run("keeps present fields untouched", func(t *testing.T) {
		got := bar.NormalizeDeal(bar.Deal{Item: "House IPA", Deal: "$4"})
		assert.Equal(t, "House IPA", got.Item)
		assert.Equal(t, "No description available", got.Description)
		assert.Equal(t, "$4", got.Deal)
	})

	t.Run("idempotent", func(t *testing.T) {
		cases := []bar.Deal{
			{},
			{Item: "Wings"},
			{Item: "Wings", Description: "Six per order", Deal: "Half price"},
		}
		for _, d := range cases {
			once := bar.NormalizeDeal(d)
			twice := bar.NormalizeDeal(once)
			assert.Equal(t, once, twice)
		}
	})
}

func TestNewEmptyEntry(t *testing.T) {
	id := uuid.New()
	e := bar.NewEmptyEntry(id)

	assert.Equal(t, id, e.ID)
	assert.Equal(t, "Happy Hour", e.Name)
	assert.Empty(t, e.Days)
	assert.Nil(t, e.StartTime)
	assert.Nil(t, e.EndTime)
	assert.NotNil(t, e.Drinks)
	assert.NotNil(t, e.Deals)
}

func TestBarSanitize(t *testing.T) {
	b := bar.Bar{ID: uuid.New(), Name: "The Hideout", HappyHours: []bar.HappyHourEntry{{ID: uuid.New()}}}
	b.Sanitize()

	assert.NotNil(t, b.HappyHours[0].Days)
	assert.NotNil(t, b.HappyHours[0].Drinks)
	assert.NotNil(t, b.HappyHours[0].Deals)

	var empty bar.Bar
	empty.Sanitize()
	assert.NotNil(t, empty.HappyHours)
}
