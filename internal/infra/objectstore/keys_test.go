//go:build unit

package objectstore_test

import (
	"testing"

	"happyhour-console/internal/infra/objectstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMenuKeyConventions(t *testing.T) {
	entryID := uuid.MustParse("2b1f6c1e-9d1a-4c65-8c1f-09d0a5b6e7f8")

	assert.Equal(t,
		"happyHourMenu/2b1f6c1e-9d1a-4c65-8c1f-09d0a5b6e7f8.pdf",
		objectstore.CanonicalMenuKey(entryID))

	assert.Equal(t,
		"happyHourMenu/The Green Mill/2b1f6c1e-9d1a-4c65-8c1f-09d0a5b6e7f8.pdf",
		objectstore.LegacyMenuKey("The Green Mill", entryID))
}
