package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsNonEmptyAndStable(t *testing.T) {
	for _, dt := range Types() {
		first := Fields(dt)
		require.NotEmpty(t, first, "type %q must have fields", dt)
		second := Fields(dt)
		assert.Equal(t, first, second, "field order for %q must be stable", dt)
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	a := Fields(NDA)
	a[0] = "mutated"
	b := Fields(NDA)
	assert.Equal(t, "partyOne", b[0])
}

func TestUnknownType(t *testing.T) {
	assert.False(t, Known(DocumentType("Will")))
	assert.Nil(t, Fields(DocumentType("Will")))
}

func TestNDASchema(t *testing.T) {
	assert.Equal(t, []string{"partyOne", "partyTwo", "effectiveDate"}, Fields(NDA))
}
