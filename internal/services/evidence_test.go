package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoSlotFilled(t *testing.T) {
	assert.False(t, PhotoSlot{}.Filled())
	assert.False(t, PhotoSlot{Stored: "null"}.Filled())
	assert.False(t, PhotoSlot{Stored: "  "}.Filled())
	assert.True(t, PhotoSlot{New: "a.jpg"}.Filled())
	assert.True(t, PhotoSlot{Stored: "b.jpg"}.Filled())
}

func TestPhotoSlotRefPrefersNew(t *testing.T) {
	assert.Equal(t, "new.jpg", PhotoSlot{New: "new.jpg", Stored: "old.jpg"}.Ref())
	assert.Equal(t, "old.jpg", PhotoSlot{Stored: "old.jpg"}.Ref())
	assert.Equal(t, "", PhotoSlot{Stored: "null"}.Ref())
}

func TestCountMissing(t *testing.T) {
	original := [4]PhotoSlot{{New: "a"}, {New: "b"}, {New: "c"}}
	finals := []PhotoSlot{{New: "k1"}, {}, {Stored: "null"}}
	assert.Equal(t, 3, CountMissing(original, finals))
}

func TestCheckEvidenceJustificationGate(t *testing.T) {
	// 3 of 4 originals, all 4 kit slots filled: one photo missing.
	original := [4]PhotoSlot{{New: "a"}, {New: "b"}, {New: "c"}}
	finals := []PhotoSlot{{New: "k1"}, {New: "k2"}, {New: "k3"}, {New: "k4"}}

	err := CheckEvidence(original, finals, "")
	require.Error(t, err)
	var jr *JustificationRequiredError
	require.ErrorAs(t, err, &jr)
	assert.Equal(t, 1, jr.MissingCount)

	// Any non-blank justification accepts the same evidence.
	assert.NoError(t, CheckEvidence(original, finals, "vitrine em reforma"))
	// Whitespace-only does not count as a justification.
	assert.Error(t, CheckEvidence(original, finals, "   "))
}

func TestCheckEvidenceCompleteNeedsNoJustification(t *testing.T) {
	original := [4]PhotoSlot{{New: "a"}, {Stored: "b"}, {New: "c"}, {Stored: "d"}}
	assert.NoError(t, CheckEvidence(original, nil, ""))
}
