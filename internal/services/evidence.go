package services

import (
	"strings"
)

// PhotoSlot is the fill state of one photo slot in a submission. New holds
// a freshly captured file reference; Stored holds the reference the client
// still has from a previous submission. The legacy client sends the literal
// string "null" to explicitly clear a stored photo.
type PhotoSlot struct {
	New    string `json:"new"`
	Stored string `json:"stored"`
}

// Filled reports whether the slot holds usable evidence: either a new
// capture or a non-empty, non-"null" stored reference.
func (s PhotoSlot) Filled() bool {
	if strings.TrimSpace(s.New) != "" {
		return true
	}
	stored := strings.TrimSpace(s.Stored)
	return stored != "" && stored != "null"
}

// Ref returns the reference to persist. A new capture always wins over the
// stored one.
func (s PhotoSlot) Ref() string {
	if v := strings.TrimSpace(s.New); v != "" {
		return v
	}
	if stored := strings.TrimSpace(s.Stored); stored != "" && stored != "null" {
		return stored
	}
	return ""
}

// CountMissing computes how many of the required slots are empty: the 4
// fixed original-photo slots plus one final-photo slot per kit.
func CountMissing(original [4]PhotoSlot, finals []PhotoSlot) int {
	missing := 0
	for _, s := range original {
		if !s.Filled() {
			missing++
		}
	}
	for _, s := range finals {
		if !s.Filled() {
			missing++
		}
	}
	return missing
}

// CheckEvidence applies the soft gate: missing photos are tolerated as long
// as they are explained. Returns a JustificationRequiredError carrying the
// missing count when slots are empty and the justification is blank.
func CheckEvidence(original [4]PhotoSlot, finals []PhotoSlot, justification string) error {
	missing := CountMissing(original, finals)
	if missing > 0 && strings.TrimSpace(justification) == "" {
		return &JustificationRequiredError{MissingCount: missing}
	}
	return nil
}
