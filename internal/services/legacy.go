package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"rollout_tracker/internal/models"
)

var ErrMalformedLegacyPhotos = errors.New("malformed legacy photo payload")

// legacyPayload mirrors the old mobile client body: originals keyed by slot
// name (or a bare 4-element array in older builds) and finals as a
// kit-indexed array. Missing photos arrive as the literal string "null".
type legacyPayload struct {
	FotosOriginais json.RawMessage `json:"fotos_originais"`
	FotosFinais    []string        `json:"fotos_finais"`
}

// NormalizeLegacyPhotos converts a legacy JSON photo blob into the
// normalized per-slot representation. The blob is an input format only;
// internal state is always the per-slot rows. Values land in the Stored
// side of each slot so the "null" clear marker keeps its meaning.
func NormalizeLegacyPhotos(blob datatypes.JSON) ([4]PhotoSlot, []PhotoSlot, error) {
	var original [4]PhotoSlot

	var payload legacyPayload
	if err := json.Unmarshal(blob, &payload); err != nil {
		return original, nil, ErrMalformedLegacyPhotos
	}

	if len(payload.FotosOriginais) > 0 {
		var bySlot map[string]string
		if err := json.Unmarshal(payload.FotosOriginais, &bySlot); err == nil {
			for i, name := range models.OriginalSlots {
				original[i].Stored = bySlot[name]
			}
		} else {
			var asList []string
			if err := json.Unmarshal(payload.FotosOriginais, &asList); err != nil {
				return original, nil, ErrMalformedLegacyPhotos
			}
			if len(asList) > 4 {
				return original, nil, ErrMalformedLegacyPhotos
			}
			for i, ref := range asList {
				original[i].Stored = ref
			}
		}
	}

	finals := make([]PhotoSlot, len(payload.FotosFinais))
	for i, ref := range payload.FotosFinais {
		finals[i].Stored = ref
	}
	return original, finals, nil
}
