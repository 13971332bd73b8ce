package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollout_tracker/internal/models"
)

func TestSubmitRejectsWithoutJustification(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L001")
	seedKits(t, db, 4)

	in := fullSubmission("L001", 4)
	in.Original[3] = PhotoSlot{} // one fixed slot left empty

	_, err := svc.Submit(in)
	var jr *JustificationRequiredError
	require.ErrorAs(t, err, &jr)
	assert.Equal(t, 1, jr.MissingCount)

	// Nothing persisted before the gate.
	var count int64
	require.NoError(t, db.Model(&models.Installation{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.OriginalPhoto{}).Count(&count).Error)
	assert.Zero(t, count)

	// Retry with the same evidence plus a justification is accepted.
	in.Justification = "parede lateral inacessível"
	inst, err := svc.Submit(in)
	require.NoError(t, err)
	assert.Equal(t, "L001", inst.StoreCode)
	assert.Equal(t, "parede lateral inacessível", inst.Justification)
}

func TestSubmitIdempotentPerStore(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L002")

	in := fullSubmission("L002", 3)
	first, err := svc.Submit(in)
	require.NoError(t, err)

	second, err := svc.Submit(in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var instCount int64
	require.NoError(t, db.Model(&models.Installation{}).Where("store_code = ?", "L002").Count(&instCount).Error)
	assert.EqualValues(t, 1, instCount)

	var origCount, finalCount int64
	require.NoError(t, db.Model(&models.OriginalPhoto{}).Where("store_code = ?", "L002").Count(&origCount).Error)
	require.NoError(t, db.Model(&models.FinalPhoto{}).Where("store_code = ?", "L002").Count(&finalCount).Error)
	assert.EqualValues(t, 4, origCount)
	assert.EqualValues(t, 3, finalCount)
}

func TestSubmitRevivesSoftDeletedInstallation(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L010")

	first, err := svc.Submit(fullSubmission("L010", 2))
	require.NoError(t, err)

	// Administrative soft delete leaves the row (and its unique index
	// entry) behind; a later submission must revive it, not collide.
	require.NoError(t, db.Delete(&models.Installation{}, first.ID).Error)

	second, err := svc.Submit(fullSubmission("L010", 2))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.DeletedAt.Valid)

	status, err := svc.Status("L010")
	require.NoError(t, err)
	assert.True(t, status.IsInstalled)
}

func TestSubmitOverwritesPreviousSnapshot(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L003")

	first := fullSubmission("L003", 2)
	_, err := svc.Submit(first)
	require.NoError(t, err)

	second := fullSubmission("L003", 2)
	second.Responsible = "Ana Paula"
	second.Original[0] = PhotoSlot{New: "retake-frente.jpg"}
	_, err = svc.Submit(second)
	require.NoError(t, err)

	var front models.OriginalPhoto
	require.NoError(t, db.Where("store_code = ? AND slot = ?", "L003", models.SlotFrente).First(&front).Error)
	assert.Equal(t, "retake-frente.jpg", front.Ref)

	var inst models.Installation
	require.NoError(t, db.Where("store_code = ?", "L003").First(&inst).Error)
	assert.Equal(t, "Ana Paula", inst.Responsible)
}

func TestSubmitMergesStoredPhotos(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L004")

	_, err := svc.Submit(fullSubmission("L004", 2))
	require.NoError(t, err)

	// A revisit sending empty slots keeps the persisted photos: no evidence
	// is lost and no justification is needed.
	revisit := SubmissionInput{
		StoreCode:        "L004",
		Responsible:      "Carlos Mendes",
		InstallationDate: "2025-03-12",
		Finals:           make([]PhotoSlot, 2),
	}
	_, err = svc.Submit(revisit)
	require.NoError(t, err)

	var origCount int64
	require.NoError(t, db.Model(&models.OriginalPhoto{}).Where("store_code = ?", "L004").Count(&origCount).Error)
	assert.EqualValues(t, 4, origCount)
}

func TestSubmitExplicitClearDropsPhoto(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L005")

	_, err := svc.Submit(fullSubmission("L005", 1))
	require.NoError(t, err)

	cleared := SubmissionInput{
		StoreCode:        "L005",
		Responsible:      "Carlos Mendes",
		InstallationDate: "2025-03-12",
		Finals:           make([]PhotoSlot, 1),
		Justification:    "foto da frente descartada, loja sem fachada",
	}
	cleared.Original[0] = PhotoSlot{Stored: "null"}
	_, err = svc.Submit(cleared)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.OriginalPhoto{}).
		Where("store_code = ? AND slot = ?", "L005", models.SlotFrente).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitRequiredFields(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)

	in := fullSubmission("L006", 0)
	in.Responsible = ""
	_, err := svc.Submit(in)
	assert.ErrorIs(t, err, ErrMissingFields)

	in = fullSubmission("L006", 0)
	in.InstallationDate = "  "
	_, err = svc.Submit(in)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestSubmitGeolocationOptional(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L007")

	inst, err := svc.Submit(fullSubmission("L007", 0))
	require.NoError(t, err)
	assert.Nil(t, inst.Latitude)
	assert.Empty(t, inst.Location)

	withGeo := fullSubmission("L007", 0)
	withGeo.Geo = &Geolocation{Latitude: -23.5505, Longitude: -46.6333, Address: "Av. Paulista"}
	inst, err = svc.Submit(withGeo)
	require.NoError(t, err)
	require.NotNil(t, inst.Latitude)
	assert.InDelta(t, -23.5505, *inst.Latitude, 1e-9)
	assert.NotEmpty(t, inst.Location)
}

func TestStatusAbsentIsNotAnError(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)

	status, err := svc.Status("NOPE")
	require.NoError(t, err)
	assert.False(t, status.IsInstalled)
	assert.Nil(t, status.Installation)
}

func TestStatusInstalledRegardlessOfFinalizada(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L008")
	supplier := seedSupplier(t, db, "Montagens Sul")

	in := fullSubmission("L008", 2)
	in.SupplierID = &supplier.ID
	_, err := svc.Submit(in)
	require.NoError(t, err)

	status, err := svc.Status("L008")
	require.NoError(t, err)
	assert.True(t, status.IsInstalled)
	assert.False(t, status.Installation.Finalizada)
	require.NotNil(t, status.Supplier)
	assert.Equal(t, supplier.ID, status.Supplier.ID)
	assert.Len(t, status.Original, 4)
	assert.Len(t, status.Finals, 2)
}

func TestFinalizeIdempotent(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewInstallationService(db)
	seedStore(t, db, "L009")

	_, err := svc.Submit(fullSubmission("L009", 0))
	require.NoError(t, err)

	require.NoError(t, svc.Finalize("L009"))
	require.NoError(t, svc.Finalize("L009"))

	var inst models.Installation
	require.NoError(t, db.Where("store_code = ?", "L009").First(&inst).Error)
	assert.True(t, inst.Finalizada)

	assert.ErrorIs(t, svc.Finalize("NOPE"), ErrStoreNotFound)
}
