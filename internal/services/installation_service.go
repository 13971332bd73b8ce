package services

import (
	"encoding/binary"
	"errors"
	"strings"
	"time"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/gorm"

	"rollout_tracker/internal/models"
)

// InstallationService is the submission processor: it merges newly captured
// photos with the stored ones, applies the evidence gate and commits one
// current installation record per store code.
type InstallationService struct {
	db *gorm.DB
}

func NewInstallationService(db *gorm.DB) *InstallationService {
	return &InstallationService{db: db}
}

// Geolocation is the optional position captured at submission time.
type Geolocation struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Address   string     `json:"address"`
	Timestamp *time.Time `json:"timestamp"`
}

// SubmissionInput is one installer checklist for a store. Original holds
// the 4 fixed slots in models.OriginalSlots order; Finals holds one slot
// per kit, indexed by the kit inventory at call time.
type SubmissionInput struct {
	StoreCode        string       `json:"store_code"`
	SupplierID       *uint        `json:"supplier_id"`
	Responsible      string       `json:"responsible"`
	InstallationDate string       `json:"installation_date"`
	Original         [4]PhotoSlot `json:"original"`
	Finals           []PhotoSlot  `json:"finals"`
	Justification    string       `json:"justification"`
	Geo              *Geolocation `json:"geo"`
}

// InstallationStatus is the read model for one store.
type InstallationStatus struct {
	IsInstalled  bool                   `json:"is_installed"`
	Installation *models.Installation   `json:"installation,omitempty"`
	Supplier     *models.Supplier       `json:"supplier,omitempty"`
	Original     []models.OriginalPhoto `json:"original_photos,omitempty"`
	Finals       []models.FinalPhoto    `json:"final_photos,omitempty"`
}

// Submit validates and persists one checklist. Photo rows for the store are
// replaced wholesale inside a transaction; the returned Installation is
// reloaded from the database after commit.
func (s *InstallationService) Submit(input SubmissionInput) (*models.Installation, error) {
	if strings.TrimSpace(input.StoreCode) == "" ||
		strings.TrimSpace(input.Responsible) == "" ||
		strings.TrimSpace(input.InstallationDate) == "" {
		return nil, ErrMissingFields
	}

	original, finals, err := s.mergeWithStored(input)
	if err != nil {
		return nil, err
	}

	// Evidence gate runs before any write.
	if err := CheckEvidence(original, finals, input.Justification); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Photo storage is keyed by store code: delete the previous snapshot
	// fully before inserting the new one. Hard delete so the unique visit
	// of an installer overwrites rather than appends.
	if err := tx.Unscoped().Where("store_code = ?", input.StoreCode).Delete(&models.OriginalPhoto{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Unscoped().Where("store_code = ?", input.StoreCode).Delete(&models.FinalPhoto{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i, slot := range original {
		ref := slot.Ref()
		if ref == "" {
			continue
		}
		row := models.OriginalPhoto{StoreCode: input.StoreCode, Slot: models.OriginalSlots[i], Ref: ref}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	for i, slot := range finals {
		ref := slot.Ref()
		if ref == "" {
			continue
		}
		row := models.FinalPhoto{StoreCode: input.StoreCode, KitIndex: i, Ref: ref}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := s.upsertInstallation(tx, input); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Read-after-write: the caller always sees durable state.
	var fresh models.Installation
	if err := s.db.Where("store_code = ?", input.StoreCode).First(&fresh).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// mergeWithStored fills slots the client left untouched with the references
// already persisted for the store. A slot is only dropped when the client
// explicitly clears it ("null").
func (s *InstallationService) mergeWithStored(input SubmissionInput) ([4]PhotoSlot, []PhotoSlot, error) {
	original := input.Original
	finals := make([]PhotoSlot, len(input.Finals))
	copy(finals, input.Finals)

	var storedOriginal []models.OriginalPhoto
	if err := s.db.Where("store_code = ?", input.StoreCode).Find(&storedOriginal).Error; err != nil {
		return original, finals, err
	}
	bySlot := make(map[string]string, len(storedOriginal))
	for _, p := range storedOriginal {
		bySlot[p.Slot] = p.Ref
	}
	for i, name := range models.OriginalSlots {
		if original[i].New == "" && strings.TrimSpace(original[i].Stored) == "" {
			original[i].Stored = bySlot[name]
		}
	}

	var storedFinal []models.FinalPhoto
	if err := s.db.Where("store_code = ?", input.StoreCode).Find(&storedFinal).Error; err != nil {
		return original, finals, err
	}
	byIndex := make(map[int]string, len(storedFinal))
	for _, p := range storedFinal {
		byIndex[p.KitIndex] = p.Ref
	}
	for i := range finals {
		if finals[i].New == "" && strings.TrimSpace(finals[i].Stored) == "" {
			finals[i].Stored = byIndex[i]
		}
	}
	return original, finals, nil
}

func (s *InstallationService) upsertInstallation(tx *gorm.DB, input SubmissionInput) error {
	// Unscoped lookup: store_code carries a unique index, so a soft-deleted
	// row must be revived rather than shadowed by an insert.
	var inst models.Installation
	err := tx.Unscoped().Where("store_code = ?", input.StoreCode).First(&inst).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		inst = models.Installation{StoreCode: input.StoreCode}
	}
	inst.DeletedAt = gorm.DeletedAt{}

	inst.SupplierID = input.SupplierID
	inst.Responsible = input.Responsible
	inst.InstallationDate = input.InstallationDate
	inst.Justification = strings.TrimSpace(input.Justification)

	// Geolocation is optional: the submission succeeds with null fields
	// when capture was unavailable.
	if input.Geo != nil {
		lat, lng := input.Geo.Latitude, input.Geo.Longitude
		inst.Latitude = &lat
		inst.Longitude = &lng
		inst.GeoAddress = input.Geo.Address
		inst.GeoTimestamp = input.Geo.Timestamp
		point := geom.NewPointFlat(geom.XY, []float64{lng, lat})
		point.SetSRID(4326)
		wkbBytes, err := wkb.Marshal(point, binary.LittleEndian)
		if err != nil {
			return err
		}
		inst.Location = wkbBytes
	}

	return tx.Unscoped().Save(&inst).Error
}

// Status reports the current installation state of a store. An unknown
// store is a normal "absent" result, not an error. IsInstalled means a
// submission happened, regardless of the finalizada flag.
func (s *InstallationService) Status(storeCode string) (*InstallationStatus, error) {
	var inst models.Installation
	err := s.db.Where("store_code = ?", storeCode).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &InstallationStatus{IsInstalled: false}, nil
	}
	if err != nil {
		return nil, err
	}

	status := &InstallationStatus{IsInstalled: true, Installation: &inst}
	if inst.SupplierID != nil {
		var supplier models.Supplier
		if err := s.db.First(&supplier, *inst.SupplierID).Error; err == nil {
			status.Supplier = &supplier
		}
	}
	if err := s.db.Where("store_code = ?", storeCode).Order("slot").Find(&status.Original).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("store_code = ?", storeCode).Order("kit_index").Find(&status.Finals).Error; err != nil {
		return nil, err
	}
	return status, nil
}

// Finalize flips the finalizada flag on the existing installation.
// Finalizing twice is a no-op.
func (s *InstallationService) Finalize(storeCode string) error {
	var inst models.Installation
	err := s.db.Where("store_code = ?", storeCode).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStoreNotFound
	}
	if err != nil {
		return err
	}
	if inst.Finalizada {
		return nil
	}
	return s.db.Model(&inst).Update("finalizada", true).Error
}
