package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rollout_tracker/internal/config"
	"rollout_tracker/internal/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.MigrateForTests(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var seedSeq uint

func seedSupplier(t *testing.T, db *gorm.DB, name string) models.Supplier {
	t.Helper()
	seedSeq++
	s := models.Supplier{
		UserID: 1000 + seedSeq,
		Name:   name,
		CNPJ:   fmt.Sprintf("%014d", seedSeq),
		Email:  fmt.Sprintf("%s-%d@rollout.test", name, seedSeq),
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return s
}

func seedEmployee(t *testing.T, db *gorm.DB, supplierID uint, name string) models.Employee {
	t.Helper()
	seedSeq++
	e := models.Employee{UserID: 2000 + seedSeq, SupplierID: supplierID, Name: name}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}

func seedStore(t *testing.T, db *gorm.DB, code string) models.Store {
	t.Helper()
	s := models.Store{Code: code, Name: "Loja " + code}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return s
}

func seedKits(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		k := models.Kit{Name: fmt.Sprintf("Kit %d", i+1), Position: i + 1}
		if err := db.Create(&k).Error; err != nil {
			t.Fatalf("seed kit: %v", err)
		}
	}
}

// fullSubmission builds a submission with every slot freshly captured.
func fullSubmission(storeCode string, kits int) SubmissionInput {
	in := SubmissionInput{
		StoreCode:        storeCode,
		Responsible:      "Carlos Mendes",
		InstallationDate: "2025-03-10",
		Finals:           make([]PhotoSlot, kits),
	}
	for i := range in.Original {
		in.Original[i] = PhotoSlot{New: fmt.Sprintf("orig-%s-%d.jpg", storeCode, i)}
	}
	for i := range in.Finals {
		in.Finals[i] = PhotoSlot{New: fmt.Sprintf("final-%s-%d.jpg", storeCode, i)}
	}
	return in
}
