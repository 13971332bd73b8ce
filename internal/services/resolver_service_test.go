package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverSearch(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewResolverService(db)
	supplier := seedSupplier(t, db, "Montagens Paulista")
	seedEmployee(t, db, supplier.ID, "Paulo Souza")
	seedEmployee(t, db, supplier.ID, "Maria Lima")

	matches, err := svc.Search("paul")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	var supplierHits, employeeHits int
	for _, m := range matches {
		switch m.Type {
		case ActorSupplier:
			supplierHits++
			assert.Equal(t, supplier.ID, m.Supplier.ID)
		case ActorEmployee:
			employeeHits++
			assert.Equal(t, "Paulo Souza", m.Employee.Name)
			assert.Equal(t, supplier.ID, m.Employee.SupplierID)
		}
	}
	assert.Equal(t, 1, supplierHits)
	assert.Equal(t, 1, employeeHits)
}

func TestResolverSearchBlankQuery(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewResolverService(db)
	seedSupplier(t, db, "Alguém")

	matches, err := svc.Search("   ")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
