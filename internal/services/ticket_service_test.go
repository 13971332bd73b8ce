package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollout_tracker/internal/models"
)

func TestOpenTicket(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewTicketService(db)
	seedStore(t, db, "A")
	supplier := seedSupplier(t, db, "Fornecedor T")

	ticket, err := svc.Open(OpenTicketInput{
		StoreCode:      "A",
		Description:    "loja fechada no horário da visita",
		InstallerName:  "João",
		OccurrenceDate: "2025-03-10",
		SupplierID:     &supplier.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TicketAberto, ticket.Status)
	assert.NotEmpty(t, ticket.Protocol)

	_, err = svc.Open(OpenTicketInput{StoreCode: "ZZZ", Description: "x"})
	assert.ErrorIs(t, err, ErrStoreNotFound)

	_, err = svc.Open(OpenTicketInput{StoreCode: "A", Description: "  "})
	assert.ErrorIs(t, err, ErrTicketIncomplete)
}

func TestResolveTicketIdempotent(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewTicketService(db)
	seedStore(t, db, "A")

	ticket, err := svc.Open(OpenTicketInput{StoreCode: "A", Description: "problema"})
	require.NoError(t, err)

	require.NoError(t, svc.Resolve(ticket.ID))
	require.NoError(t, svc.Resolve(ticket.ID))

	var fresh models.Ticket
	require.NoError(t, db.First(&fresh, ticket.ID).Error)
	assert.Equal(t, models.TicketResolvido, fresh.Status)

	assert.ErrorIs(t, svc.Resolve(99999), ErrTicketNotFound)
}

func TestMultipleOpenTicketsAllowed(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewTicketService(db)
	seedStore(t, db, "A")

	_, err := svc.Open(OpenTicketInput{StoreCode: "A", Description: "primeiro"})
	require.NoError(t, err)
	_, err = svc.Open(OpenTicketInput{StoreCode: "A", Description: "segundo"})
	require.NoError(t, err)

	tickets, err := svc.ListByStore("A")
	require.NoError(t, err)
	assert.Len(t, tickets, 2)
}
