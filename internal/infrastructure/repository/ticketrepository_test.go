package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"loftwork/internal/domain/property"
	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TicketModel{},
		&models.PropertyModel{},
		&models.LeaseModel{},
		&models.CashFlowModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestTicket(t *testing.T, title string, priority vo.Priority, propertyID uint) *ticket.Ticket {
	tk, err := ticket.NewTicket(title, "Test description", priority, propertyID, ticket.Metadata{})
	require.NoError(t, err)
	return tk
}

func seedProperty(t *testing.T, db *gorm.DB, id uint, address string) {
	require.NoError(t, db.Create(&models.PropertyModel{
		ID:      id,
		Name:    "Test Property",
		Address: address,
		Units:   4,
	}).Error)
}

func TestTicketRepository_SaveAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("save assigns id", func(t *testing.T) {
		tk := createTestTicket(t, "Leaky faucet", vo.PriorityHigh, 1)
		err := repo.Save(ctx, tk)
		assert.NoError(t, err)
		assert.NotZero(t, tk.ID())
	})

	t.Run("metadata survives the round trip", func(t *testing.T) {
		cost := int64(25000)
		tk, err := ticket.NewTicket("Broken window", "Pane cracked in unit 2B", vo.PriorityMedium, 1, ticket.Metadata{
			ContactName:        "Dana",
			EstimatedCostCents: &cost,
			Attachments: []ticket.Attachment{
				{Filename: "crack.jpg", Size: 1024, MimeType: "image/jpeg", URL: "https://files.local/crack.jpg"},
			},
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tk))

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, "Dana", found.Metadata().ContactName)
		require.NotNil(t, found.Metadata().EstimatedCostCents)
		assert.Equal(t, cost, *found.Metadata().EstimatedCostCents)
		require.Len(t, found.Metadata().Attachments, 1)
		assert.Equal(t, "crack.jpg", found.Metadata().Attachments[0].Filename)
	})

	t.Run("timestamps keep millisecond precision", func(t *testing.T) {
		tk := createTestTicket(t, "Timestamps", vo.PriorityLow, 1)
		require.NoError(t, repo.Save(ctx, tk))

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, tk.UpdatedAt().UnixMilli(), found.UpdatedAt().UnixMilli())
		assert.Equal(t, tk.CreatedAt().UnixMilli(), found.CreatedAt().UnixMilli())
	})

	t.Run("missing id returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestTicketRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "Original", vo.PriorityMedium, 1)
	require.NoError(t, repo.Save(ctx, tk))

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgressByAI))
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgressByAI, found.Status())
	assert.Equal(t, tk.UpdatedAt().UnixMilli(), found.UpdatedAt().UnixMilli())
	assert.Equal(t, tk.Version(), found.Version())
}

func TestTicketRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "Short lived", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, tk))

	assert.NoError(t, repo.Delete(ctx, tk.ID()))

	_, err := repo.GetByID(ctx, tk.ID())
	assert.Error(t, err)

	err = repo.Delete(ctx, tk.ID())
	assert.Error(t, err, "deleting a missing ticket must report not found")
}

func TestTicketRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	seedProperty(t, db, 1, "12 Elm St")
	seedProperty(t, db, 2, "99 Oak Ave")

	open := createTestTicket(t, "Boiler makes noise", vo.PriorityHigh, 1)
	require.NoError(t, repo.Save(ctx, open))

	urgent := createTestTicket(t, "Flooded basement", vo.PriorityUrgent, 2)
	require.NoError(t, repo.Save(ctx, urgent))

	resolved := createTestTicket(t, "Door sticks", vo.PriorityLow, 1)
	require.NoError(t, repo.Save(ctx, resolved))
	require.NoError(t, resolved.ChangeStatus(vo.StatusResolved))
	require.NoError(t, repo.Update(ctx, resolved))

	t.Run("status filter", func(t *testing.T) {
		status := vo.StatusResolved
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, resolved.ID(), tickets[0].ID())
	})

	t.Run("priority filter", func(t *testing.T) {
		priority := vo.PriorityUrgent
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Priority: &priority})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, urgent.ID(), tickets[0].ID())
	})

	t.Run("property filter", func(t *testing.T) {
		propertyID := uint(2)
		_, total, err := repo.List(ctx, ticket.TicketFilter{PropertyID: &propertyID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Search: "BOILER"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, open.ID(), tickets[0].ID())
	})

	t.Run("search matches property address", func(t *testing.T) {
		_, total, err := repo.List(ctx, ticket.TicketFilter{Search: "oak ave"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pagination applies after count", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 2)
	})

	t.Run("sort by whitelisted field", func(t *testing.T) {
		tickets, _, err := repo.List(ctx, ticket.TicketFilter{SortBy: "priority", SortOrder: "asc"})
		require.NoError(t, err)
		require.Len(t, tickets, 3)
		assert.Equal(t, vo.PriorityHigh, tickets[0].Priority())
	})

	t.Run("unlisted sort field falls back to created_at", func(t *testing.T) {
		_, _, err := repo.List(ctx, ticket.TicketFilter{SortBy: "metadata; DROP TABLE tickets"})
		assert.NoError(t, err)
	})
}

func TestPropertyRepository_AddressesByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	seedProperty(t, db, 1, "12 Elm St")
	seedProperty(t, db, 2, "99 Oak Ave")

	addresses, err := repo.AddressesByID(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{1: "12 Elm St", 2: "99 Oak Ave"}, addresses)
}

func TestLeaseRepository_ListActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLeaseRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, db.Create(&models.LeaseModel{
		PropertyID: 1, TenantName: "Active Tenant", MonthlyRentCents: 150000,
		StartDate: now.AddDate(-1, 0, 0).UnixMilli(), EndDate: now.AddDate(0, 2, 0).UnixMilli(), Active: true,
	}).Error)
	require.NoError(t, db.Create(&models.LeaseModel{
		PropertyID: 1, TenantName: "Former Tenant", MonthlyRentCents: 140000,
		StartDate: now.AddDate(-3, 0, 0).UnixMilli(), EndDate: now.AddDate(-2, 0, 0).UnixMilli(), Active: false,
	}).Error)

	leases, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, leases, 1)
	assert.Equal(t, "Active Tenant", leases[0].TenantName)
	assert.Equal(t, int64(150000), leases[0].MonthlyRentCents)
}

func TestCashFlowRepository_ListBetween(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCashFlowRepository(db)
	ctx := context.Background()

	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, f := range []models.CashFlowModel{
		{PropertyID: 1, Type: "income", AmountCents: 120000, Date: jan.UnixMilli()},
		{PropertyID: 1, Type: "expense", AmountCents: 15000, Date: feb.UnixMilli()},
		{PropertyID: 1, Type: "income", AmountCents: 110000, Date: mar.UnixMilli()},
	} {
		require.NoError(t, db.Create(&f).Error)
	}

	t.Run("window is inclusive-exclusive", func(t *testing.T) {
		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

		flows, err := repo.ListBetween(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, flows, 2)
		assert.Equal(t, property.FlowIncome, flows[0].Type)
		assert.Equal(t, property.FlowExpense, flows[1].Type)
	})

	t.Run("empty window returns nothing", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

		flows, err := repo.ListBetween(ctx, from, to)
		require.NoError(t, err)
		assert.Empty(t, flows)
	})
}
