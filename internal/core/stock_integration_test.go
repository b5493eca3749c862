package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/enjleezdev/theappez/internal/core"
)

func setupTestDB(t *testing.T) (*pgxpool.Pool, context.Context) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE archived_reports, items, warehouses, users CASCADE;

		INSERT INTO users (id, email, display_name, password_hash)
		VALUES ('00000000-0000-0000-0000-000000000001', 'test@example.com', 'Test User', 'x');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool, ctx
}

const testOwnerID = "00000000-0000-0000-0000-000000000001"

func createTestWarehouse(t *testing.T, ctx context.Context, pool *pgxpool.Pool, name string) *core.Warehouse {
	t.Helper()
	w, err := core.NewWarehouseService(pool).CreateWarehouse(ctx, testOwnerID, name, "")
	if err != nil {
		t.Fatalf("CreateWarehouse failed: %v", err)
	}
	return w
}

func createTestItem(t *testing.T, ctx context.Context, pool *pgxpool.Pool, warehouseID, name string, initial int64) *core.Item {
	t.Helper()
	item, err := core.NewItemService(pool).CreateItem(ctx, core.CreateItemInput{
		WarehouseID:     warehouseID,
		OwnerID:         testOwnerID,
		Name:            name,
		InitialQuantity: initial,
	})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	return item
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateItem_SeedsLedger(t *testing.T) {
	pool, ctx := setupTestDB(t)
	w := createTestWarehouse(t, ctx, pool, "Main")

	item := createTestItem(t, ctx, pool, w.ID, "Bolts", 10)

	if item.Quantity != 10 {
		t.Errorf("Expected quantity=10, got %d", item.Quantity)
	}
	if len(item.History) != 1 {
		t.Fatalf("Expected 1 ledger entry, got %d", len(item.History))
	}
	e := item.History[0]
	if e.Type != core.EntryCreateItem {
		t.Errorf("Expected CREATE_ITEM entry, got %s", e.Type)
	}
	if e.QuantityBefore != 0 || e.Change != 10 || e.QuantityAfter != 10 {
		t.Errorf("Expected 0 +10 = 10, got %d %+d = %d", e.QuantityBefore, e.Change, e.QuantityAfter)
	}
	if err := core.VerifyItemLedger(item); err != nil {
		t.Errorf("Ledger verification failed: %v", err)
	}
}

func TestStock_AddConsumeAdjust(t *testing.T) {
	pool, ctx := setupTestDB(t)
	w := createTestWarehouse(t, ctx, pool, "Main")
	item := createTestItem(t, ctx, pool, w.ID, "Bolts", 10)

	stock := core.NewStockService(pool)

	item, err := stock.AddStock(ctx, item.ID, 5, "restock")
	if err != nil {
		t.Fatalf("AddStock failed: %v", err)
	}
	if item.Quantity != 15 {
		t.Errorf("Expected quantity=15 after add, got %d", item.Quantity)
	}

	item, err = stock.ConsumeStock(ctx, item.ID, 3, "issued to line 2")
	if err != nil {
		t.Fatalf("ConsumeStock failed: %v", err)
	}
	if item.Quantity != 12 {
		t.Errorf("Expected quantity=12 after consume, got %d", item.Quantity)
	}

	item, err = stock.AdjustStock(ctx, item.ID, -2, "damaged units")
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if item.Quantity != 10 {
		t.Errorf("Expected quantity=10 after adjust, got %d", item.Quantity)
	}

	if len(item.History) != 4 {
		t.Fatalf("Expected 4 ledger entries, got %d", len(item.History))
	}
	if err := core.VerifyItemLedger(item); err != nil {
		t.Errorf("Ledger verification failed: %v", err)
	}
}

func TestStock_ConsumeBeyondAvailableWritesNothing(t *testing.T) {
	pool, ctx := setupTestDB(t)
	w := createTestWarehouse(t, ctx, pool, "Main")
	item := createTestItem(t, ctx, pool, w.ID, "Bolts", 5)

	stock := core.NewStockService(pool)

	_, err := stock.ConsumeStock(ctx, item.ID, 8, "")
	var negative *core.NegativeStockError
	if !errors.As(err, &negative) {
		t.Fatalf("Expected NegativeStockError, got %v", err)
	}
	if negative.Available != 5 || negative.Requested != 8 {
		t.Errorf("Expected available=5 requested=8, got %d/%d", negative.Available, negative.Requested)
	}
	if negative.ItemID != item.ID {
		t.Errorf("Expected error to carry item id %s, got %s", item.ID, negative.ItemID)
	}

	// Nothing was written: quantity and ledger are untouched.
	reloaded, err := core.NewItemService(pool).GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if reloaded.Quantity != 5 {
		t.Errorf("Expected quantity unchanged at 5, got %d", reloaded.Quantity)
	}
	if len(reloaded.History) != 1 {
		t.Errorf("Expected ledger unchanged at 1 entry, got %d", len(reloaded.History))
	}
}

func TestStock_RejectsArchivedItem(t *testing.T) {
	pool, ctx := setupTestDB(t)
	w := createTestWarehouse(t, ctx, pool, "Main")
	item := createTestItem(t, ctx, pool, w.ID, "Bolts", 5)

	items := core.NewItemService(pool)
	if err := items.ArchiveItem(ctx, item.ID); err != nil {
		t.Fatalf("ArchiveItem failed: %v", err)
	}

	if _, err := core.NewStockService(pool).AddStock(ctx, item.ID, 1, ""); err == nil {
		t.Error("Expected mutation on archived item to fail")
	}
}

func TestWarehouseArchive_CascadesToItems(t *testing.T) {
	pool, ctx := setupTestDB(t)
	w := createTestWarehouse(t, ctx, pool, "Main")
	item := createTestItem(t, ctx, pool, w.ID, "Bolts", 5)

	warehouses := core.NewWarehouseService(pool)
	items := core.NewItemService(pool)

	if err := warehouses.ArchiveWarehouse(ctx, w.ID); err != nil {
		t.Fatalf("ArchiveWarehouse failed: %v", err)
	}

	archived, err := items.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if !archived.IsArchived {
		t.Error("Expected item to be archived with its warehouse")
	}
	// The ledger survives archival untouched.
	if len(archived.History) != 1 {
		t.Errorf("Expected ledger preserved through archive, got %d entries", len(archived.History))
	}

	// Restore brings back the warehouse only; items stay archived.
	if err := warehouses.RestoreWarehouse(ctx, w.ID); err != nil {
		t.Fatalf("RestoreWarehouse failed: %v", err)
	}
	restored, err := warehouses.GetWarehouse(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetWarehouse failed: %v", err)
	}
	if restored.IsArchived {
		t.Error("Expected warehouse restored")
	}
	stillArchived, err := items.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if !stillArchived.IsArchived {
		t.Error("Expected item to stay archived after warehouse restore")
	}
}

func TestWarehouseArchive_NotFound(t *testing.T) {
	pool, ctx := setupTestDB(t)

	err := core.NewWarehouseService(pool).ArchiveWarehouse(ctx, "00000000-0000-0000-0000-0000000000ff")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestTransactionReport_ExcludesArchived(t *testing.T) {
	pool, ctx := setupTestDB(t)
	w1 := createTestWarehouse(t, ctx, pool, "Main")
	w2 := createTestWarehouse(t, ctx, pool, "Overflow")
	createTestItem(t, ctx, pool, w1.ID, "Bolts", 10)
	createTestItem(t, ctx, pool, w2.ID, "Nuts", 5)

	if err := core.NewWarehouseService(pool).ArchiveWarehouse(ctx, w2.ID); err != nil {
		t.Fatalf("ArchiveWarehouse failed: %v", err)
	}

	report, err := core.NewReportService(pool).TransactionReport(ctx, core.ReportFilter{})
	if err != nil {
		t.Fatalf("TransactionReport failed: %v", err)
	}
	if report.Title != "All transactions" {
		t.Errorf("Expected default title, got %q", report.Title)
	}
	for _, e := range report.Entries {
		if e.WarehouseID == w2.ID {
			t.Errorf("Archived warehouse %s leaked into the report", w2.ID)
		}
	}
	if len(report.Entries) != 1 {
		t.Errorf("Expected 1 entry from the live warehouse, got %d", len(report.Entries))
	}
}
