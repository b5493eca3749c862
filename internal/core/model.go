package core

import "time"

// EntryType classifies a history ledger entry by the event that produced it.
type EntryType string

const (
	EntryCreateItem   EntryType = "CREATE_ITEM"
	EntryAddStock     EntryType = "ADD_STOCK"
	EntryConsumeStock EntryType = "CONSUME_STOCK"
	EntryAdjustStock  EntryType = "ADJUST_STOCK"

	// Reserved for warehouse lifecycle events. No mutation path emits these yet.
	EntryArchiveWarehouse EntryType = "ARCHIVE_WAREHOUSE"
	EntryRestoreWarehouse EntryType = "RESTORE_WAREHOUSE"
)

// HistoryEntry is one record in an item's append-only stock ledger.
// Entries are never edited or removed after insertion, even when the
// owning item or warehouse is archived.
// Invariant: QuantityAfter = QuantityBefore + Change.
type HistoryEntry struct {
	ID             string    `json:"id"`
	Type           EntryType `json:"type"`
	Change         int64     `json:"change"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	Comment        string    `json:"comment,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Warehouse is a storage location owning items. Archival is a soft delete:
// the record stays, IsArchived flips, and every non-archived item under it
// is archived in the same transaction.
type Warehouse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item is a tracked stock line inside a warehouse. History is the embedded
// ledger, stored with the item so a quantity change and its ledger entry
// land in a single write. Quantity always equals the QuantityAfter of the
// most recent entry.
type Item struct {
	ID          string         `json:"id"`
	WarehouseID string         `json:"warehouse_id"`
	OwnerID     string         `json:"owner_id"`
	Name        string         `json:"name"`
	Quantity    int64          `json:"quantity"`
	Location    string         `json:"location,omitempty"`
	IsArchived  bool           `json:"is_archived"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	History     []HistoryEntry `json:"history"`
}

// FlattenedHistoryEntry is a ledger entry widened with denormalized item
// and warehouse identity for the global transaction report. Derived and
// ephemeral — persisted only inside a TRANSACTIONS archive snapshot.
type FlattenedHistoryEntry struct {
	HistoryEntry
	ItemID        string `json:"item_id"`
	ItemName      string `json:"item_name"`
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
}
