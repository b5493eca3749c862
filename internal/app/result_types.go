package app

import "github.com/enjleezdev/theappez/internal/core"

// WarehouseResult is returned by single-warehouse operations.
type WarehouseResult struct {
	Warehouse *core.Warehouse
}

// WarehouseDetailResult is returned by GetWarehouse.
type WarehouseDetailResult struct {
	Warehouse *core.Warehouse
	Items     []core.Item
}

// WarehouseListResult is returned by ListWarehouses.
type WarehouseListResult struct {
	Warehouses []core.Warehouse
}

// ItemResult is returned by item and stock operations.
type ItemResult struct {
	Item *core.Item
}

// ItemListResult is returned by ListItems.
type ItemListResult struct {
	Items []core.Item
}

// ArchiveListResult is returned by ListArchivedReports.
type ArchiveListResult struct {
	Reports []core.ArchivedReport
}

// ReprintResult is returned by ReprintReport. Exactly one of the view
// fields is set, matching the report's type.
type ReprintResult struct {
	Report       *core.ArchivedReport
	Item         *core.Item
	Warehouse    *core.WarehouseView
	Transactions []core.FlattenedHistoryEntry
}

// SuggestionResult is returned by SuggestStock.
type SuggestionResult struct {
	Item       *core.Item
	Suggestion *core.StockSuggestion
}

// UserSession identifies an authenticated user.
type UserSession struct {
	UserID      string
	Email       string
	DisplayName string
}
