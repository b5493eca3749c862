package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionReport is the output of the flattening and filter pipeline:
// the filtered entries in canonical order plus the derived title.
type TransactionReport struct {
	Title       string                  `json:"title"`
	Filter      ReportFilter            `json:"filter"`
	Entries     []FlattenedHistoryEntry `json:"entries"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// ReportService builds transaction reports over the live, non-archived
// data set. It is read-only.
type ReportService interface {
	// TransactionReport loads all non-archived warehouses and items,
	// flattens their ledgers, and applies the filter. An item filter
	// incompatible with the warehouse filter is dropped rather than
	// producing a trivially empty report.
	TransactionReport(ctx context.Context, f ReportFilter) (*TransactionReport, error)
}

type reportService struct {
	warehouses WarehouseService
	items      ItemService
}

// NewReportService constructs a ReportService over the given services.
// The pool parameter keeps construction uniform with the other services.
func NewReportService(pool *pgxpool.Pool) ReportService {
	return &reportService{
		warehouses: NewWarehouseService(pool),
		items:      NewItemService(pool),
	}
}

func (s *reportService) TransactionReport(ctx context.Context, f ReportFilter) (*TransactionReport, error) {
	warehouses, err := s.warehouses.ListWarehouses(ctx, false)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListActiveItems(ctx)
	if err != nil {
		return nil, err
	}

	var warehouseName, itemName string
	for _, w := range warehouses {
		if w.ID == f.WarehouseID {
			warehouseName = w.Name
		}
	}
	for _, it := range items {
		if it.ID == f.ItemID {
			itemName = it.Name
			// The item filter only makes sense inside its own warehouse's
			// scope; a contradictory combination falls back to the
			// warehouse filter alone.
			if f.WarehouseID != "" && it.WarehouseID != f.WarehouseID {
				f.ItemID = ""
				itemName = ""
			}
		}
	}

	flattened := Flatten(warehouses, items)
	filtered, err := ApplyFilter(flattened, f)
	if err != nil {
		return nil, err
	}

	return &TransactionReport{
		Title:       ReportTitle(f, warehouseName, itemName),
		Filter:      f,
		Entries:     filtered,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
