package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enjleezdev/theappez/internal/ai"
	"github.com/enjleezdev/theappez/internal/core"
	"github.com/enjleezdev/theappez/internal/export"
)

type appService struct {
	pool       *pgxpool.Pool
	warehouses core.WarehouseService
	items      core.ItemService
	stock      core.StockService
	reports    core.ReportService
	archive    core.ArchiveService
	users      core.UserService
	agent      ai.SuggestionService
}

// NewAppService constructs an appService that satisfies ApplicationService.
// agent may be nil; SuggestStock then reports the feature unavailable.
func NewAppService(pool *pgxpool.Pool, agent ai.SuggestionService) ApplicationService {
	return &appService{
		pool:       pool,
		warehouses: core.NewWarehouseService(pool),
		items:      core.NewItemService(pool),
		stock:      core.NewStockService(pool),
		reports:    core.NewReportService(pool),
		archive:    core.NewArchiveService(pool),
		users:      core.NewUserService(pool),
		agent:      agent,
	}
}

// ── warehouses ────────────────────────────────────────────────────────────────

func (s *appService) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResult, error) {
	w, err := s.warehouses.CreateWarehouse(ctx, req.OwnerID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return &WarehouseResult{Warehouse: w}, nil
}

func (s *appService) GetWarehouse(ctx context.Context, id string) (*WarehouseDetailResult, error) {
	w, err := s.warehouses.GetWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListItems(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return &WarehouseDetailResult{Warehouse: w, Items: items}, nil
}

func (s *appService) ListWarehouses(ctx context.Context, includeArchived bool) (*WarehouseListResult, error) {
	warehouses, err := s.warehouses.ListWarehouses(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	return &WarehouseListResult{Warehouses: warehouses}, nil
}

func (s *appService) UpdateWarehouse(ctx context.Context, id, name, description string) (*WarehouseResult, error) {
	w, err := s.warehouses.UpdateWarehouse(ctx, id, name, description)
	if err != nil {
		return nil, err
	}
	return &WarehouseResult{Warehouse: w}, nil
}

func (s *appService) ArchiveWarehouse(ctx context.Context, id string) error {
	return s.warehouses.ArchiveWarehouse(ctx, id)
}

func (s *appService) RestoreWarehouse(ctx context.Context, id string) error {
	return s.warehouses.RestoreWarehouse(ctx, id)
}

// ── items ─────────────────────────────────────────────────────────────────────

func (s *appService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResult, error) {
	// The parent must exist and be live; creating items under an archived
	// warehouse would resurrect it in reports.
	w, err := s.warehouses.GetWarehouse(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if w.IsArchived {
		return nil, fmt.Errorf("warehouse %q is archived", w.Name)
	}

	item, err := s.items.CreateItem(ctx, core.CreateItemInput{
		WarehouseID:     req.WarehouseID,
		OwnerID:         req.OwnerID,
		Name:            req.Name,
		Location:        req.Location,
		InitialQuantity: req.InitialQuantity,
		Comment:         req.Comment,
	})
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

func (s *appService) GetItem(ctx context.Context, id string) (*ItemResult, error) {
	item, err := s.items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

func (s *appService) ListItems(ctx context.Context, warehouseID string, includeArchived bool) (*ItemListResult, error) {
	items, err := s.items.ListItems(ctx, warehouseID, includeArchived)
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

func (s *appService) UpdateItem(ctx context.Context, id, name, location string) (*ItemResult, error) {
	item, err := s.items.UpdateItem(ctx, id, name, location)
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

func (s *appService) ArchiveItem(ctx context.Context, id string) error {
	return s.items.ArchiveItem(ctx, id)
}

func (s *appService) RestoreItem(ctx context.Context, id string) error {
	return s.items.RestoreItem(ctx, id)
}

// ── stock ─────────────────────────────────────────────────────────────────────

func (s *appService) AddStock(ctx context.Context, itemID string, qty int64, comment string) (*ItemResult, error) {
	item, err := s.stock.AddStock(ctx, itemID, qty, comment)
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

func (s *appService) ConsumeStock(ctx context.Context, itemID string, qty int64, comment string) (*ItemResult, error) {
	item, err := s.stock.ConsumeStock(ctx, itemID, qty, comment)
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

func (s *appService) AdjustStock(ctx context.Context, itemID string, delta int64, comment string) (*ItemResult, error) {
	item, err := s.stock.AdjustStock(ctx, itemID, delta, comment)
	if err != nil {
		return nil, err
	}
	return &ItemResult{Item: item}, nil
}

// ── reports ───────────────────────────────────────────────────────────────────

func (s *appService) GetTransactionReport(ctx context.Context, f core.ReportFilter) (*core.TransactionReport, error) {
	return s.reports.TransactionReport(ctx, f)
}

func (s *appService) ExportTransactionReport(ctx context.Context, f core.ReportFilter) (*ExportResult, error) {
	report, err := s.reports.TransactionReport(ctx, f)
	if err != nil {
		return nil, err
	}
	buf, err := export.WriteTransactionReport(report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("transactions-%s.xlsx", report.GeneratedAt.Format("20060102-150405")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf,
	}, nil
}

// ── printing (archive snapshots) ──────────────────────────────────────────────

func (s *appService) PrintItemReport(ctx context.Context, itemID, printedBy string) (*core.ArchivedReport, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	w, err := s.warehouses.GetWarehouse(ctx, item.WarehouseID)
	if err != nil {
		return nil, err
	}

	// Deep copy: once stored, the snapshot never reflects later mutations.
	ledger := make([]core.HistoryEntry, len(item.History))
	copy(ledger, item.History)
	core.SortEntriesDesc(ledger)

	return s.archive.ArchiveReport(ctx, &core.ArchivedReport{
		Type:          core.ReportTypeItem,
		WarehouseID:   w.ID,
		WarehouseName: w.Name,
		ItemID:        item.ID,
		ItemName:      item.Name,
		Title:         fmt.Sprintf("Item report: %s", item.Name),
		PrintedBy:     printedBy,
		Snapshot:      core.ItemReportSnapshot{Ledger: ledger},
	})
}

func (s *appService) PrintWarehouseReport(ctx context.Context, warehouseID, printedBy string) (*core.ArchivedReport, error) {
	w, err := s.warehouses.GetWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListItems(ctx, warehouseID, false)
	if err != nil {
		return nil, err
	}

	listing := make([]core.ItemQuantity, 0, len(items))
	for _, it := range items {
		listing = append(listing, core.ItemQuantity{
			ItemID:   it.ID,
			ItemName: it.Name,
			Quantity: it.Quantity,
			Location: it.Location,
		})
	}

	return s.archive.ArchiveReport(ctx, &core.ArchivedReport{
		Type:          core.ReportTypeWarehouse,
		WarehouseID:   w.ID,
		WarehouseName: w.Name,
		Title:         fmt.Sprintf("Warehouse report: %s", w.Name),
		PrintedBy:     printedBy,
		Snapshot:      core.WarehouseReportSnapshot{Items: listing},
	})
}

func (s *appService) PrintTransactionReport(ctx context.Context, f core.ReportFilter, printedBy string) (*core.ArchivedReport, error) {
	report, err := s.reports.TransactionReport(ctx, f)
	if err != nil {
		return nil, err
	}

	entries := make([]core.FlattenedHistoryEntry, len(report.Entries))
	copy(entries, report.Entries)

	archived := &core.ArchivedReport{
		Type:      core.ReportTypeTransactions,
		Title:     report.Title,
		PrintedBy: printedBy,
		Snapshot:  core.TransactionsReportSnapshot{Entries: entries},
	}
	// Filter scope is denormalized into the header so the archive listing
	// can label the report after the source records change.
	if f.WarehouseID != "" {
		if w, err := s.warehouses.GetWarehouse(ctx, f.WarehouseID); err == nil {
			archived.WarehouseID = w.ID
			archived.WarehouseName = w.Name
		}
	}
	if f.ItemID != "" {
		if it, err := s.items.GetItem(ctx, f.ItemID); err == nil {
			archived.ItemID = it.ID
			archived.ItemName = it.Name
		}
	}
	return s.archive.ArchiveReport(ctx, archived)
}

func (s *appService) ListArchivedReports(ctx context.Context) (*ArchiveListResult, error) {
	reports, err := s.archive.ListArchivedReports(ctx)
	if err != nil {
		return nil, err
	}
	return &ArchiveListResult{Reports: reports}, nil
}

func (s *appService) ReprintReport(ctx context.Context, reportID string) (*ReprintResult, error) {
	report, err := s.archive.GetArchivedReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	result := &ReprintResult{Report: report}
	switch report.Type {
	case core.ReportTypeItem:
		result.Item, err = report.ReprintItem()
	case core.ReportTypeWarehouse:
		result.Warehouse, err = report.ReprintWarehouse()
	case core.ReportTypeTransactions:
		result.Transactions, err = report.ReprintTransactions()
	default:
		err = &core.MalformedReportError{ReportID: report.ID, ReportType: report.Type, Reason: "unknown report type"}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ── AI ────────────────────────────────────────────────────────────────────────

func (s *appService) SuggestStock(ctx context.Context, itemID string) (*SuggestionResult, error) {
	if s.agent == nil {
		return nil, fmt.Errorf("stock suggestions are not configured; set OPENAI_API_KEY")
	}
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	w, err := s.warehouses.GetWarehouse(ctx, item.WarehouseID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	suggestion, err := s.agent.SuggestStock(ctx, item, w.Name)
	if err != nil {
		return nil, err
	}
	return &SuggestionResult{Item: item, Suggestion: suggestion}, nil
}

// ── auth ──────────────────────────────────────────────────────────────────────

func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !u.CheckPassword(password) {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &UserSession{UserID: u.ID, Email: u.Email, DisplayName: u.DisplayName}, nil
}

func (s *appService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*UserSession, error) {
	u, err := s.users.CreateUser(ctx, req.Email, req.DisplayName, req.Password)
	if err != nil {
		return nil, err
	}
	return &UserSession{UserID: u.ID, Email: u.Email, DisplayName: u.DisplayName}, nil
}

func (s *appService) GetUser(ctx context.Context, userID string) (*core.User, error) {
	return s.users.GetByID(ctx, userID)
}
