package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReportType tags an archived report with the snapshot shape it carries.
type ReportType string

const (
	ReportTypeItem         ReportType = "ITEM"
	ReportTypeWarehouse    ReportType = "WAREHOUSE"
	ReportTypeTransactions ReportType = "TRANSACTIONS"
)

// ReportSnapshot is the tagged variant behind an ArchivedReport: exactly
// one concrete snapshot type exists per ReportType, so a report can never
// carry the wrong fields for its type.
type ReportSnapshot interface {
	reportType() ReportType
}

// ItemReportSnapshot is the full ledger of one item, ordered most recent
// first, captured at print time.
type ItemReportSnapshot struct {
	Ledger []HistoryEntry `json:"ledger"`
}

func (ItemReportSnapshot) reportType() ReportType { return ReportTypeItem }

// ItemQuantity is one line of a warehouse report: item identity plus the
// quantity it held at print time. Warehouse reports keep no ledger detail.
type ItemQuantity struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
	Location string `json:"location,omitempty"`
}

// WarehouseReportSnapshot is the items-with-quantity listing of one
// warehouse captured at print time.
type WarehouseReportSnapshot struct {
	Items []ItemQuantity `json:"items"`
}

func (WarehouseReportSnapshot) reportType() ReportType { return ReportTypeWarehouse }

// TransactionsReportSnapshot is a filtered flattened transaction list
// captured at print time, together with the title describing the filter.
type TransactionsReportSnapshot struct {
	Entries []FlattenedHistoryEntry `json:"entries"`
}

func (TransactionsReportSnapshot) reportType() ReportType { return ReportTypeTransactions }

// ArchivedReport is an immutable point-in-time copy of a printed report.
// Names are denormalized because the source warehouse or item may later
// be renamed or archived; the snapshot is a deep copy and never reads
// live state after creation.
type ArchivedReport struct {
	ID            string         `json:"id"`
	Type          ReportType     `json:"report_type"`
	WarehouseID   string         `json:"warehouse_id,omitempty"`
	WarehouseName string         `json:"warehouse_name,omitempty"`
	ItemID        string         `json:"item_id,omitempty"`
	ItemName      string         `json:"item_name,omitempty"`
	Title         string         `json:"title,omitempty"`
	PrintedBy     string         `json:"printed_by"`
	PrintedAt     time.Time      `json:"printed_at"`
	Snapshot      ReportSnapshot `json:"snapshot"`
}

// archivedReportJSON mirrors ArchivedReport with the snapshot held raw,
// so the variant can be decoded after the type tag is known.
type archivedReportJSON struct {
	ID            string          `json:"id"`
	Type          ReportType      `json:"report_type"`
	WarehouseID   string          `json:"warehouse_id,omitempty"`
	WarehouseName string          `json:"warehouse_name,omitempty"`
	ItemID        string          `json:"item_id,omitempty"`
	ItemName      string          `json:"item_name,omitempty"`
	Title         string          `json:"title,omitempty"`
	PrintedBy     string          `json:"printed_by"`
	PrintedAt     time.Time       `json:"printed_at"`
	Snapshot      json.RawMessage `json:"snapshot"`
}

func (r ArchivedReport) MarshalJSON() ([]byte, error) {
	var snap json.RawMessage
	if r.Snapshot != nil {
		b, err := json.Marshal(r.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s snapshot: %w", r.Type, err)
		}
		snap = b
	}
	return json.Marshal(archivedReportJSON{
		ID:            r.ID,
		Type:          r.Type,
		WarehouseID:   r.WarehouseID,
		WarehouseName: r.WarehouseName,
		ItemID:        r.ItemID,
		ItemName:      r.ItemName,
		Title:         r.Title,
		PrintedBy:     r.PrintedBy,
		PrintedAt:     r.PrintedAt,
		Snapshot:      snap,
	})
}

func (r *ArchivedReport) UnmarshalJSON(data []byte) error {
	var raw archivedReportJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	snap, err := DecodeSnapshot(raw.ID, raw.Type, raw.Snapshot)
	if err != nil {
		return err
	}
	*r = ArchivedReport{
		ID:            raw.ID,
		Type:          raw.Type,
		WarehouseID:   raw.WarehouseID,
		WarehouseName: raw.WarehouseName,
		ItemID:        raw.ItemID,
		ItemName:      raw.ItemName,
		Title:         raw.Title,
		PrintedBy:     raw.PrintedBy,
		PrintedAt:     raw.PrintedAt,
		Snapshot:      snap,
	}
	return nil
}

// DecodeSnapshot decodes raw snapshot JSON into the variant selected by
// reportType. An unknown type or an absent snapshot yields a
// *MalformedReportError.
func DecodeSnapshot(reportID string, reportType ReportType, raw json.RawMessage) (ReportSnapshot, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &MalformedReportError{ReportID: reportID, ReportType: reportType, Reason: "snapshot is missing"}
	}
	switch reportType {
	case ReportTypeItem:
		var s ItemReportSnapshot
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, &MalformedReportError{ReportID: reportID, ReportType: reportType, Reason: err.Error()}
		}
		return s, nil
	case ReportTypeWarehouse:
		var s WarehouseReportSnapshot
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, &MalformedReportError{ReportID: reportID, ReportType: reportType, Reason: err.Error()}
		}
		return s, nil
	case ReportTypeTransactions:
		var s TransactionsReportSnapshot
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, &MalformedReportError{ReportID: reportID, ReportType: reportType, Reason: err.Error()}
		}
		return s, nil
	default:
		return nil, &MalformedReportError{ReportID: reportID, ReportType: reportType, Reason: "unknown report type"}
	}
}

// ReprintItem reconstructs a transient item view purely from an ITEM
// snapshot. Quantity comes from the most recent snapshot entry;
// CreatedAt/UpdatedAt derive from the oldest/newest entries. An empty
// ledger falls back to the print timestamp for all three.
func (r *ArchivedReport) ReprintItem() (*Item, error) {
	snap, ok := r.Snapshot.(ItemReportSnapshot)
	if !ok {
		return nil, &MalformedReportError{ReportID: r.ID, ReportType: r.Type, Reason: "item report without a ledger snapshot"}
	}

	ledger := make([]HistoryEntry, len(snap.Ledger))
	copy(ledger, snap.Ledger)
	SortEntriesDesc(ledger)

	item := &Item{
		ID:          r.ItemID,
		WarehouseID: r.WarehouseID,
		Name:        r.ItemName,
		CreatedAt:   r.PrintedAt,
		UpdatedAt:   r.PrintedAt,
		History:     ledger,
	}
	if len(ledger) > 0 {
		item.Quantity = ledger[0].QuantityAfter
		item.UpdatedAt = ledger[0].Timestamp
		item.CreatedAt = ledger[len(ledger)-1].Timestamp
	}
	return item, nil
}

// WarehouseView is the reconstructed display form of a WAREHOUSE report:
// the warehouse identity as printed plus its static item listing.
type WarehouseView struct {
	WarehouseID   string         `json:"warehouse_id"`
	WarehouseName string         `json:"warehouse_name"`
	PrintedAt     time.Time      `json:"printed_at"`
	Items         []ItemQuantity `json:"items"`
}

// ReprintWarehouse replays a WAREHOUSE snapshot as a static list.
func (r *ArchivedReport) ReprintWarehouse() (*WarehouseView, error) {
	snap, ok := r.Snapshot.(WarehouseReportSnapshot)
	if !ok {
		return nil, &MalformedReportError{ReportID: r.ID, ReportType: r.Type, Reason: "warehouse report without an item snapshot"}
	}
	items := make([]ItemQuantity, len(snap.Items))
	copy(items, snap.Items)
	return &WarehouseView{
		WarehouseID:   r.WarehouseID,
		WarehouseName: r.WarehouseName,
		PrintedAt:     r.PrintedAt,
		Items:         items,
	}, nil
}

// ReprintTransactions returns the stored flattened transaction list.
func (r *ArchivedReport) ReprintTransactions() ([]FlattenedHistoryEntry, error) {
	snap, ok := r.Snapshot.(TransactionsReportSnapshot)
	if !ok {
		return nil, &MalformedReportError{ReportID: r.ID, ReportType: r.Type, Reason: "transactions report without an entry snapshot"}
	}
	entries := make([]FlattenedHistoryEntry, len(snap.Entries))
	copy(entries, snap.Entries)
	return entries, nil
}
