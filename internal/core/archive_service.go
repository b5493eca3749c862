package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveService is the archive snapshot store: it persists immutable
// copies of printed reports and lists them back, most recent first.
// Reconstruction of views from a stored report is pure and lives on
// ArchivedReport itself (ReprintItem, ReprintWarehouse,
// ReprintTransactions).
type ArchiveService interface {
	// ArchiveReport stores the report and returns it with its assigned id
	// and print timestamp. The snapshot must match the report type.
	ArchiveReport(ctx context.Context, report *ArchivedReport) (*ArchivedReport, error)
	ListArchivedReports(ctx context.Context) ([]ArchivedReport, error)
	GetArchivedReport(ctx context.Context, id string) (*ArchivedReport, error)
}

type archiveService struct {
	pool *pgxpool.Pool
}

// NewArchiveService constructs an ArchiveService backed by PostgreSQL.
func NewArchiveService(pool *pgxpool.Pool) ArchiveService {
	return &archiveService{pool: pool}
}

func (s *archiveService) ArchiveReport(ctx context.Context, report *ArchivedReport) (*ArchivedReport, error) {
	if report.Snapshot == nil {
		return nil, &MalformedReportError{ReportID: report.ID, ReportType: report.Type, Reason: "snapshot is missing"}
	}
	if got := report.Snapshot.reportType(); got != report.Type {
		return nil, &MalformedReportError{
			ReportID:   report.ID,
			ReportType: report.Type,
			Reason:     fmt.Sprintf("snapshot shape belongs to a %s report", got),
		}
	}

	snapshot, err := json.Marshal(report.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report snapshot: %w", err)
	}
	printedAt := report.PrintedAt
	if printedAt.IsZero() {
		printedAt = time.Now().UTC()
	}

	stored := *report
	stored.PrintedAt = printedAt
	err = s.pool.QueryRow(ctx, `
		INSERT INTO archived_reports
			(report_type, warehouse_id, warehouse_name, item_id, item_name, title, printed_by, printed_at, snapshot)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
		RETURNING id
	`, report.Type, report.WarehouseID, report.WarehouseName, report.ItemID, report.ItemName,
		report.Title, report.PrintedBy, printedAt, snapshot).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to store archived report: %w", err)
	}
	return &stored, nil
}

func (s *archiveService) ListArchivedReports(ctx context.Context) ([]ArchivedReport, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, report_type, COALESCE(warehouse_id::text, ''), warehouse_name,
		       COALESCE(item_id::text, ''), item_name, title, printed_by, printed_at, snapshot
		FROM archived_reports
		ORDER BY printed_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived reports: %w", err)
	}
	defer rows.Close()

	var reports []ArchivedReport
	for rows.Next() {
		r, err := scanArchivedReport(rows)
		var malformed *MalformedReportError
		if errors.As(err, &malformed) {
			// A report whose snapshot cannot be decoded is listed with
			// its header only; reprinting it reports the failure. It must
			// not take the rest of the archive down with it.
			log.Printf("archived report %s: %v", malformed.ReportID, err)
		} else if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

func (s *archiveService) GetArchivedReport(ctx context.Context, id string) (*ArchivedReport, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, report_type, COALESCE(warehouse_id::text, ''), warehouse_name,
		       COALESCE(item_id::text, ''), item_name, title, printed_by, printed_at, snapshot
		FROM archived_reports
		WHERE id = $1
	`, id)
	r, err := scanArchivedReport(row)
	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("archived report %s: %w", id, ErrNotFound)
	}
	return r, err
}

// scanArchivedReport decodes a stored report row. A snapshot that does
// not decode for its report type surfaces as *MalformedReportError so
// the caller can degrade that one report instead of failing the view.
func scanArchivedReport(row pgx.Row) (*ArchivedReport, error) {
	r := &ArchivedReport{}
	var snapshot []byte
	err := row.Scan(&r.ID, &r.Type, &r.WarehouseID, &r.WarehouseName,
		&r.ItemID, &r.ItemName, &r.Title, &r.PrintedBy, &r.PrintedAt, &snapshot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan archived report: %w", err)
	}
	snap, err := DecodeSnapshot(r.ID, r.Type, snapshot)
	if err != nil {
		// Header is still usable; the caller decides whether a malformed
		// snapshot degrades or fails.
		return r, err
	}
	r.Snapshot = snap
	return r, nil
}
