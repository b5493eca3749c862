package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by services when a warehouse, item, user, or
// archived report does not exist (or is not visible to the caller).
var ErrNotFound = errors.New("not found")

// NegativeStockError rejects a mutation that would drive an item's
// quantity below zero. It carries the available quantity so the caller
// can surface it and let the user correct the input. Raised before any
// write happens.
type NegativeStockError struct {
	ItemID    string
	Available int64
	Requested int64
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("cannot consume %d units: only %d available", e.Requested, e.Available)
}

// MalformedReportError marks an archived report whose stored snapshot
// does not match its report type (e.g. an ITEM report without a ledger
// snapshot). Reprinting such a report fails without affecting the rest
// of the archive listing.
type MalformedReportError struct {
	ReportID   string
	ReportType ReportType
	Reason     string
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("archived report %s (%s) cannot be displayed: %s", e.ReportID, e.ReportType, e.Reason)
}
