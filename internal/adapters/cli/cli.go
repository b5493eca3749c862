// Package cli is the one-shot command adapter over the ApplicationService.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/enjleezdev/theappez/internal/app"
	"github.com/enjleezdev/theappez/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "warehouses", "wh":
		result, err := svc.ListWarehouses(ctx, hasFlag(args, "--all"))
		if err != nil {
			log.Fatalf("Failed to list warehouses: %v", err)
		}
		printWarehouses(result)

	case "items", "it":
		if len(args) < 2 {
			log.Fatal("Usage: app items <warehouse-id>")
		}
		result, err := svc.ListItems(ctx, args[1], hasFlag(args, "--all"))
		if err != nil {
			log.Fatalf("Failed to list items: %v", err)
		}
		printItems(result)

	case "item":
		if len(args) < 2 {
			log.Fatal("Usage: app item <item-id>")
		}
		result, err := svc.GetItem(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to get item: %v", err)
		}
		printItemLedger(result.Item)

	case "report", "rep":
		result, err := svc.GetTransactionReport(ctx, filterFromArgs(args[1:]))
		if err != nil {
			log.Fatalf("Failed to build report: %v", err)
		}
		printReport(result)

	case "archive", "arc":
		result, err := svc.ListArchivedReports(ctx)
		if err != nil {
			log.Fatalf("Failed to list archive: %v", err)
		}
		printArchive(result)

	case "reprint":
		if len(args) < 2 {
			log.Fatal("Usage: app reprint <report-id>")
		}
		result, err := svc.ReprintReport(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to reprint report: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: warehouses, items, item, report, archive, reprint", args[0])
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// filterFromArgs parses --warehouse, --item, --from, --to flag pairs.
func filterFromArgs(args []string) core.ReportFilter {
	var f core.ReportFilter
	for i := 0; i+1 < len(args); i += 2 {
		switch args[i] {
		case "--warehouse":
			f.WarehouseID = args[i+1]
		case "--item":
			f.ItemID = args[i+1]
		case "--from":
			f.StartDate = args[i+1]
		case "--to":
			f.EndDate = args[i+1]
		}
	}
	return f
}

func printWarehouses(result *app.WarehouseListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-74s\n", "WAREHOUSES")
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-38s %-25s %-10s\n", "ID", "NAME", "STATE")
	fmt.Println(strings.Repeat("-", 78))
	for _, w := range result.Warehouses {
		state := "active"
		if w.IsArchived {
			state = "archived"
		}
		fmt.Printf("  %-38s %-25s %-10s\n", w.ID, w.Name, state)
	}
	fmt.Println(strings.Repeat("=", 78))
}

func printItems(result *app.ItemListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-38s %-20s %8s  %s\n", "ID", "NAME", "QTY", "LOCATION")
	fmt.Println(strings.Repeat("-", 78))
	for _, it := range result.Items {
		fmt.Printf("  %-38s %-20s %8d  %s\n", it.ID, it.Name, it.Quantity, it.Location)
	}
	fmt.Println(strings.Repeat("=", 78))
}

func printItemLedger(item *core.Item) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %s — %d on hand\n", item.Name, item.Quantity)
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-20s %-15s %8s %8s %8s\n", "DATE", "TYPE", "CHANGE", "BEFORE", "AFTER")
	fmt.Println(strings.Repeat("-", 78))
	for _, e := range item.History {
		fmt.Printf("  %-20s %-15s %+8d %8d %8d\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Change, e.QuantityBefore, e.QuantityAfter)
	}
	fmt.Println(strings.Repeat("=", 78))
}

func printReport(report *core.TransactionReport) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 94))
	fmt.Printf("  %s\n", report.Title)
	fmt.Println(strings.Repeat("=", 94))
	fmt.Printf("  %-20s %-18s %-18s %-15s %+8s\n", "DATE", "WAREHOUSE", "ITEM", "TYPE", "CHANGE")
	fmt.Println(strings.Repeat("-", 94))
	for _, e := range report.Entries {
		fmt.Printf("  %-20s %-18s %-18s %-15s %+8d\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.WarehouseName, e.ItemName, e.Type, e.Change)
	}
	fmt.Println(strings.Repeat("=", 94))
}

func printArchive(result *app.ArchiveListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 94))
	fmt.Printf("  %-74s\n", "ARCHIVED REPORTS")
	fmt.Println(strings.Repeat("=", 94))
	fmt.Printf("  %-38s %-14s %-20s %s\n", "ID", "TYPE", "PRINTED", "TITLE")
	fmt.Println(strings.Repeat("-", 94))
	for _, r := range result.Reports {
		fmt.Printf("  %-38s %-14s %-20s %s\n",
			r.ID, r.Type, r.PrintedAt.Format("2006-01-02 15:04"), r.Title)
	}
	fmt.Println(strings.Repeat("=", 94))
}
