// Development-only maintenance tool: rewrites every primary key to the
// compact sequence 1..N (no gaps) and fixes all foreign keys to match.
//
// The rewrite is destructive, so it is double-guarded: it refuses to run
// unless RENUMBER_CONFIRM=yes is set, and it never runs when APP_ENV is
// "production". Everything happens inside a single transaction.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"vendorcompare/storage"
)

// fkRef names a column in another table pointing at the renumbered table.
type fkRef struct {
	table  string
	column string
}

type target struct {
	table string
	refs  []fkRef
}

// Dependency order: parents before children so mappings exist when the
// children's FK columns are rewritten.
var targets = []target{
	{table: "companies", refs: []fkRef{
		{"vendors", "company_id"},
		{"products", "company_id"},
		{"order_requests", "company_id"},
	}},
	{table: "users", refs: []fkRef{
		{"sessions", "user_id"},
	}},
	{table: "vendors", refs: []fkRef{
		{"quotations", "vendor_id"},
		{"comparison_results", "vendor_id"},
	}},
	{table: "products", refs: []fkRef{
		{"quotations", "product_id"},
		{"order_requests", "product_id"},
	}},
	{table: "quotations", refs: []fkRef{
		{"comparison_results", "quotation_id"},
	}},
	{table: "order_requests", refs: []fkRef{
		{"comparison_results", "order_request_id"},
	}},
	{table: "comparison_results"},
}

func buildMapping(tx *sql.Tx, table string) (map[int64]int64, error) {
	rows, err := tx.Query(fmt.Sprintf("SELECT id FROM %s ORDER BY id", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mapping := make(map[int64]int64)
	var next int64 = 1
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		mapping[id] = next
		next++
	}
	return mapping, rows.Err()
}

// applyMapping rewrites ids in two passes through negative values so the new
// ids never collide with the old ones mid-rewrite.
func applyMapping(tx *sql.Tx, table, column string, mapping map[int64]int64) error {
	for oldID, newID := range mapping {
		if _, err := tx.Exec(
			fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2", table, column, column),
			-newID, oldID,
		); err != nil {
			return err
		}
	}
	for _, newID := range mapping {
		if _, err := tx.Exec(
			fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2", table, column, column),
			newID, -newID,
		); err != nil {
			return err
		}
	}
	return nil
}

func resetSequence(tx *sql.Tx, table string, count int) error {
	// setval with is_called=false makes the next nextval return count+1.
	_, err := tx.Exec(
		fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), $1, $2)", table),
		max(count, 1), count > 0,
	)
	return err
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Report what would change without committing")
	flag.Parse()

	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		fmt.Fprintln(os.Stderr, "Refusing to renumber ids in production")
		os.Exit(1)
	}
	if os.Getenv("RENUMBER_CONFIRM") != "yes" {
		fmt.Fprintln(os.Stderr, "Set RENUMBER_CONFIRM=yes to run this tool")
		os.Exit(1)
	}

	db := storage.InitDB()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("SET CONSTRAINTS ALL DEFERRED"); err != nil {
		log.Fatalf("Failed to defer constraints: %v", err)
	}

	for _, t := range targets {
		mapping, err := buildMapping(tx, t.table)
		if err != nil {
			log.Fatalf("Failed to read %s ids: %v", t.table, err)
		}
		if len(mapping) == 0 {
			fmt.Printf("%-20s no records, skipping\n", t.table)
			continue
		}

		changed := 0
		for oldID, newID := range mapping {
			if oldID != newID {
				changed++
			}
		}
		fmt.Printf("%-20s %d records, %d ids change\n", t.table, len(mapping), changed)

		if err := applyMapping(tx, t.table, "id", mapping); err != nil {
			log.Fatalf("Failed to renumber %s: %v", t.table, err)
		}
		for _, ref := range t.refs {
			if err := applyMapping(tx, ref.table, ref.column, mapping); err != nil {
				log.Fatalf("Failed to rewrite %s.%s: %v", ref.table, ref.column, err)
			}
		}
		if err := resetSequence(tx, t.table, len(mapping)); err != nil {
			log.Fatalf("Failed to reset sequence for %s: %v", t.table, err)
		}
	}

	if *dryRun {
		fmt.Println("Dry run: rolling back")
		return
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	fmt.Println("Renumbering complete")
}
