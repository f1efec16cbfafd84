package steplib

import (
	"fmt"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/tomatool/basil"
	"github.com/tomatool/basil/feature"
)

// SQLSteps returns database steps bound to the named resource.
func SQLSteps(name string) *basil.Registry[World] {
	r := basil.NewRegistry[World]()

	r.WhenPattern(fmt.Sprintf(`^I execute SQL on "%s":$`, name),
		func(w *World, _ []string, step *feature.Step) error {
			db, err := w.db(name)
			if err != nil {
				return err
			}
			if _, err := db.Exec(step.DocString); err != nil {
				return fmt.Errorf("executing SQL: %w", err)
			}
			return nil
		})

	r.ThenPattern(fmt.Sprintf(`^"%s" table "([^"]*)" should have (\d+) rows$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			table, want := captures[1], captures[2]
			wantCount, err := strconv.Atoi(want)
			if err != nil {
				return fmt.Errorf("invalid row count %q: %w", want, err)
			}
			got, err := w.countRows(name, table)
			if err != nil {
				return err
			}
			if got != wantCount {
				return fmt.Errorf("table %q has %d rows, expected %d", table, got, wantCount)
			}
			return nil
		})

	r.ThenPattern(fmt.Sprintf(`^"%s" table "([^"]*)" should be empty$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			table := captures[1]
			got, err := w.countRows(name, table)
			if err != nil {
				return err
			}
			if got != 0 {
				return fmt.Errorf("table %q has %d rows, expected none", table, got)
			}
			return nil
		})

	return r
}

func (w *World) countRows(name, table string) (int, error) {
	db, err := w.db(name)
	if err != nil {
		return 0, err
	}
	var count int
	// Table names cannot be placeholders; they come from the feature
	// file, which is trusted test input.
	row := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %q`, table))
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting rows in %q: %w", table, err)
	}
	return count, nil
}
