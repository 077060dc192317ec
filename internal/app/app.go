package app

import (
	"cmp"
	"slices"

	appLog "github.com/rdo34/notebook/internal/log"
	"github.com/rdo34/notebook/internal/model"
	"github.com/rdo34/notebook/internal/store"
)

// App holds the in-memory notebook and the store used to persist it.
// Records keep insertion order until Sort is called.
type App struct {
	Store store.Store

	records []model.Record
}

func New(s store.Store) *App {
	return &App{Store: s}
}

// Add appends a record to the end of the notebook.
func (a *App) Add(r model.Record) {
	a.records = append(a.records, r)
	appLog.Debug("record added", "date", r.Date, "time", r.Time)
}

// Len returns the number of records.
func (a *App) Len() int { return len(a.records) }

// Records returns a copy of all records in notebook order.
func (a *App) Records() []model.Record {
	return slices.Clone(a.records)
}

// RecordsForDay returns the records whose date equals date exactly, in
// notebook order. The result is never nil.
func (a *App) RecordsForDay(date string) []model.Record {
	out := make([]model.Record, 0)
	for _, r := range a.records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// Delete removes every record matching the triple and returns how many were
// removed.
func (a *App) Delete(date, time, description string) int {
	before := len(a.records)
	a.records = slices.DeleteFunc(a.records, func(r model.Record) bool {
		return r.Matches(date, time, description)
	})
	removed := before - len(a.records)
	appLog.Debug("records deleted", "date", date, "time", time, "removed", removed)
	return removed
}

// Sort orders records by date, then time, using plain string comparison.
// Records with equal keys keep their relative order.
func (a *App) Sort() {
	slices.SortStableFunc(a.records, func(x, y model.Record) int {
		if c := cmp.Compare(x.Date, y.Date); c != 0 {
			return c
		}
		return cmp.Compare(x.Time, y.Time)
	})
}

// ReplaceAll discards the notebook and replaces it with records.
func (a *App) ReplaceAll(records []model.Record) {
	a.records = slices.Clone(records)
}

// Save writes the notebook to name. Errors are returned for the front-end
// to report.
func (a *App) Save(name string) error {
	if err := a.Store.Save(name, a.records); err != nil {
		appLog.Debug("save failed", "path", name, "err", err)
		return err
	}
	appLog.Info("notebook saved", "path", name, "count", len(a.records))
	return nil
}

// Load replaces the notebook with the contents of name. On error the
// notebook is left as it was.
func (a *App) Load(name string) error {
	records, err := a.Store.Load(name)
	if err != nil {
		appLog.Debug("load failed", "path", name, "err", err)
		return err
	}
	a.ReplaceAll(records)
	appLog.Info("notebook loaded", "path", name, "count", len(records))
	return nil
}
