package store

import "github.com/rdo34/notebook/internal/model"

// Store defines persistence operations for the full record collection.
type Store interface {
	Load(name string) ([]model.Record, error)
	Save(name string, records []model.Record) error
}
