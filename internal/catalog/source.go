package catalog

import (
	"errors"
	"fmt"
)

// Source names where the artifact lives. DSN wins when both are set.
type Source struct {
	Path string
	DSN  string
}

// Load reads the catalog from src.
func Load(src Source) (*Catalog, error) {
	switch {
	case src.DSN != "":
		db, err := OpenDatabase(src.DSN, false)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		return LoadDatabase(db)
	case src.Path != "":
		return LoadJSON(src.Path)
	default:
		return nil, errors.New("no catalog source configured")
	}
}

// String describes the source for logs without leaking credentials.
func (s Source) String() string {
	if s.DSN != "" {
		if isPostgresDSN(s.DSN) {
			return "postgres"
		}
		return fmt.Sprintf("sqlite:%s", s.DSN)
	}
	return fmt.Sprintf("json:%s", s.Path)
}
