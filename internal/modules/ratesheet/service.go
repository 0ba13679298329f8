// README: Rate sheet service; decodes an uploaded sheet and installs the resulting table.
package ratesheet

import (
	"context"
	"fmt"
	"io"
	"log"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Load decodes the workbook, picks the rate sheet and replaces the current
// table. On a decode failure the previously loaded table stays in place.
func (s *Service) Load(ctx context.Context, name string, r io.Reader) (*RateTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheets, err := Decode(name, r)
	if err != nil {
		return nil, err
	}
	return s.LoadSheets(sheets)
}

// LoadSheets installs a table built from already-decoded sheets.
func (s *Service) LoadSheets(sheets []Sheet) (*RateTable, error) {
	sheet, mapping, ok := SelectSheet(sheets)
	if !ok {
		return nil, ErrEmptyWorkbook
	}
	t := BuildFromSheet(sheet, mapping)
	s.store.Replace(t)
	log.Printf("rate table loaded: sheet=%q locations=%d bound_fields=%d", t.SheetName(), t.Len(), len(t.Mapping()))
	return t, nil
}

func (s *Service) Current() *RateTable {
	return s.store.Current()
}

// Lookup returns the record for location from the current table.
func (s *Service) Lookup(location string) (RateRecord, error) {
	t := s.store.Current()
	if t == nil {
		return RateRecord{}, ErrNotLoaded
	}
	rec, ok := t.Lookup(location)
	if !ok {
		return RateRecord{}, fmt.Errorf("%w: %q", ErrLocationNotFound, location)
	}
	return rec, nil
}
