package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"tableflip.dev/massadd/pkg/recordtype"
)

func (p *persistence) typesPath() string {
	return filepath.Join(p.basePath, typesFile)
}

// loadTypes reads the record type catalog. A store without a catalog file
// has the built in types.
func (p *persistence) loadTypes() (map[string]recordtype.Type, error) {
	data, err := os.ReadFile(p.typesPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return indexTypes(recordtype.Builtins()), nil
		}
		return nil, err
	}
	list, err := recordtype.UnmarshalList(data)
	if err != nil {
		return nil, err
	}
	return indexTypes(list), nil
}

func indexTypes(list []recordtype.Type) map[string]recordtype.Type {
	idx := make(map[string]recordtype.Type, len(list))
	for _, t := range list {
		if t.ID == "" {
			continue
		}
		idx[t.ID] = t
	}
	return idx
}

func (p *persistence) saveTypes(idx map[string]recordtype.Type) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return err
	}
	list := make([]recordtype.Type, 0, len(idx))
	for _, t := range idx {
		list = append(list, t)
	}
	data, err := recordtype.MarshalList(list)
	if err != nil {
		return err
	}
	path := p.typesPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (p *persistence) RecordType(id string) (recordtype.Type, error) {
	p.typesMu.Lock()
	defer p.typesMu.Unlock()
	idx, err := p.loadTypes()
	if err != nil {
		return recordtype.Type{}, fmt.Errorf("store: load record types: %w", err)
	}
	t, ok := idx[recordtype.NormalizeID(id)]
	if !ok {
		return recordtype.Type{}, fmt.Errorf("%w: record type %q", ErrNotFound, id)
	}
	return t.Clone(), nil
}

// RecordTypes returns the catalog sorted by id.
func (p *persistence) RecordTypes() ([]recordtype.Type, error) {
	p.typesMu.Lock()
	defer p.typesMu.Unlock()
	idx, err := p.loadTypes()
	if err != nil {
		return nil, fmt.Errorf("store: load record types: %w", err)
	}
	return sortedTypes(idx), nil
}

func (p *persistence) SaveRecordType(t recordtype.Type) error {
	t.ID = recordtype.NormalizeID(t.ID)
	if err := t.Validate(); err != nil {
		return err
	}
	p.typesMu.Lock()
	defer p.typesMu.Unlock()
	idx, err := p.loadTypes()
	if err != nil {
		return fmt.Errorf("store: load record types: %w", err)
	}
	idx[t.ID] = t.Clone()
	if err := p.saveTypes(idx); err != nil {
		return fmt.Errorf("store: save record types: %w", err)
	}
	return nil
}

func (p *persistence) DeleteRecordType(id string) error {
	id = recordtype.NormalizeID(id)
	p.typesMu.Lock()
	defer p.typesMu.Unlock()
	idx, err := p.loadTypes()
	if err != nil {
		return fmt.Errorf("store: load record types: %w", err)
	}
	if _, ok := idx[id]; !ok {
		return fmt.Errorf("%w: record type %q", ErrNotFound, id)
	}
	delete(idx, id)
	if err := p.saveTypes(idx); err != nil {
		return fmt.Errorf("store: save record types: %w", err)
	}
	return nil
}

func sortedTypes(idx map[string]recordtype.Type) []recordtype.Type {
	list := make([]recordtype.Type, 0, len(idx))
	for _, t := range idx {
		list = append(list, t.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
