package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"

	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/recordtype"
)

// ErrNotFound is returned when a record or record type does not exist.
var ErrNotFound = errors.New("store: not found")

// Persistence defines the persistence contract for records and record types.
type Persistence interface {
	Get(ctx context.Context, id string) (*record.Record, error)
	ListAll(ctx context.Context) []*record.Record
	List(ctx context.Context, category string) []*record.Record
	RecentIDs(ctx context.Context, limit int) ([]string, error)
	Categories(ctx context.Context, prefix string) []string
	EnsureCategory(category string) error
	Store(r *record.Record) error
	Delete(ctx context.Context, id string) error

	RecordType(id string) (recordtype.Type, error)
	RecordTypes() ([]recordtype.Type, error)
	SaveRecordType(t recordtype.Type) error
	DeleteRecordType(id string) error

	Watch(ctx context.Context) (<-chan Event, error)
}

// Option configures the disk persistence.
type Option func(*persistence)

// WithLogger sets the logger used for unreadable keys and watcher errors.
func WithLogger(l zerolog.Logger) Option {
	return func(p *persistence) {
		p.log = l
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, index: make(map[string]string)}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      zerolog.Logger

	// index maps record ids to diskv keys. It is filled by listings and
	// writes; a miss falls back to walking every key.
	indexMu sync.Mutex
	index   map[string]string

	typesMu sync.Mutex
}

func (p *persistence) remember(key string) {
	p.indexMu.Lock()
	p.index[keyToPathTransform(key).FileName] = key
	p.indexMu.Unlock()
}

func (p *persistence) forget(id string) {
	p.indexMu.Lock()
	delete(p.index, id)
	p.indexMu.Unlock()
}

func (p *persistence) indexed(id string) (string, bool) {
	p.indexMu.Lock()
	key, ok := p.index[id]
	p.indexMu.Unlock()
	if !ok {
		return "", false
	}
	// The diskv cache can hold keys whose files are already gone.
	if _, err := os.Stat(p.pathFor(key)); err != nil {
		p.forget(id)
		return "", false
	}
	return key, true
}

func (p *persistence) pathFor(key string) string {
	pk := keyToPathTransform(key)
	parts := append([]string{p.basePath}, pk.Path...)
	return filepath.Join(append(parts, pk.FileName)...)
}

func (p *persistence) read(key string) (*record.Record, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	r := &record.Record{}
	if err := json.Unmarshal(val, r); err != nil {
		return nil, err
	}
	if r.Schema == "" {
		r.Schema = record.CurrentSchema
	}
	pk := keyToPathTransform(key)
	r.ID = pk.FileName
	return r, nil
}

// keys yields record keys, skipping the catalog files at the store root.
func (p *persistence) keys(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for key := range p.d.Keys(ctx.Done()) {
			if isMetaKey(key) {
				continue
			}
			select {
			case out <- key:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (p *persistence) readAll(ctx context.Context, match func(pk *diskv.PathKey) bool) []*record.Record {
	all := make([]*record.Record, 0)
	for key := range p.keys(ctx) {
		p.remember(key)
		if match != nil && !match(keyToPathTransform(key)) {
			continue
		}
		r, err := p.read(key)
		if err != nil {
			p.log.Warn().Str("key", key).Err(err).Msg("skipping unreadable record")
			continue
		}
		all = append(all, r)
	}
	sortRecords(all)
	return all
}

func (p *persistence) ListAll(ctx context.Context) []*record.Record {
	return p.readAll(ctx, nil)
}

func (p *persistence) List(ctx context.Context, category string) []*record.Record {
	ck := toCategory(category)
	return p.readAll(ctx, func(pk *diskv.PathKey) bool {
		return pk.Path[0] == ck
	})
}

func (p *persistence) keyFor(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if key, ok := p.indexed(id); ok {
		return key, nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	found := ""
	for key := range p.keys(ctx) {
		p.remember(key)
		if found == "" && keyToPathTransform(key).FileName == id {
			found = key
		}
	}
	if found != "" {
		return found, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: record %s", ErrNotFound, id)
}

func (p *persistence) Get(ctx context.Context, id string) (*record.Record, error) {
	key, err := p.keyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := p.read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", id, err)
	}
	return r, nil
}

// RecentIDs returns up to limit record ids, newest first.
func (p *persistence) RecentIDs(ctx context.Context, limit int) ([]string, error) {
	all := p.ListAll(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(ids) == limit {
			break
		}
		ids = append(ids, all[i].ID)
	}
	return ids, nil
}

func (p *persistence) Store(r *record.Record) error {
	if r == nil {
		return errors.New("store: nil record")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("store: category required")
	}
	if r.Schema == "" {
		r.Schema = record.CurrentSchema
	}
	if r.Created.IsZero() {
		r.Created = record.Timestamp{Time: time.Now()}
	}
	if r.ID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("store: generate id: %w", err)
		}
		r.ID = id
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	key := toKey(r)
	if err := p.d.Write(key, data); err != nil {
		return err
	}
	p.remember(key)
	return nil
}

func (p *persistence) Delete(ctx context.Context, id string) error {
	key, err := p.keyFor(ctx, id)
	if err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil {
		return err
	}
	p.forget(keyToPathTransform(key).FileName)
	return nil
}

// Categories lists category names with the given prefix. A category exists
// once it has a directory, either from EnsureCategory or a stored record.
func (p *persistence) Categories(ctx context.Context, prefix string) []string {
	entries, err := os.ReadDir(p.basePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			p.log.Warn().Err(err).Msg("store: list categories")
		}
		return []string{}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		if !e.IsDir() {
			continue
		}
		name, ok := fromCategory(e.Name())
		if !ok {
			continue
		}
		if prefix == "" || strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (p *persistence) EnsureCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: category name required")
	}
	if err := os.MkdirAll(filepath.Join(p.basePath, toCategory(name)), 0o755); err != nil {
		return fmt.Errorf("store: ensure category directory: %w", err)
	}
	return nil
}

const (
	layoutISO     = "2006-01-02"
	typesFile     = ".types.json"
	metaKeyPrefix = "."
)

func isMetaKey(key string) bool {
	pk := keyToPathTransform(key)
	return len(pk.Path) == 0 || pk.Path[0] == "" || strings.HasPrefix(pk.FileName, metaKeyPrefix)
}

func sortRecords(records []*record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		left := records[i]
		right := records[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return true
		case rt.IsZero():
			return false
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `category-date-id`
func toKey(r *record.Record) string {
	then := r.Created.Format(layoutISO)
	return fmt.Sprintf("%s-%s-%s", toCategory(r.Category), then, r.ID)
}

// newID returns a time ordered UUID without dashes, which diskv keys use as
// separators.
func newID() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(u.String(), "-", ""), nil
}

// Category names are hex encoded: the result never contains a path
// separator or the key separator.
func toCategory(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromCategory(s string) (string, bool) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 {
		return "", false
	}
	return string(b), true
}
