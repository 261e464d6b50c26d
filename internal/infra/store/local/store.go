// Package local keeps every record kind in memory, optionally mirrored to a
// single JSON file so that data survives restarts.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/domain/catalog"
	"mwd-interiors/quotedesk/internal/domain/quote"
	"mwd-interiors/quotedesk/internal/domain/repository"
)

type record[T any] interface {
	*T
	repository.Entity
	SetID(id int64)
}

// Store owns the four collections. All of them share one lock and one
// file; every successful write rewrites the file.
type Store struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger

	Customers   *Collection[catalog.Customer, *catalog.Customer]
	Products    *Collection[catalog.Product, *catalog.Product]
	Salespeople *Collection[catalog.Salesperson, *catalog.Salesperson]
	Quotations  *Collection[quote.Quotation, *quote.Quotation]
}

type snapshot struct {
	Customers   []catalog.Customer    `json:"customers"`
	Products    []catalog.Product     `json:"products"`
	Salespeople []catalog.Salesperson `json:"salespeople"`
	Quotations  []quote.Quotation     `json:"quotations"`
}

// NewMemory returns a store that is never written to disk.
func NewMemory(log *zap.Logger) *Store {
	s, _ := Open("", log)
	return s
}

// Open loads path when it exists. An empty path keeps everything in memory.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{path: path, log: log}
	s.Customers = newCollection[catalog.Customer](s)
	s.Products = newCollection[catalog.Product](s)
	s.Salespeople = newCollection[catalog.Salesperson](s)
	s.Quotations = newCollection[quote.Quotation](s)

	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info("local store: starting empty", zap.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", path, err)
	}
	s.Customers.load(snap.Customers)
	s.Products.load(snap.Products)
	s.Salespeople.load(snap.Salespeople)
	s.Quotations.load(snap.Quotations)
	log.Info("local store: loaded",
		zap.String("path", path),
		zap.Int("customers", len(snap.Customers)),
		zap.Int("products", len(snap.Products)),
		zap.Int("salespeople", len(snap.Salespeople)),
		zap.Int("quotations", len(snap.Quotations)),
	)
	return s, nil
}

// persistLocked writes the whole store through a temp file and rename.
// The caller holds s.mu.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	snap := snapshot{
		Customers:   s.Customers.items,
		Products:    s.Products.items,
		Salespeople: s.Salespeople.items,
		Quotations:  s.Quotations.items,
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".quotedesk-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Collection is one record kind held in id order.
type Collection[T any, P record[T]] struct {
	s      *Store
	items  []T
	nextID int64
}

func newCollection[T any, P record[T]](s *Store) *Collection[T, P] {
	return &Collection[T, P]{s: s, items: []T{}, nextID: 1}
}

func (c *Collection[T, P]) load(items []T) {
	c.items = append([]T{}, items...)
	sort.Slice(c.items, func(i, j int) bool { return P(&c.items[i]).GetID() < P(&c.items[j]).GetID() })
	for i := range c.items {
		c.nextID = max(c.nextID, P(&c.items[i]).GetID()+1)
	}
}

func (c *Collection[T, P]) Create(ctx context.Context, v T) (T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	P(&v).SetID(c.nextID)
	c.items = append(c.items, detach(v))
	if err := c.s.persistLocked(); err != nil {
		c.items = c.items[:len(c.items)-1]
		var zero T
		return zero, err
	}
	c.nextID++
	return v, nil
}

func (c *Collection[T, P]) Get(ctx context.Context, id int64) (T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	i, ok := c.index(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %d", repository.ErrNotFound, id)
	}
	return detach(c.items[i]), nil
}

func (c *Collection[T, P]) Update(ctx context.Context, v T) (T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	id := P(&v).GetID()
	i, ok := c.index(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %d", repository.ErrNotFound, id)
	}
	prev := c.items[i]
	c.items[i] = detach(v)
	if err := c.s.persistLocked(); err != nil {
		c.items[i] = prev
		var zero T
		return zero, err
	}
	return v, nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, id int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	i, ok := c.index(id)
	if !ok {
		return fmt.Errorf("%w: id %d", repository.ErrNotFound, id)
	}
	prev := c.items
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	if err := c.s.persistLocked(); err != nil {
		c.items = prev
		return err
	}
	return nil
}

func (c *Collection[T, P]) List(ctx context.Context) ([]T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := make([]T, len(c.items))
	for i := range c.items {
		out[i] = detach(c.items[i])
	}
	return out, nil
}

func (c *Collection[T, P]) index(id int64) (int, bool) {
	i := sort.Search(len(c.items), func(i int) bool { return P(&c.items[i]).GetID() >= id })
	if i < len(c.items) && P(&c.items[i]).GetID() == id {
		return i, true
	}
	return 0, false
}

// detach deep-copies records that carry pointers or slices, so callers
// never share memory with the store.
func detach[T any](v T) T {
	if c, ok := any(v).(interface{ Clone() T }); ok {
		return c.Clone()
	}
	return v
}
