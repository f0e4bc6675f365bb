package fortune

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"path"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/singleflight"

	"github.com/meigma/fortune/internal/fortunetype"
	"github.com/meigma/fortune/internal/index"
	"github.com/meigma/fortune/internal/record"
)

// Re-export types from internal/fortunetype for public API.
type (
	// Fortune is a single record returned by a query.
	Fortune = fortunetype.Fortune

	// Category summarizes a loaded category.
	Category = fortunetype.Category
)

// IndexSuffix marks an index file. The paired data file has the same name
// without the suffix.
const IndexSuffix = ".dat"

// minIndexSize is the smallest index file that can hold a header.
const minIndexSize = index.HeaderSize

// Store answers fortune queries over the categories found at load time.
//
// The loaded categories form an immutable snapshot. Queries read the current
// snapshot without locking; Reload replaces it wholesale.
type Store struct {
	provider      Provider
	dir           string
	snap          atomic.Pointer[snapshot]
	reloadGroup   singleflight.Group // zero value is valid
	random        io.Reader
	strictOffsets bool
	logger        *slog.Logger
}

// snapshot is one published set of categories. It is never mutated.
type snapshot struct {
	categories map[string]*record.Category
	names      []string
	digest     digest.Digest
}

func newSnapshot(categories map[string]*record.Category) *snapshot {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s=%s\n", name, categories[name].Digest())
	}
	return &snapshot{
		categories: categories,
		names:      names,
		digest:     digest.FromString(sb.String()),
	}
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Store) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Load discovers the categories under dir and returns a Store serving them.
//
// Every entry of dir ending in ".dat" is an index file; its data file is the
// entry of the same name without the suffix. A category whose files fail
// ValidPair is skipped with a warning. Any other failure aborts the load: a
// file that cannot be read returns ErrResourceNotFound and an index that
// cannot be decoded returns ErrMalformedIndex.
func Load(ctx context.Context, provider Provider, dir string, opts ...Option) (*Store, error) {
	s := &Store{
		provider: provider,
		dir:      dir,
		random:   rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.snap.Store(snap)
	return s, nil
}

// load builds a snapshot from the provider. It runs on a single goroutine
// and shares nothing with the published snapshot.
func (s *Store) load(ctx context.Context) (*snapshot, error) {
	s.log().Debug("looking for index files", "dir", s.dir)
	names, err := s.provider.List(s.dir)
	if err != nil {
		return nil, notFound(s.dir, err)
	}

	categories := make(map[string]*record.Category)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		category, ok := strings.CutSuffix(name, IndexSuffix)
		if !ok {
			continue
		}
		c, ok, err := s.loadCategory(category, name)
		if err != nil {
			return nil, err
		}
		if ok {
			categories[category] = c
		}
	}

	snap := newSnapshot(categories)
	s.log().Info("loaded categories", "dir", s.dir, "categories", snap.names, "digest", snap.digest)
	return snap, nil
}

// loadCategory reads and decodes one category. ok is false when the pair
// failed validation and the category should be skipped.
func (s *Store) loadCategory(category, indexName string) (c *record.Category, ok bool, err error) {
	indexPath := path.Join(s.dir, indexName)
	dataPath := path.Join(s.dir, category)

	indexData, err := s.provider.Read(indexPath)
	if err != nil {
		return nil, false, notFound(indexPath, err)
	}
	data, err := s.provider.Read(dataPath)
	if err != nil {
		return nil, false, notFound(dataPath, err)
	}

	if !ValidPair(data, indexData) {
		s.log().Warn("skipping category with invalid data or index file",
			"category", category, "data", dataPath, "index", indexPath)
		return nil, false, nil
	}

	idx, err := index.Decode(indexData)
	if err != nil {
		return nil, false, fmt.Errorf("load category %s: %w", category, err)
	}
	if s.strictOffsets {
		if err := idx.CheckMonotonic(); err != nil {
			return nil, false, fmt.Errorf("load category %s: %w", category, err)
		}
	}

	c = record.New(category, idx, data)
	s.log().Debug("loaded category", "category", category, "records", c.TotalRecords(), "digest", c.Digest())
	return c, true, nil
}

// notFound ensures a provider error matches ErrResourceNotFound.
func notFound(name string, err error) error {
	if errors.Is(err, ErrResourceNotFound) {
		return err
	}
	return fmt.Errorf("%w: failed to find any resource at path [%s]: %w", ErrResourceNotFound, name, err)
}

// ValidPair reports whether a data and index file are worth decoding: both
// must be present, the data non-empty and the index longer than 23 bytes.
func ValidPair(data, indexData []byte) bool {
	if data == nil || indexData == nil {
		return false
	}
	return len(data) > 0 && len(indexData) >= minIndexSize
}

func (s *Store) current() *snapshot {
	return s.snap.Load()
}

// Dir returns the directory the store was loaded from.
func (s *Store) Dir() string {
	return s.dir
}

// Digest identifies the content of the current snapshot. It changes when a
// reload picks up different categories or data.
func (s *Store) Digest() digest.Digest {
	return s.current().digest
}

// Fortune returns fortune number (1-based) of category.
func (s *Store) Fortune(category string, number int) (Fortune, error) {
	c, ok := s.current().categories[category]
	if !ok {
		return Fortune{}, fmt.Errorf("%w: category %s is not setup", ErrUnknownCategory, category)
	}
	if number < 1 {
		return Fortune{}, fmt.Errorf("%w: cookie number should be positive, got %d", ErrInvalidArgument, number)
	}
	total := c.TotalRecords()
	if uint64(number) > uint64(total) {
		return Fortune{}, fmt.Errorf("%w: category %s only contains %d cookie(s)", ErrOutOfRange, category, total)
	}
	s.log().Debug("looking up fortune", "category", category, "number", number, "records", total)
	return c.Extract(uint32(number - 1)) //nolint:gosec // 1 <= number <= total
}

// Random returns a random fortune from a random category. The category is
// drawn uniformly, regardless of how many records it holds.
func (s *Store) Random() (Fortune, error) {
	snap := s.current()
	if len(snap.names) == 0 {
		return Fortune{}, fmt.Errorf("%w: no categories loaded from %s", ErrUnknownCategory, s.dir)
	}
	i, err := s.intn(len(snap.names))
	if err != nil {
		return Fortune{}, err
	}
	return s.randomFrom(snap.categories[snap.names[i]])
}

// RandomFrom returns a random fortune from category.
func (s *Store) RandomFrom(category string) (Fortune, error) {
	c, ok := s.current().categories[category]
	if !ok {
		return Fortune{}, fmt.Errorf("%w: no fortunes for category [%s] available", ErrUnknownCategory, category)
	}
	return s.randomFrom(c)
}

func (s *Store) randomFrom(c *record.Category) (Fortune, error) {
	total := c.TotalRecords()
	if total == 0 {
		return Fortune{}, fmt.Errorf("%w: category %s contains no cookies", ErrOutOfRange, c.Name())
	}
	n, err := s.intn(int(total))
	if err != nil {
		return Fortune{}, err
	}
	s.log().Debug("selected fortune", "category", c.Name(), "index", n, "records", total)
	return c.Extract(uint32(n)) //nolint:gosec // 0 <= n < total
}

// intn draws a uniform integer in [0, n) from the store's random source.
func (s *Store) intn(n int) (int, error) {
	v, err := rand.Int(s.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("fortune: random draw: %w", err)
	}
	return int(v.Int64()), nil
}

// Category returns the summary of one category.
func (s *Store) Category(name string) (Category, error) {
	c, ok := s.current().categories[name]
	if !ok {
		return Category{}, fmt.Errorf("%w: category %s is not setup", ErrUnknownCategory, name)
	}
	return c.Summary(), nil
}

// Categories returns the summaries of all loaded categories, sorted by name.
func (s *Store) Categories() []Category {
	snap := s.current()
	out := make([]Category, 0, len(snap.names))
	for _, name := range snap.names {
		out = append(out, snap.categories[name].Summary())
	}
	return out
}
