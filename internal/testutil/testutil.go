// Package testutil builds fortune data and index fixtures for tests.
package testutil

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/meigma/fortune/internal/fortunetype"
	"github.com/meigma/fortune/internal/index"
)

// BuildData joins records into a data file, terminating each one with
// "\n<delim>\n".
func BuildData(records []string, delim byte) []byte {
	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(r)
		sb.WriteByte('\n')
		sb.WriteByte(delim)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// BuildIndex returns the encoded index for a data file or fails the test.
func BuildIndex(tb testing.TB, data []byte, delim byte) []byte {
	tb.Helper()
	idx, err := index.Build(data, delim)
	if err != nil {
		tb.Fatalf("build index: %v", err)
	}
	return idx.Encode()
}

// CategoryFS returns an in-memory tree holding a data file and an index
// file for every category under dir.
func CategoryFS(tb testing.TB, dir string, categories map[string][]string) fstest.MapFS {
	tb.Helper()
	fsys := fstest.MapFS{}
	for name, records := range categories {
		data := BuildData(records, index.DefaultDelimiter)
		fsys[path.Join(dir, name)] = &fstest.MapFile{Data: data, Mode: 0o644}
		fsys[path.Join(dir, name+".dat")] = &fstest.MapFile{Data: BuildIndex(tb, data, index.DefaultDelimiter), Mode: 0o644}
	}
	return fsys
}

// MockProvider is an in-memory resource provider with injectable failures.
// It is safe for concurrent use.
type MockProvider struct {
	mu       sync.Mutex
	files    map[string][]byte
	failures map[string]error
	reads    map[string]int
}

// NewMockProvider returns an empty provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		files:    make(map[string][]byte),
		failures: make(map[string]error),
		reads:    make(map[string]int),
	}
}

// Put stores content at name, replacing any previous content.
func (p *MockProvider) Put(name string, content []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[name] = content
}

// PutCategory stores the data and index files for a category under dir.
func (p *MockProvider) PutCategory(tb testing.TB, dir, name string, records []string) {
	tb.Helper()
	data := BuildData(records, index.DefaultDelimiter)
	p.Put(path.Join(dir, name), data)
	p.Put(path.Join(dir, name+".dat"), BuildIndex(tb, data, index.DefaultDelimiter))
}

// Remove deletes name.
func (p *MockProvider) Remove(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.files, name)
}

// Fail makes every access to name return err.
func (p *MockProvider) Fail(name string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[name] = err
}

// Reads returns how many times name was read.
func (p *MockProvider) Reads(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads[name]
}

// List returns the sorted base names of entries directly under dir.
func (p *MockProvider) List(dir string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.failures[dir]; ok {
		return nil, fmt.Errorf("%w: [%s]: %w", fortunetype.ErrResourceNotFound, dir, err)
	}
	var names []string
	for name := range p.files {
		if path.Dir(name) == dir {
			names = append(names, path.Base(name))
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: [%s]", fortunetype.ErrResourceNotFound, dir)
	}
	slices.Sort(names)
	return names, nil
}

// Read returns the content stored at name.
func (p *MockProvider) Read(name string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reads[name]++
	if err, ok := p.failures[name]; ok {
		return nil, fmt.Errorf("%w: [%s]: %w", fortunetype.ErrResourceNotFound, name, err)
	}
	content, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: [%s]", fortunetype.ErrResourceNotFound, name)
	}
	return content, nil
}
