package fortune

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Provider gives the store read access to category files.
//
// Paths are slash-separated. Implementations must wrap every failure so that
// it matches ErrResourceNotFound.
type Provider interface {
	// List returns the names of the entries directly under dir.
	List(dir string) ([]string, error)

	// Read returns the full content of the named file.
	Read(name string) ([]byte, error)
}

// fsProvider reads resources from an fs.FS.
type fsProvider struct {
	fsys fs.FS
}

// FSProvider returns a Provider backed by fsys, such as an embed.FS.
// Paths are passed through NormalizePath, so "/fortune" and "fortune" name
// the same directory.
func FSProvider(fsys fs.FS) Provider {
	return &fsProvider{fsys: fsys}
}

// DirProvider returns a Provider reading from the OS directory root.
func DirProvider(root string) Provider {
	return &fsProvider{fsys: os.DirFS(root)}
}

func (p *fsProvider) List(dir string) ([]string, error) {
	entries, err := fs.ReadDir(p.fsys, NormalizePath(dir))
	if err != nil {
		return nil, notFound(dir, err)
	}
	return entryNames(entries), nil
}

func (p *fsProvider) Read(name string) ([]byte, error) {
	content, err := fs.ReadFile(p.fsys, NormalizePath(name))
	if err != nil {
		return nil, notFound(name, err)
	}
	return content, nil
}

// osProvider reads resources through plain OS paths.
type osProvider struct{}

// OSProvider returns a Provider that resolves paths against the OS file
// system as given, absolute or relative to the working directory.
func OSProvider() Provider {
	return osProvider{}
}

func (osProvider) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.FromSlash(dir))
	if err != nil {
		return nil, notFound(dir, err)
	}
	return entryNames(entries), nil
}

func (osProvider) Read(name string) ([]byte, error) {
	content, err := os.ReadFile(filepath.FromSlash(name)) //nolint:gosec // reading user-configured paths is the point
	if err != nil {
		return nil, notFound(name, err)
	}
	return content, nil
}

func entryNames(entries []fs.DirEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

// chainProvider tries each provider in order.
type chainProvider struct {
	providers []Provider
}

// ChainProvider returns a Provider that serves each call from the first of
// providers that succeeds. A typical chain puts the OS file system ahead of
// an embedded fallback.
func ChainProvider(providers ...Provider) Provider {
	return &chainProvider{providers: providers}
}

func (c *chainProvider) List(dir string) ([]string, error) {
	errs := make([]error, 0, len(c.providers))
	for _, p := range c.providers {
		names, err := p.List(dir)
		if err == nil {
			return names, nil
		}
		errs = append(errs, err)
	}
	return nil, c.failed(dir, errs)
}

func (c *chainProvider) Read(name string) ([]byte, error) {
	errs := make([]error, 0, len(c.providers))
	for _, p := range c.providers {
		content, err := p.Read(name)
		if err == nil {
			return content, nil
		}
		errs = append(errs, err)
	}
	return nil, c.failed(name, errs)
}

func (c *chainProvider) failed(name string, errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("%w: failed to find any resource at path [%s]: no providers", ErrResourceNotFound, name)
	}
	return notFound(name, errors.Join(errs...))
}
