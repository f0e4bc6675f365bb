package fortune

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix marks a zstd-compressed resource.
const CompressedSuffix = ".zst"

// DefaultMaxDecoderMemory is the default limit on the decoded size of a
// compressed resource (256MB).
const DefaultMaxDecoderMemory = 256 << 20

// DecompressOption configures a decompressing provider.
type DecompressOption func(*decompressingProvider)

// WithMaxDecoderMemory limits the decoded size of each compressed resource.
// Set limit to 0 to disable the limit.
func WithMaxDecoderMemory(limit uint64) DecompressOption {
	return func(p *decompressingProvider) {
		p.maxDecoderMemory = limit
	}
}

// WithDecoderLowmem sets whether zstd decoders use low-memory mode (default: false).
func WithDecoderLowmem(enabled bool) DecompressOption {
	return func(p *decompressingProvider) {
		p.decoderLowmem = enabled
	}
}

// decompressingProvider serves "name.zst" in place of a missing "name".
type decompressingProvider struct {
	base             Provider
	maxDecoderMemory uint64
	decoderLowmem    bool
	pool             sync.Pool
}

// NewDecompressingProvider wraps base so that category files may be stored
// zstd-compressed. List reports "art.zst" as "art" and "art.dat.zst" as
// "art.dat"; Read falls back to the ".zst" variant when the plain file is
// missing and returns the decoded content.
func NewDecompressingProvider(base Provider, opts ...DecompressOption) Provider {
	p := &decompressingProvider{
		base:             base,
		maxDecoderMemory: DefaultMaxDecoderMemory,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *decompressingProvider) List(dir string) ([]string, error) {
	names, err := p.base.List(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, strings.TrimSuffix(name, CompressedSuffix))
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (p *decompressingProvider) Read(name string) ([]byte, error) {
	content, err := p.base.Read(name)
	if err == nil || !errors.Is(err, ErrResourceNotFound) {
		return content, err
	}
	compressed, zerr := p.base.Read(name + CompressedSuffix)
	if zerr != nil {
		return nil, err
	}
	decoded, derr := p.decode(compressed)
	if derr != nil {
		return nil, fmt.Errorf("%w: [%s%s]: %w: %v", ErrResourceNotFound, name, CompressedSuffix, ErrDecompression, derr)
	}
	return decoded, nil
}

// decode decompresses a whole zstd stream with a pooled decoder.
func (p *decompressingProvider) decode(compressed []byte) ([]byte, error) {
	dec, err := p.decoder()
	if err != nil {
		return nil, err
	}
	defer p.pool.Put(dec)
	return dec.DecodeAll(compressed, nil)
}

// decoder returns a pooled decoder or creates one with the configured limits.
func (p *decompressingProvider) decoder() (*zstd.Decoder, error) {
	if dec, ok := p.pool.Get().(*zstd.Decoder); ok {
		return dec, nil
	}
	opts := []zstd.DOption{
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(p.decoderLowmem),
	}
	if p.maxDecoderMemory != 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(p.maxDecoderMemory))
	}
	return zstd.NewReader(nil, opts...)
}
