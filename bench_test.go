package fortune

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/meigma/fortune/internal/testutil"
)

var (
	benchSinkFortune Fortune
	errBenchSink     error //nolint:errname // not a sentinel error, just a sink variable
)

func benchRecords(count, size int) []string {
	records := make([]string, count)
	for i := range records {
		line := fmt.Sprintf("cookie %d ", i)
		records[i] = strings.Repeat(line, max(1, size/len(line)))
	}
	return records
}

func benchStore(b *testing.B, categories, records, size int) *Store {
	b.Helper()
	p := testutil.NewMockProvider()
	for i := range categories {
		p.PutCategory(b, "bench", fmt.Sprintf("cat%02d", i), benchRecords(records, size))
	}
	s, err := Load(context.Background(), p, "bench")
	if err != nil {
		b.Fatal(err)
	}
	return s
}

func BenchmarkFortune(b *testing.B) {
	cases := []struct {
		name    string
		records int
		size    int
	}{
		{name: "records=100/size=64", records: 100, size: 64},
		{name: "records=10000/size=64", records: 10000, size: 64},
		{name: "records=1000/size=4k", records: 1000, size: 4 << 10},
	}
	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			s := benchStore(b, 1, bc.records, bc.size)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; b.Loop(); i++ {
				benchSinkFortune, errBenchSink = s.Fortune("cat00", i%bc.records+1)
			}
		})
	}
}

func BenchmarkRandom(b *testing.B) {
	s := benchStore(b, 16, 1000, 128)

	b.Run("serial", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for b.Loop() {
			benchSinkFortune, errBenchSink = s.Random()
		}
	})
	b.Run("parallel", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if _, err := s.RandomFrom("cat07"); err != nil {
					b.Error(err)
					return
				}
			}
		})
	})
}

func BenchmarkLoad(b *testing.B) {
	for _, compressed := range []bool{false, true} {
		b.Run(fmt.Sprintf("zstd=%t", compressed), func(b *testing.B) {
			data := testutil.BuildData(benchRecords(5000, 256), '%')
			indexData := testutil.BuildIndex(b, data, '%')
			p := testutil.NewMockProvider()
			var provider Provider = p
			if compressed {
				enc, err := zstd.NewWriter(nil)
				if err != nil {
					b.Fatal(err)
				}
				p.Put("bench/big.zst", enc.EncodeAll(data, nil))
				_ = enc.Close()
				provider = NewDecompressingProvider(p)
			} else {
				p.Put("bench/big", data)
			}
			p.Put("bench/big.dat", indexData)

			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_, errBenchSink = Load(context.Background(), provider, "bench")
			}
		})
	}
}
