package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
	"github.com/klauspost/compress/zstd"
)

// FileSource reads a JSON array from disk. Paths ending in .zst are zstd-decompressed.
type FileSource struct {
	Path string
}

var _ contract.Fetcher = &FileSource{} // Compile-time check

// Fetch implements contract.Fetcher.
func (s *FileSource) Fetch(ctx context.Context) ([]schema.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open telemetry file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(s.Path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	return Decode(r)
}
