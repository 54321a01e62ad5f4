package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmylchreest/tablecsv/internal/logger"
)

// StdinSource is the source name that reads the document from standard input.
const StdinSource = "-"

// FileConfig holds configuration for the file fetcher.
type FileConfig struct {
	// Stdin is read when the source is StdinSource. Defaults to os.Stdin.
	Stdin io.Reader
	// MaxBodySize limits the document in bytes. Zero means unlimited.
	MaxBodySize int
}

// FileFetcher reads documents from local files or stdin.
type FileFetcher struct {
	config FileConfig
}

// NewFile creates a new file fetcher.
func NewFile(cfg FileConfig) *FileFetcher {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	return &FileFetcher{config: cfg}
}

// Fetch reads the file at path, or stdin when path is "-".
func (f *FileFetcher) Fetch(_ context.Context, path string, _ Options) (Content, error) {
	result := Content{
		Source:    path,
		FetchedAt: time.Now(),
	}
	if path == "" {
		return result, ErrEmptySource
	}

	var r io.Reader
	if path == StdinSource {
		logger.Debug("reading document from stdin")
		r = f.config.Stdin
	} else {
		logger.Debug("reading document from file", "path", path)
		file, err := os.Open(path) //#nosec G304 -- CLI tool reads a user-specified file
		if err != nil {
			return result, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	data, err := readLimited(r, f.config.MaxBodySize)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result.HTML = string(data)
	result.Title = pageTitle(result.HTML)
	logger.Debug("document read", "source", path, "size", len(data))
	return result, nil
}

// readLimited reads r fully, failing with ErrBodyTooLarge once more than
// limit bytes are available. A limit of zero reads everything.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > limit {
		return nil, fmt.Errorf("%w of %d bytes", ErrBodyTooLarge, limit)
	}
	return data, nil
}

// Close releases resources.
func (f *FileFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *FileFetcher) Type() string {
	return "file"
}
