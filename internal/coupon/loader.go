package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped promotion files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based promotion loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "promotion-loader").Logger(),
	}
}

// Load reads a gzipped promotion file and returns a Catalog.
// The file holds one JSON promotion object per line.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Catalog, error) {
	l.logger.Info().Str("file", filePath).Msg("loading promotion file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open promotion file")
		return nil, fmt.Errorf("failed to open promotion file %s: %w", filePath, err)
	}
	defer file.Close()

	catalog, err := readPromotions(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading promotion file")
		return nil, fmt.Errorf("error reading promotion file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("promotions_loaded", catalog.Size()).
		Msg("promotion file loaded successfully")

	return catalog, nil
}

// readPromotions decodes a gzipped JSON-lines stream. Blank lines are
// skipped; a malformed line fails the whole file.
func readPromotions(ctx context.Context, r io.Reader) (*mapCatalog, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	catalog := NewMapCatalog(16).(*mapCatalog)

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p Promotion
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("line %d: invalid promotion: %w", lineNo, err)
		}
		if strings.TrimSpace(p.Code) == "" {
			return nil, fmt.Errorf("line %d: promotion code is empty", lineNo)
		}
		catalog.Add(p)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return catalog, nil
}
