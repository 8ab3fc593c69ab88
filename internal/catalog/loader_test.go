package catalog

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFeed writes lines to a gzipped file in a temp dir.
func createTestFeed(t *testing.T, filename string, lines []string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	_, err = gzipWriter.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)

	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestFeed(t, "feed.csv.gz", []string{
		"part_number,name,manufacturer,category,price,description",
		"BRK-001,Brake pad,Bosch,Brakes,19.99,Front axle set",
		"FLT-200,Oil filter,Mann,Filters,7.5",
		`SPK-010,"Spark plug, iridium",NGK,,12.00,`,
	})

	feed, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, feed.Parts, 3)
	assert.Zero(t, feed.Skipped)

	brake := feed.Parts[0]
	assert.Equal(t, "BRK-001", brake.PartNumber)
	assert.Equal(t, "Brake pad", brake.Name)
	assert.Equal(t, "Bosch", *brake.Manufacturer)
	assert.Equal(t, "Brakes", *brake.Category)
	assert.Equal(t, "Front axle set", *brake.Description)
	assert.True(t, decimal.RequireFromString("19.99").Equal(brake.Price))

	filter := feed.Parts[1]
	assert.Nil(t, filter.Description)
	assert.Equal(t, "7.50", filter.Price.StringFixed(2))

	plug := feed.Parts[2]
	assert.Equal(t, "Spark plug, iridium", plug.Name)
	assert.Nil(t, plug.Category)
	assert.Nil(t, plug.Description)
}

func TestFileLoader_Load_SkipsMalformedRows(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestFeed(t, "malformed.csv.gz", []string{
		"BRK-001,Brake pad,Bosch,Brakes,19.99",
		"too,few,columns",
		",Missing number,Bosch,Brakes,1.00",
		"NEG-1,Negative,Bosch,Brakes,-3",
		"NAN-1,Not a price,Bosch,Brakes,abc",
		"",
		"A,B,C,D,1,E,F",
		"FLT-200,Oil filter,Mann,Filters,7.50",
	})

	feed, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, feed.Parts, 2)
	assert.Equal(t, 5, feed.Skipped)
	assert.Equal(t, "BRK-001", feed.Parts[0].PartNumber)
	assert.Equal(t, "FLT-200", feed.Parts[1].PartNumber)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	feed, err := loader.Load(context.Background(), "/nonexistent/path/to/feed.csv.gz")

	require.Error(t, err)
	assert.Nil(t, feed)
	assert.Contains(t, err.Error(), "failed to open catalog feed")
}

func TestFileLoader_Load_InvalidGzip(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := filepath.Join(t.TempDir(), "invalid.gz")
	require.NoError(t, os.WriteFile(filePath, []byte("not a gzip file"), 0644))

	feed, err := loader.Load(context.Background(), filePath)

	require.Error(t, err)
	assert.Nil(t, feed)
	assert.Contains(t, err.Error(), "failed to create gzip reader")
}

func TestFileLoader_Load_ContextCancellation(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	lines := make([]string, 3*cancelCheckEvery)
	for i := range lines {
		lines[i] = "P-1,Part,M,C,1.00"
	}
	filePath := createTestFeed(t, "large.csv.gz", lines)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	feed, err := loader.Load(ctx, filePath)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, feed)
}
