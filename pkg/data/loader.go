package data

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/klauspost/compress/gzip"
)

// MissingValues are the cell spellings treated as a missing field.
var MissingValues = []string{"", "NA", "NaN", "nan", "null"}

// ErrEmpty is returned when a file has no header row.
var ErrEmpty = errors.New("data: empty file")

// Open returns a reader over path. Files ending in ".gz" are
// decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return file, nil
	}
	zr, err := gzip.NewReader(bufio.NewReader(file))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("data: gzip %s: %w", path, err)
	}
	return &gzipFile{Reader: zr, file: file}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// ReadFrame parses the CSV at path into a DataFrame. Every column is kept
// as a string series so callers decide how cells are parsed; cells listed
// in MissingValues are marked NA.
func ReadFrame(path string) (dataframe.DataFrame, error) {
	rc, err := Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer rc.Close()
	return ParseFrame(rc)
}

// ParseFrame is ReadFrame over an already open reader. A leading UTF-8
// byte order mark is dropped. A file with a header row and no data rows
// yields an empty frame carrying those columns.
func ParseFrame(r io.Reader) (dataframe.DataFrame, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("data: read csv: %w", err)
	}
	buf = bytes.TrimPrefix(buf, utf8BOM)

	df := dataframe.ReadCSV(bytes.NewReader(buf),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingValues),
	)
	if df.Err != nil {
		if strings.Contains(df.Err.Error(), "empty") {
			return headerOnly(buf)
		}
		return df, fmt.Errorf("data: parse csv: %w", df.Err)
	}
	if df.Ncol() == 0 {
		return df, ErrEmpty
	}
	return df, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// headerOnly builds a zero-row frame from the header line of buf, or
// returns ErrEmpty when there is no header either.
func headerOnly(buf []byte) (dataframe.DataFrame, error) {
	hdr := dataframe.ReadCSV(bytes.NewReader(buf),
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if hdr.Err != nil || hdr.Nrow() != 1 {
		return dataframe.DataFrame{}, ErrEmpty
	}
	// Records()[0] holds gota's generated names, [1] the header line.
	names := hdr.Records()[1]
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = series.New([]string{}, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return df, fmt.Errorf("data: parse csv header: %w", df.Err)
	}
	return df, nil
}

// WriteFrame writes df as CSV with a header row, creating or truncating
// the file at path.
func WriteFrame(path string, df dataframe.DataFrame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	if err := df.WriteCSV(w); err != nil {
		file.Close()
		return fmt.Errorf("data: write csv: %w", err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// HasColumns reports the names in want that df does not carry.
func HasColumns(df dataframe.DataFrame, want ...string) (missing []string) {
	have := make(map[string]struct{}, df.Ncol())
	for _, n := range df.Names() {
		have[n] = struct{}{}
	}
	for _, n := range want {
		if _, ok := have[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}
