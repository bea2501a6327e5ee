// Package csvsource reads CSV files as a lazy, one-shot sequence of rows.
//
// The source owns the file handle for the duration of the read loop and is
// not restartable once consumed. Row numbers are 1-based against the
// original file: when a header is skipped, the first data row is row 2.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrEmptyFile is returned by Open when a header skip was requested
// but the file contains no rows at all.
var ErrEmptyFile = errors.New("csv file is empty")

// Row is a single CSV record. Fields is nil when Err is set, in which
// case the record could not be parsed and the row should be skipped.
type Row struct {
	// Number is the 1-based row number in the original file.
	Number int

	Fields []string
}

// Source iterates over the rows of one CSV file.
type Source struct {
	file     *os.File
	counting *countingReader
	reader   *csv.Reader
	header   []string
	next     int // row number of the next record
	size     int64
	closed   bool
}

// Open opens a CSV source. If skipHeader is true the first record is
// consumed immediately and exposed via Header; an empty file then fails
// with ErrEmptyFile. The caller must Close the source on every exit path.
func Open(path string, skipHeader bool) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv %s: %w", path, err)
	}

	var size int64
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}

	counting := &countingReader{reader: newUTF8Sanitizer(newBOMReader(f))}
	r := csv.NewReader(counting)
	r.FieldsPerRecord = -1 // rows may be ragged; short rows are the caller's concern
	r.LazyQuotes = true

	s := &Source{
		file:     f,
		counting: counting,
		reader:   r,
		next:     1,
		size:     size,
	}

	if skipHeader {
		header, err := r.Read()
		if err == io.EOF {
			s.Close()
			return nil, ErrEmptyFile
		}
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("reading csv header: %w", err)
		}
		s.header = header
		s.next = 2
	}

	return s, nil
}

// Header returns the consumed header row, or nil if none was skipped.
func (s *Source) Header() []string {
	return s.header
}

// Next returns the next row. It returns io.EOF when the file is exhausted.
// A non-EOF error is scoped to the returned row: the row number is valid,
// the fields are not, and iteration may continue.
func (s *Source) Next() (Row, error) {
	number := s.next
	s.next++

	fields, err := s.reader.Read()
	if err == io.EOF {
		s.next--
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{Number: number}, fmt.Errorf("row %d: %w", number, err)
	}

	return Row{Number: number, Fields: fields}, nil
}

// BytesRead returns the number of bytes consumed so far.
func (s *Source) BytesRead() int64 {
	return s.counting.bytesRead
}

// Size returns the total file size in bytes, or 0 if unknown.
func (s *Source) Size() int64 {
	return s.size
}

// Close releases the underlying file handle. It is safe to call twice.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}
