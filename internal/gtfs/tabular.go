package gtfs

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Dialect selects how a data row is split into fields.
type Dialect int

const (
	// DialectSplit splits every row on ',' with no quoting or escaping.
	// A field that contains a literal comma is split in two, which shifts
	// every later column of that row.
	DialectSplit Dialect = iota
	// DialectQuoted splits rows following RFC 4180, so quoted fields may
	// contain commas.
	DialectQuoted
)

func (d Dialect) String() string {
	switch d {
	case DialectSplit:
		return "split"
	case DialectQuoted:
		return "quoted"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect maps a flag value ("split" or "quoted") to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "split":
		return DialectSplit, nil
	case "quoted":
		return DialectQuoted, nil
	default:
		return DialectSplit, fmt.Errorf("unknown dialect %q (want split|quoted)", s)
	}
}

// RowPolicy decides what happens to a row with too few fields.
type RowPolicy int

const (
	// AbortOnMalformedRow fails the whole load on the first malformed row.
	AbortOnMalformedRow RowPolicy = iota
	// SkipMalformedRows logs and drops malformed rows.
	SkipMalformedRows
)

func (p RowPolicy) String() string {
	switch p {
	case AbortOnMalformedRow:
		return "abort"
	case SkipMalformedRows:
		return "skip"
	default:
		return fmt.Sprintf("RowPolicy(%d)", int(p))
	}
}

// ParseRowPolicy maps a flag value ("abort" or "skip") to a RowPolicy.
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return AbortOnMalformedRow, nil
	case "skip":
		return SkipMalformedRows, nil
	default:
		return AbortOnMalformedRow, fmt.Errorf("unknown row policy %q (want abort|skip)", s)
	}
}

// Leading columns consumed from each source, in the order they must appear.
var (
	tripsHeader     = []string{"route_id", "service_id", "trip_id"}
	stopTimesHeader = []string{"trip_id", "arrival_time", "departure_time", "stop_id"}
)

// TripsHeader returns the leading columns required in the trips source.
func TripsHeader() []string { return slices.Clone(tripsHeader) }

// StopTimesHeader returns the leading columns required in the stop-times source.
func StopTimesHeader() []string { return slices.Clone(stopTimesHeader) }

// table binds a source's expected header to the positional mapping of its rows.
type table[T any] struct {
	name   string
	header []string
	build  func(fields []string) T
}

var tripsTable = table[Trip]{
	name:   "trips.txt",
	header: tripsHeader,
	build: func(f []string) Trip {
		return Trip{RouteID: f[0], ServiceID: f[1], TripID: f[2]}
	},
}

var stopTimesTable = table[StopTime]{
	name:   "stop_times.txt",
	header: stopTimesHeader,
	build: func(f []string) StopTime {
		return StopTime{TripID: f[0], Arrival: f[1], Departure: f[2], StopID: f[3]}
	},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// maxLineBytes bounds a single line in DialectSplit.
const maxLineBytes = 16 << 20

type rowReader interface {
	// next returns the fields of the next non-blank line and its 1-based line
	// number, or io.EOF.
	next() ([]string, int, error)
}

type splitRows struct {
	scanner *bufio.Scanner
	line    int
}

func newSplitRows(r io.Reader) *splitRows {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &splitRows{scanner: scanner}
}

func (s *splitRows) next() ([]string, int, error) {
	for s.scanner.Scan() {
		s.line++
		text := strings.TrimSuffix(s.scanner.Text(), "\r")
		if text == "" {
			continue
		}
		return strings.Split(text, ","), s.line, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, s.line, err
	}
	return nil, s.line, io.EOF
}

type quotedRows struct {
	reader *csv.Reader
}

func newQuotedRows(r io.Reader) *quotedRows {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	return &quotedRows{reader: reader}
}

func (q *quotedRows) next() ([]string, int, error) {
	fields, err := q.reader.Read()
	if err != nil {
		return nil, 0, err
	}
	line, _ := q.reader.FieldPos(0)
	return fields, line, nil
}

func newRowReader(r io.Reader, dialect Dialect) rowReader {
	if dialect == DialectQuoted {
		return newQuotedRows(r)
	}
	return newSplitRows(r)
}

// checkHeader verifies that the first len(want) columns of got are want, in order.
func checkHeader(got, want []string) error {
	if len(got) < len(want) {
		return fmt.Errorf("%w: got %q, want leading columns %q", ErrHeaderMismatch, got, want)
	}
	for i, name := range want {
		if got[i] != name {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrHeaderMismatch, i, got[i], name)
		}
	}
	return nil
}

// headerStart drops a leading UTF-8 byte order mark and requires the header
// on the first line.
func headerStart(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}
	first, err := br.Peek(1)
	if errors.Is(err, io.EOF) {
		return br, nil
	}
	if err != nil {
		return nil, err
	}
	if first[0] == '\n' || first[0] == '\r' {
		return nil, fmt.Errorf("%w: line 1 is blank, header must be the first line", ErrHeaderMismatch)
	}
	return br, nil
}

// readTable parses r as source and calls emit once per row, in file order.
// It returns the number of rows dropped under SkipMalformedRows.
func readTable[T any](r io.Reader, source string, t table[T], cfg Config, logger *slog.Logger, emit func(T)) (int, error) {
	r, err := headerStart(r)
	if err != nil {
		return 0, &LoadError{Source: source, Err: err}
	}
	rows := newRowReader(r, cfg.Dialect)

	header, _, err := rows.next()
	if errors.Is(err, io.EOF) {
		return 0, &LoadError{Source: source, Err: fmt.Errorf("%w: source is empty", ErrHeaderMismatch)}
	}
	if err != nil {
		return 0, &LoadError{Source: source, Err: err}
	}
	if err := checkHeader(header, t.header); err != nil {
		return 0, &LoadError{Source: source, Err: err}
	}

	want := len(t.header)
	skipped := 0
	for {
		fields, line, err := rows.next()
		if errors.Is(err, io.EOF) {
			return skipped, nil
		}
		if err != nil {
			return skipped, &LoadError{Source: source, Err: err}
		}

		if len(fields) < want {
			parseErr := &ParseError{Source: source, Line: line, Fields: len(fields), Want: want}
			if cfg.RowPolicy != SkipMalformedRows {
				return skipped, &LoadError{Source: source, Err: parseErr}
			}
			skipped++
			logger.Warn("skipping malformed row",
				slog.String("source", source),
				slog.Int("line", line),
				slog.Int("fields", len(fields)),
				slog.Int("want", want))
			continue
		}

		emit(t.build(fields))
	}
}
