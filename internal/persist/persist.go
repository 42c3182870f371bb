// Package persist saves and loads the ledger file used by the store.
//
// Saving always writes the header line. Loading is lenient: the header is
// optional and lines that cannot be decoded are skipped and counted rather
// than aborting the load.
package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GustavoCaso/expensetrace/internal/codec"
	"github.com/GustavoCaso/expensetrace/internal/expense"
	"github.com/GustavoCaso/expensetrace/internal/logger"
	"github.com/GustavoCaso/expensetrace/internal/store"
)

var ErrIO = errors.New("ledger file unavailable")

type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// Result describes what a load kept and what it dropped.
type Result struct {
	Expenses []expense.Expense
	Loaded   int
	Skipped  int
}

type options struct {
	logger *logger.Logger
}

type Option func(*options)

// WithLogger reports every skipped line at debug level.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Write encodes records to w, header first.
func Write(w io.Writer, records []expense.Expense) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(codec.Header + "\n"); err != nil {
		return err
	}
	for _, e := range records {
		if _, err := bw.WriteString(codec.EncodeExpense(e) + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Save truncates path and writes records to it.
func Save(path string, records []expense.Expense) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &IOError{Op: "save", Path: path, Err: closeErr}
		}
	}()

	if err = Write(f, records); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}

	return nil
}

// Read decodes every record it can from r.
func Read(r io.Reader, opts ...Option) (Result, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	result := Result{Expenses: []expense.Expense{}}
	lines := &lineReader{r: bufio.NewReader(r)}

	first := true
	for {
		line, ok := lines.next()
		if !ok {
			break
		}
		start := lines.number

		if first {
			first = false
			if strings.TrimRight(line, "\r") == codec.Header {
				continue
			}
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		e, err := readRecord(lines, line)
		if err != nil {
			result.Skipped++
			if o.logger != nil {
				o.logger.Debug("skipping ledger line", "line", start, "error", err.Error())
			}
			continue
		}

		result.Expenses = append(result.Expenses, e)
	}

	if lines.err != nil {
		return Result{}, lines.err
	}

	result.Loaded = len(result.Expenses)
	return result, nil
}

// readRecord decodes the record starting at line. A line ending inside a
// quoted field is joined with the following lines until the quote closes.
// The join is kept only when it gives a clean record and none of the joined
// lines is a valid record on its own; otherwise those lines go back to the
// reader and line is decoded alone.
func readRecord(lines *lineReader, line string) (expense.Expense, error) {
	if !codec.OpenQuote(line) {
		return codec.DecodeLine(line)
	}

	joined := line
	continuation := []string{}
	for codec.OpenQuote(joined) {
		next, ok := lines.next()
		if !ok {
			break
		}
		continuation = append(continuation, next)
		joined += "\n" + next
	}

	if cleanJoin(joined, continuation) {
		if e, err := codec.DecodeLine(joined); err == nil {
			return e, nil
		}
	}

	lines.unread(continuation)
	return codec.DecodeLine(line)
}

func cleanJoin(joined string, continuation []string) bool {
	if codec.OpenQuote(joined) || len(codec.SplitRecordLine(joined)) != codec.FieldCount {
		return false
	}
	for _, c := range continuation {
		if _, err := codec.DecodeLine(c); err == nil {
			return false
		}
	}
	return true
}

// lineReader returns physical lines without their terminator, with no limit
// on line length. Unread lines are returned again, in order, by next.
type lineReader struct {
	r       *bufio.Reader
	pending []string
	number  int
	err     error
}

func (l *lineReader) next() (string, bool) {
	if len(l.pending) > 0 {
		line := l.pending[0]
		l.pending = l.pending[1:]
		l.number++
		return line, true
	}

	if l.err != nil {
		return "", false
	}

	line, err := l.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = err
			return "", false
		}
		if line == "" {
			return "", false
		}
	}

	l.number++
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true
}

func (l *lineReader) unread(lines []string) {
	l.pending = append(append([]string{}, lines...), l.pending...)
	l.number -= len(lines)
}

// Load reads path and, only when the file could be read, replaces the
// content of s with the decoded records.
func Load(path string, s *store.Store, opts ...Option) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, &IOError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	result, err := Read(f, opts...)
	if err != nil {
		return Result{}, &IOError{Op: "load", Path: path, Err: err}
	}

	s.Replace(result.Expenses)
	return result, nil
}
