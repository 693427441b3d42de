package tags

import (
	"bufio"
	"context"
	"io"
	"strconv"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/hotspot/util"
	"github.com/pkg/errors"
)

// Scanner iterates over the chromosome blocks of a tag file.  Scanners are not
// threadsafe.
type Scanner struct {
	path    string
	b       *bufio.Scanner
	lineIdx int
	err     error

	chrom string
	tags  []int
	// seen records every chromosome name returned so far, so that a split
	// chromosome is reported instead of silently producing two blocks.
	seen map[string]struct{}

	// One-record lookahead.
	pending   bool
	nextChrom string
	nextPos   int
	tokens    [2][]byte
}

// NewScanner creates a Scanner that reads tag records from r.  path is only
// used in error messages.
func NewScanner(r io.Reader, path string) *Scanner {
	return &Scanner{
		path: path,
		b:    bufio.NewScanner(r),
		seen: make(map[string]struct{}),
	}
}

// Scan advances to the next chromosome block, returning false when the input
// is exhausted or an error occurs.  Upon completion the caller should check
// Err.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	s.tags = s.tags[:0]
	if !s.pending && !s.readRecord() {
		return false
	}
	s.pending = false
	s.chrom = s.nextChrom
	if _, found := s.seen[s.chrom]; found {
		s.err = errors.Errorf("tags.Scan: %s: unsorted input (split chromosome %s) on line %d", s.path, s.chrom, s.lineIdx)
		return false
	}
	s.seen[s.chrom] = struct{}{}
	s.tags = append(s.tags, s.nextPos)
	for s.readRecord() {
		if s.nextChrom != s.chrom {
			s.pending = true
			return true
		}
		if s.nextPos < s.tags[len(s.tags)-1] {
			s.err = errors.Errorf("tags.Scan: %s: unsorted input (position %d follows %d) on line %d",
				s.path, s.nextPos, s.tags[len(s.tags)-1], s.lineIdx)
			return false
		}
		s.tags = append(s.tags, s.nextPos)
	}
	return s.err == nil
}

// readRecord parses the next nonblank line into the lookahead slot.  It
// returns false at end of input or on error.
func (s *Scanner) readRecord() bool {
	for s.b.Scan() {
		s.lineIdx++
		nToken := util.GetTokens(s.tokens[:], s.b.Bytes())
		if nToken == 0 {
			continue
		}
		if nToken != len(s.tokens) {
			s.err = errors.Errorf("tags.Scan: %s contains a malformed entry on line %d", s.path, s.lineIdx)
			return false
		}
		pos, err := strconv.Atoi(gunsafe.BytesToString(s.tokens[1]))
		if err != nil {
			s.err = errors.Wrapf(err, "tags.Scan: %s contains a malformed entry on line %d", s.path, s.lineIdx)
			return false
		}
		// Only allocate when the chromosome changes.
		if gunsafe.BytesToString(s.tokens[0]) != s.chrom {
			s.nextChrom = string(s.tokens[0])
		} else {
			s.nextChrom = s.chrom
		}
		s.nextPos = pos
		return true
	}
	s.err = s.b.Err()
	return false
}

// Chrom returns the name of the chromosome read by the last successful Scan.
func (s *Scanner) Chrom() string { return s.chrom }

// Tags returns the sorted tag positions of the current chromosome.  The slice
// is reused by the next call to Scan.
func (s *Scanner) Tags() []int { return s.tags }

// Err returns the first error encountered, if any.
func (s *Scanner) Err() error { return s.err }

// Reader is a Scanner over a file opened by Open.
type Reader struct {
	*Scanner
	rc *util.ReadCloser
}

// Open opens the tag file at path.  Gzipped files are decompressed.
func Open(ctx context.Context, path string) (*Reader, error) {
	rc, err := util.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "tags.Open: unable to access %s", path)
	}
	return &Reader{Scanner: NewScanner(rc, path), rc: rc}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.rc.Close()
}

// CountRecords returns the number of (nonblank) records in the tag file at
// path.  Records are not validated; that happens when the file is scanned.
func CountRecords(ctx context.Context, path string) (n int, err error) {
	var rc *util.ReadCloser
	if rc, err = util.Open(ctx, path); err != nil {
		return 0, errors.Wrapf(err, "tags.CountRecords: unable to access %s", path)
	}
	defer func() {
		if e := rc.Close(); e != nil && err == nil {
			err = e
		}
	}()
	scanner := bufio.NewScanner(rc)
	var tokens [1][]byte
	for scanner.Scan() {
		if util.GetTokens(tokens[:], scanner.Bytes()) != 0 {
			n++
		}
	}
	err = scanner.Err()
	return
}
