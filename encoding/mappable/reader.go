// Package mappable reads per-bin mappable-site counts, one chromosome at a
// time.
//
// Each line of a counts file is "<chrom> <bin start> <count>", where count is
// the number of uniquely mappable positions in a fixed-width bin.  Records
// must be grouped by chromosome in the same order as the tag file, with the
// bins of a chromosome in ascending order starting at coordinate zero.  The
// bin-start column is validated but otherwise unused: bin i is assumed to
// cover [i*width, (i+1)*width).
package mappable

import (
	"bufio"
	"context"
	"io"
	"strconv"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/hotspot/util"
	"github.com/pkg/errors"
)

// ErrMissingChrom is the cause of the error returned by ReadChrom when the
// counts file has no records for the requested chromosome.
var ErrMissingChrom = errors.New("no background data for chromosome")

// Reader is a forward-only reader of a counts file.  Readers are not
// threadsafe.
type Reader struct {
	path    string
	b       *bufio.Scanner
	lineIdx int
	tokens  [3][]byte
	rc      *util.ReadCloser

	// pending holds the first record of the following chromosome, which was
	// read while looking for the end of the previous one.
	pending      bool
	pendingChrom string
	pendingCount int
}

// NewReader creates a Reader over r.  path is only used in error messages.
func NewReader(r io.Reader, path string) *Reader {
	return &Reader{path: path, b: bufio.NewScanner(r)}
}

// Open opens the counts file at path.  Gzipped files are decompressed.
func Open(ctx context.Context, path string) (*Reader, error) {
	rc, err := util.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "mappable.Open: unable to access %s", path)
	}
	r := NewReader(rc, path)
	r.rc = rc
	return r, nil
}

// Close releases the file opened by Open.  It is a no-op for Readers created
// with NewReader.
func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// ReadChrom appends the counts of chromosome chrom to dst and returns the
// extended slice.  Records belonging to other chromosomes that precede chrom
// are skipped; reading stops at the first record after chrom's block, which
// is retained for the next call.
func (r *Reader) ReadChrom(chrom string, dst []int) ([]int, error) {
	n := 0
	for {
		name, count, ok, err := r.next()
		if err != nil {
			return dst, err
		}
		if !ok {
			break
		}
		if name != chrom {
			if n == 0 {
				continue
			}
			r.pending = true
			r.pendingChrom = name
			r.pendingCount = count
			break
		}
		dst = append(dst, count)
		n++
	}
	if n == 0 {
		return dst, errors.Wrapf(ErrMissingChrom, "mappable.ReadChrom: %s: %s", r.path, chrom)
	}
	return dst, nil
}

// next returns the pending record if there is one, and otherwise parses the
// next nonblank line.  ok is false at end of input.
func (r *Reader) next() (chrom string, count int, ok bool, err error) {
	if r.pending {
		r.pending = false
		return r.pendingChrom, r.pendingCount, true, nil
	}
	for r.b.Scan() {
		r.lineIdx++
		nToken := util.GetTokens(r.tokens[:], r.b.Bytes())
		if nToken == 0 {
			continue
		}
		if nToken != len(r.tokens) {
			err = errors.Errorf("mappable.ReadChrom: %s contains a malformed entry on line %d", r.path, r.lineIdx)
			return
		}
		if _, err = strconv.Atoi(gunsafe.BytesToString(r.tokens[1])); err != nil {
			err = errors.Wrapf(err, "mappable.ReadChrom: %s contains a malformed entry on line %d", r.path, r.lineIdx)
			return
		}
		if count, err = strconv.Atoi(gunsafe.BytesToString(r.tokens[2])); err != nil {
			err = errors.Wrapf(err, "mappable.ReadChrom: %s contains a malformed entry on line %d", r.path, r.lineIdx)
			return
		}
		return string(r.tokens[0]), count, true, nil
	}
	return "", 0, false, r.b.Err()
}
