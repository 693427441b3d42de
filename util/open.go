package util

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
)

// ReadCloser is an input stream opened by Open.  Close releases both the
// decompressor (if any) and the underlying file.
type ReadCloser struct {
	io.Reader
	ctx context.Context
	f   file.File
	gz  *gzip.Reader
}

// Open opens path for reading.  Paths with a gzip extension are transparently
// decompressed.
func Open(ctx context.Context, path string) (rc *ReadCloser, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	rc = &ReadCloser{
		Reader: infile.Reader(ctx),
		ctx:    ctx,
		f:      infile,
	}
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if rc.gz, err = gzip.NewReader(rc.Reader); err != nil {
			_ = infile.Close(ctx)
			return nil, err
		}
		rc.Reader = rc.gz
	}
	return
}

// Close implements io.Closer.
func (rc *ReadCloser) Close() (err error) {
	if rc.gz != nil {
		err = rc.gz.Close()
	}
	if e := rc.f.Close(rc.ctx); e != nil && err == nil {
		err = e
	}
	return
}
