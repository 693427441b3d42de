package mappable

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countsData = `chr1 0 9000
chr1 10000 10000
chr1 20000 0

chr2 0 5
chr2 10000 6
chr3 0 7
chr5 0 8
`

func TestReadChrom(t *testing.T) {
	r := NewReader(strings.NewReader(countsData), "test.counts")

	counts, err := r.ReadChrom("chr1", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{9000, 10000, 0}, counts)

	// The first chr2 record was consumed while reading chr1; it must not be
	// lost.
	counts, err = r.ReadChrom("chr2", counts[:0])
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, counts)

	// chr3 is skipped over on the way to chr5.
	counts, err = r.ReadChrom("chr5", counts[:0])
	require.NoError(t, err)
	assert.Equal(t, []int{8}, counts)
	require.NoError(t, r.Close())
}

func TestReadChromMissing(t *testing.T) {
	r := NewReader(strings.NewReader(countsData), "test.counts")
	_, err := r.ReadChrom("chr4", nil)
	require.Error(t, err)
	assert.Equal(t, ErrMissingChrom, errors.Cause(err))
	assert.Contains(t, err.Error(), "chr4")
}

func TestReadChromMalformed(t *testing.T) {
	tests := []struct {
		name, data string
	}{
		{"two_fields", "chr1 0 5\nchr1 10000\n"},
		{"bad_start", "chr1 zero 5\n"},
		{"bad_count", "chr1 0 many\n"},
	}
	for _, tt := range tests {
		r := NewReader(strings.NewReader(tt.data), "bad.counts")
		_, err := r.ReadChrom("chr1", nil)
		require.Error(t, err, tt.name)
		assert.Contains(t, err.Error(), "malformed entry", tt.name)
		assert.NotEqual(t, ErrMissingChrom, errors.Cause(err), tt.name)
	}
}
