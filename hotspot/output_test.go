package hotspot

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

func testReportHotspot() Hotspot {
	h := newHotspot()
	h.FilterIndexLeft, h.FilterIndexRight = 0, 2
	h.FilterWidth = 120
	h.AveragePos = 133
	h.DensCount = 1
	h.WeightedAvgSD = 9.849
	h.FilterSize = 3
	h.FilterDist = 61
	h.MinSite, h.MaxSite = 100, 160
	h.FilterDensIndexLeft, h.FilterDensIndexRight = 0, 3
	h.FilteredZScoreAdjusted = 1.5
	return h
}

func TestWriteChrom(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)
	assert.NoError(t, w.WriteChrom("chr1", []Hotspot{testReportHotspot()}))
	assert.NoError(t, w.WriteChrom("chr2", nil))
	h := testReportHotspot()
	h.AveragePos = 5000
	assert.NoError(t, w.WriteChrom("chr3", []Hotspot{h}))
	assert.NoError(t, w.Close())

	expect.EQ(t, buf.String(),
		"Chrome\tPosition\tClusterSize\tInterDist\tWindowWidth\tMinSite\tMaxSite\tZScore2\n"+
			"chr1\t133\t3\t61\t120.000000\t100\t160\t1.500000\n"+
			"chr3\t5000\t3\t61\t120.000000\t100\t160\t1.500000\n")
}

func TestWriteChromHeaderOnEmptyChrom(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)
	assert.NoError(t, w.WriteChrom("chr1", nil))
	expect.EQ(t, buf.String(), "Chrome\tPosition\tClusterSize\tInterDist\tWindowWidth\tMinSite\tMaxSite\tZScore2\n")
}

func TestWriteChromVerbose(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	assert.NoError(t, w.WriteChrom("chr1", []Hotspot{testReportHotspot()}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.EQ(t, len(lines), 2)
	expect.EQ(t, lines[0], strings.Join(verboseReportHeader, "\t"))
	expect.EQ(t, lines[1],
		"chr1\t133\t 1.00\t 9.85\t3\t61\t0.000000\t120.000000\t100\t160\t1.500000\t0\t2\t0\t3")
}

func TestCreateCompressed(t *testing.T) {
	ctx := vcontext.Background()
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	path := filepath.Join(tmpdir, "out.tsv.gz")
	w, err := Create(ctx, path, false)
	assert.NoError(t, err)
	assert.NoError(t, w.WriteChrom("chr1", []Hotspot{testReportHotspot()}))
	assert.NoError(t, w.Close())

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	assert.NoError(t, err)
	data, err := ioutil.ReadAll(gz)
	assert.NoError(t, err)
	expect.True(t, strings.HasPrefix(string(data), "Chrome\tPosition\t"))
	expect.True(t, strings.Contains(string(data), "chr1\t133\t3\t61\t"))
}
