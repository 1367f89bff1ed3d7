package refdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hanzistats/internal/charset"
)

const levelCSV = `Hanzi,Level,Traditional
中,1,
文,1,
们,1,們
广,3,廣
微,7-9,
bogus-level,abc,
`

const compilationCSV = `simplified,traditional,frequency_junda,hsk_2012
中,,10,HSK1
文,,250,HSK1
们,們,12,HSK1
广,廣,501,HSK3
学,學,2000,
罕,,2001,
噱,,,"HSK9"
`

func newTestIndex(t *testing.T, opts Options) *Index {
	t.Helper()
	x := NewIndex(opts)
	require.NoError(t, x.ReadLevelTable(strings.NewReader(levelCSV)))
	require.NoError(t, x.ReadCompilationTable(strings.NewReader(compilationCSV)))
	return x
}

func TestLevelLookups(t *testing.T) {
	x := newTestIndex(t, Options{})

	assert.Equal(t, 1, x.LevelOf(SchemeHSK2021, "中"))
	assert.Equal(t, 3, x.LevelOf(SchemeHSK2021, "广"))
	// Traditional variant from the level table shares the band.
	assert.Equal(t, 1, x.LevelOf(SchemeHSK2021, "們"))
	// "7-9" range marker collapses to band 7.
	assert.Equal(t, 7, x.LevelOf(SchemeHSK2021, "微"))
	// Unlisted characters return the 0 sentinel, never an error.
	assert.Equal(t, 0, x.LevelOf(SchemeHSK2021, "陌"))

	assert.Equal(t, 1, x.LevelOf(SchemeHSK2012, "中"))
	assert.Equal(t, 3, x.LevelOf(SchemeHSK2012, "廣"))
	// "HSK9" is outside the 2012 range 1-6 and must be dropped.
	assert.Equal(t, 0, x.LevelOf(SchemeHSK2012, "噱"))
}

func TestFrequencyRankAndTier(t *testing.T) {
	x := newTestIndex(t, Options{})

	assert.Equal(t, 10, x.FrequencyRankOf("中"))
	assert.Equal(t, 12, x.FrequencyRankOf("們"))
	assert.Equal(t, 0, x.FrequencyRankOf("陌"))

	tiers := map[string]string{
		"中": TierTop500,  // rank 10
		"文": TierTop500,  // rank 250
		"广": TierTop1000, // rank 501, boundary
		"学": TierTop2000, // rank 2000, boundary
		"罕": "",          // rank 2001
		"陌": "",          // rank 0
	}
	for ch, want := range tiers {
		assert.Equal(t, want, x.FrequencyTierOf(ch), "tier of %q", ch)
	}
}

func TestCategorizeBucketCompleteness(t *testing.T) {
	x := newTestIndex(t, Options{})
	breakdown := x.Categorize(charset.New("中", "陌"))

	for _, scheme := range Schemes {
		buckets, ok := breakdown[scheme]
		require.True(t, ok, "scheme %s missing", scheme)
		for _, label := range x.BucketLabels(scheme) {
			_, ok := buckets[label]
			assert.True(t, ok, "bucket %s/%s missing", scheme, label)
		}
	}

	assert.Equal(t, []string{"中"}, breakdown[SchemeHSK2021]["Band 1"].Sorted())
	assert.Equal(t, []string{"中"}, breakdown[SchemeHSK2012]["Level 1"].Sorted())
	assert.Equal(t, []string{"中"}, breakdown[SchemeFrequency][TierTop500].Sorted())
	// The unclassified character lands in no bucket of any scheme.
	for _, scheme := range Schemes {
		for label, set := range breakdown[scheme] {
			assert.False(t, set.Contains("陌"), "unexpected %q in %s/%s", "陌", scheme, label)
		}
	}
}

func TestSplitBands79(t *testing.T) {
	x := newTestIndex(t, Options{SplitBands79: true})

	labels := x.BucketLabels(SchemeHSK2021)
	assert.Contains(t, labels, "Band 7")
	assert.Contains(t, labels, "Band 9")
	assert.NotContains(t, labels, "Bands 7-9")
	// Range-marker rows still land in band 7.
	assert.Equal(t, "Band 7", x.BucketFor(SchemeHSK2021, "微"))

	collapsed := newTestIndex(t, Options{})
	assert.Equal(t, "Bands 7-9", collapsed.BucketFor(SchemeHSK2021, "微"))
}

func TestOfficialSet(t *testing.T) {
	x := newTestIndex(t, Options{})
	band1 := x.OfficialSet(SchemeHSK2021, "Band 1")
	assert.ElementsMatch(t, []string{"中", "文", "们", "們"}, band1.Sorted())
	assert.Equal(t, 0, x.OfficialSet(Scheme("nope"), "Band 1").Len())
}

func TestLoadMissingFiles(t *testing.T) {
	// Absent reference files leave a usable empty index.
	x := Load(t.TempDir(), Options{})
	assert.Equal(t, 0, x.FrequencyRankOf("中"))
	assert.Equal(t, 0, x.LevelOf(SchemeHSK2021, "中"))
	assert.Equal(t, "", x.FrequencyTierOf("中"))

	breakdown := x.Categorize(charset.New("中"))
	for _, scheme := range Schemes {
		for _, label := range x.BucketLabels(scheme) {
			assert.Equal(t, 0, breakdown[scheme][label].Len())
		}
	}
}

func TestLoadPartialData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LevelTableFile), []byte(levelCSV), 0o644))

	x := Load(dir, Options{})
	assert.Equal(t, 1, x.LevelOf(SchemeHSK2021, "中"))
	// Frequency table absent: every rank is the 0 sentinel.
	assert.Equal(t, 0, x.FrequencyRankOf("中"))
}
