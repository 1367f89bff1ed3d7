// Package refdata loads static character reference tables (HSK levels,
// frequency ranks) and categorizes character sets against them.
package refdata

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/hanzistats/internal/charset"
)

// Scheme names a classification dimension. Schemes are independent: a
// character may land in one bucket of every scheme at the same time.
type Scheme string

const (
	// SchemeHSK2012 is the HSK 2.0 (2012) level table, levels 1-6.
	SchemeHSK2012 Scheme = "hsk_2012"
	// SchemeHSK2021 is the HSK 3.0 (2021) band table, bands 1-9.
	SchemeHSK2021 Scheme = "hsk_2021"
	// SchemeFrequency is the corpus frequency tier table.
	SchemeFrequency Scheme = "frequency"
)

// Schemes lists every scheme in presentation order.
var Schemes = []Scheme{SchemeHSK2012, SchemeHSK2021, SchemeFrequency}

// Frequency tier labels, ascending.
const (
	TierTop500  = "Top 500"
	TierTop1000 = "Top 1000"
	TierTop1500 = "Top 1500"
	TierTop2000 = "Top 2000"
)

// Options controls index construction.
type Options struct {
	// SplitBands79 keeps HSK 2021 bands 7, 8 and 9 as separate buckets
	// instead of the combined "Bands 7-9" bucket. Rows that only carry the
	// "7-9" range marker still land in band 7.
	SplitBands79 bool
	// Logger receives one diagnostic per load failure. Nil means no-op.
	Logger *zap.Logger
}

// Breakdown maps scheme -> bucket label -> character set. Every defined
// bucket label of a scheme is present even when its set is empty.
type Breakdown map[Scheme]map[string]charset.Set

// Index is the immutable character reference index. Build it once at
// process start and share it read-only.
type Index struct {
	hsk2012 map[string]int
	hsk2021 map[string]int
	rank    map[string]int

	splitBands79 bool
	log          *zap.Logger
}

// NewIndex returns an empty index with the given options.
func NewIndex(opts Options) *Index {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Index{
		hsk2012:      map[string]int{},
		hsk2021:      map[string]int{},
		rank:         map[string]int{},
		splitBands79: opts.SplitBands79,
		log:          log,
	}
}

// LevelOf returns the character's level in the given scheme, 0 if
// unclassified. For SchemeFrequency it returns the frequency rank.
func (x *Index) LevelOf(scheme Scheme, ch string) int {
	switch scheme {
	case SchemeHSK2012:
		return x.hsk2012[ch]
	case SchemeHSK2021:
		return x.hsk2021[ch]
	case SchemeFrequency:
		return x.rank[ch]
	}
	return 0
}

// FrequencyRankOf returns the character's frequency rank, 0 if unranked.
func (x *Index) FrequencyRankOf(ch string) int {
	return x.rank[ch]
}

// FrequencyTierOf maps the character's rank to a tier label. Thresholds are
// inclusive on the upper bound and checked ascending; rank 0 and ranks
// beyond 2000 yield the empty string.
func (x *Index) FrequencyTierOf(ch string) string {
	rank := x.rank[ch]
	switch {
	case rank <= 0:
		return ""
	case rank <= 500:
		return TierTop500
	case rank <= 1000:
		return TierTop1000
	case rank <= 1500:
		return TierTop1500
	case rank <= 2000:
		return TierTop2000
	}
	return ""
}

// BucketLabels returns the scheme's bucket labels in presentation order.
func (x *Index) BucketLabels(scheme Scheme) []string {
	switch scheme {
	case SchemeHSK2012:
		labels := make([]string, 0, 6)
		for lvl := 1; lvl <= 6; lvl++ {
			labels = append(labels, fmt.Sprintf("Level %d", lvl))
		}
		return labels
	case SchemeHSK2021:
		labels := make([]string, 0, 9)
		for band := 1; band <= 6; band++ {
			labels = append(labels, fmt.Sprintf("Band %d", band))
		}
		if x.splitBands79 {
			labels = append(labels, "Band 7", "Band 8", "Band 9")
		} else {
			labels = append(labels, "Bands 7-9")
		}
		return labels
	case SchemeFrequency:
		return []string{TierTop500, TierTop1000, TierTop1500, TierTop2000}
	}
	return nil
}

// BucketFor returns the bucket label for the character in the scheme, or
// the empty string when the character is unclassified there.
func (x *Index) BucketFor(scheme Scheme, ch string) string {
	switch scheme {
	case SchemeHSK2012:
		if lvl := x.hsk2012[ch]; lvl >= 1 && lvl <= 6 {
			return fmt.Sprintf("Level %d", lvl)
		}
	case SchemeHSK2021:
		band := x.hsk2021[ch]
		if band < 1 {
			return ""
		}
		if band >= 7 {
			if x.splitBands79 {
				if band <= 9 {
					return fmt.Sprintf("Band %d", band)
				}
				return ""
			}
			return "Bands 7-9"
		}
		return fmt.Sprintf("Band %d", band)
	case SchemeFrequency:
		return x.FrequencyTierOf(ch)
	}
	return ""
}

// Categorize assigns each character of the set to at most one bucket per
// scheme. Every bucket label is present in the result, empty or not.
func (x *Index) Categorize(set charset.Set) Breakdown {
	out := Breakdown{}
	members := map[Scheme]map[string][]string{}
	for _, scheme := range Schemes {
		members[scheme] = map[string][]string{}
		for _, label := range x.BucketLabels(scheme) {
			members[scheme][label] = nil
		}
	}
	for _, ch := range set.Sorted() {
		for _, scheme := range Schemes {
			label := x.BucketFor(scheme, ch)
			if label == "" {
				continue
			}
			members[scheme][label] = append(members[scheme][label], ch)
		}
	}
	for scheme, buckets := range members {
		out[scheme] = make(map[string]charset.Set, len(buckets))
		for label, chars := range buckets {
			out[scheme][label] = charset.New(chars...)
		}
	}
	return out
}

// OfficialSet returns every character the reference data places in the
// given bucket. An unknown scheme or label yields an empty set.
func (x *Index) OfficialSet(scheme Scheme, label string) charset.Set {
	var source map[string]int
	switch scheme {
	case SchemeHSK2012:
		source = x.hsk2012
	case SchemeHSK2021:
		source = x.hsk2021
	case SchemeFrequency:
		source = x.rank
	default:
		return charset.New()
	}
	var chars []string
	for ch := range source {
		if x.BucketFor(scheme, ch) == label {
			chars = append(chars, ch)
		}
	}
	return charset.New(chars...)
}
