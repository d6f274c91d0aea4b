package article

import (
	"math/rand"
	"sort"
	"strings"
	"time"
)

// SortOrder selects the active ranking policy.
type SortOrder string

const (
	SortPriority SortOrder = "priority"
	SortTime     SortOrder = "time"
	SortRandom   SortOrder = "random"
)

// ValidSortOrder reports whether s names a known ranking policy.
func ValidSortOrder(s string) bool {
	switch SortOrder(s) {
	case SortPriority, SortTime, SortRandom:
		return true
	}
	return false
}

// Sort reorders articles in place according to the given policy.
// priorityList is only consulted for SortPriority.
func Sort(articles []Article, order SortOrder, priorityList []string) {
	switch order {
	case SortRandom:
		rand.Shuffle(len(articles), func(i, j int) {
			articles[i], articles[j] = articles[j], articles[i]
		})
	case SortTime:
		sort.SliceStable(articles, func(i, j int) bool {
			return parseTimestamp(articles[i].Published).After(parseTimestamp(articles[j].Published))
		})
	default:
		type ranked struct {
			article Article
			rank    int
		}
		decorated := make([]ranked, len(articles))
		for i, a := range articles {
			decorated[i] = ranked{article: a, rank: priorityRank(a.Source, priorityList)}
		}
		sort.SliceStable(decorated, func(i, j int) bool {
			return decorated[i].rank < decorated[j].rank
		})
		for i := range decorated {
			articles[i] = decorated[i].article
		}
	}
}

// priorityRank is the index of the first priority entry that is a
// case-insensitive substring match (either direction) of the source name.
// Sources matching no entry rank after all matches.
func priorityRank(source string, priorityList []string) int {
	s := strings.ToLower(source)
	for i, p := range priorityList {
		p = strings.ToLower(p)
		if strings.Contains(s, p) || strings.Contains(p, s) {
			return i
		}
	}
	return len(priorityList)
}

// parseTimestamp interprets the free-form published field as an RFC 3339
// instant where possible. Anything unparseable becomes the zero time, which
// sorts after every valid timestamp under the descending time policy.
func parseTimestamp(published string) time.Time {
	if published == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, published); err == nil {
		return ts
	}
	return time.Time{}
}
