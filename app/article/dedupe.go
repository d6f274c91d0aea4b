package article

import (
	"golang.org/x/text/cases"
)

// TitleKeyLength is the number of runes of the case-folded title used as
// the near-duplicate key.
const TitleKeyLength = 50

var titleFolder = cases.Fold()

// TitleKey returns the case-folded title prefix used for deduplication.
func TitleKey(title string) string {
	folded := titleFolder.String(title)
	runes := []rune(folded)
	if len(runes) > TitleKeyLength {
		runes = runes[:TitleKeyLength]
	}
	return string(runes)
}

// Dedupe drops near-duplicate articles, keeping the first occurrence of
// each title key in input order. Which duplicate survives therefore depends
// on the order results were collected.
func Dedupe(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]Article, 0, len(articles))

	for _, a := range articles {
		key := TitleKey(a.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, a)
	}

	return unique
}
