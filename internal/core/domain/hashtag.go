package domain

import (
	"regexp"
	"sort"
	"strings"
)

// hashtagPattern matches a '#' followed by one or more word characters.
var hashtagPattern = regexp.MustCompile(`#\w+`)

// HashtagCount pairs a lowercased hashtag (with its leading '#') with the
// number of occurrences seen.
type HashtagCount struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}

// ExtractHashtags returns all lowercased hashtags in text, in order of
// appearance. Duplicates are kept.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.ToLower(m)
	}
	return matches
}

// TallyHashtags counts hashtag occurrences across texts. The result preserves
// first-seen order so later stable sorts break count ties by insertion order.
func TallyHashtags(texts []string) []HashtagCount {
	counts := make(map[string]int)
	var order []string
	for _, text := range texts {
		for _, tag := range ExtractHashtags(text) {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	tally := make([]HashtagCount, 0, len(order))
	for _, tag := range order {
		tally = append(tally, HashtagCount{Hashtag: tag, Count: counts[tag]})
	}
	return tally
}

// TopHashtags sorts the tally by descending count (stable, so first-seen
// order breaks ties) and truncates to limit.
func TopHashtags(tally []HashtagCount, limit int) []HashtagCount {
	sorted := make([]HashtagCount, len(tally))
	copy(sorted, tally)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
