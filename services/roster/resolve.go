package roster

import (
	"github.com/antzucaro/matchr"

	"fantassist-backend/lib/scrapers/fantacalcio"
)

// ResolvedPlayer pairs a roster name with the scraped listing entry it
// most likely refers to. Correlation is 1 for an exact name match and
// the Jaro-Winkler similarity otherwise.
type ResolvedPlayer struct {
	Name        string
	Link        fantacalcio.PlayerLink
	Correlation float64
}

// ResolvePlayers matches roster names against the scraped listing.
// Exact matches are claimed first, every remaining name then takes the
// most similar unclaimed listing entry. Names with no candidate left
// are omitted.
func ResolvePlayers(names []string, links []fantacalcio.PlayerLink) []ResolvedPlayer {
	var result []ResolvedPlayer
	matchedNames := make(map[string]struct{})
	matchedLinks := make(map[string]struct{})

	for _, name := range names {
		for _, link := range links {
			_, taken := matchedLinks[link.Link]
			if taken {
				continue
			}
			if name == link.Name {
				result = append(result, ResolvedPlayer{
					Name:        name,
					Link:        link,
					Correlation: 1,
				})
				matchedNames[name] = struct{}{}
				matchedLinks[link.Link] = struct{}{}
				break
			}
		}
	}

	for _, name := range names {
		_, done := matchedNames[name]
		if done {
			continue
		}

		var mostSimilarity float64
		var mostSimilar fantacalcio.PlayerLink

		for _, link := range links {
			_, taken := matchedLinks[link.Link]
			if taken {
				continue
			}

			similarity := matchr.JaroWinkler(name, link.Name, false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilar = link
			}
		}

		if mostSimilarity > 0 {
			result = append(result, ResolvedPlayer{
				Name:        name,
				Link:        mostSimilar,
				Correlation: mostSimilarity,
			})
			matchedNames[name] = struct{}{}
			matchedLinks[mostSimilar.Link] = struct{}{}
		}
	}

	return result
}
