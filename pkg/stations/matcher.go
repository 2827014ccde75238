package stations

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hzpp/hzpp/pkg/model"
)

// stripMarks decomposes characters and drops the combining marks, so that
// "Koprivnica Gradić" and "Koprivnica Gradic" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeTokens(input string) []string {
	lowered := strings.ToLower(input)

	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	cleaned := strings.NewReplacer(".", "", ",", "").Replace(stripped)

	return strings.Fields(cleaned)
}

// MatchName finds the station whose name fuzzy-matches the given free text.
// Both sides are lower-cased, stripped of diacritics and of "."/",", and
// tokenized; a station matches when it has the same number of tokens and
// every one of its tokens starts with the corresponding input token. The
// prefix rule accepts timetable abbreviations such as "Zagreb Gl. kol."
// against the directory's full names. The first match in directory order
// wins; no match returns nil.
func MatchName(stations []model.Station, name string) *model.Station {
	inputTokens := normalizeTokens(name)

	for _, station := range stations {
		stationTokens := normalizeTokens(station.Name)

		if len(inputTokens) != len(stationTokens) {
			continue
		}

		matched := true
		for i, token := range inputTokens {
			if !strings.HasPrefix(stationTokens[i], token) {
				matched = false
				break
			}
		}

		if matched {
			match := station
			return &match
		}
	}

	return nil
}
