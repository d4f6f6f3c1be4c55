package compositor

import "strings"

// MeasureFunc returns the rendered pixel width of a string.
type MeasureFunc func(s string) float64

// Wrap greedily packs words into lines so that every line measures at
// most maxWidth. A single word wider than maxWidth is left alone on its
// own line, unmodified.
func Wrap(measure MeasureFunc, body string, maxWidth float64) []string {
	words := strings.Fields(body)

	var lines []string
	var current []string

	for _, word := range words {
		test := word
		if len(current) > 0 {
			test = strings.Join(current, " ") + " " + word
		}

		if measure(test) <= maxWidth {
			current = append(current, word)
			continue
		}

		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		} else {
			// Слово само по себе шире строки — оставляем как есть
			lines = append(lines, word)
		}
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	return lines
}
