package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeCity folds a city (or neighborhood) name into a stable grouping
// key: diacritics stripped, case folded, whitespace collapsed. "São Paulo"
// and "sao  paulo" normalize to the same key.
func NormalizeCity(s string) string {
	folded, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// locationKey groups jobs at city+neighborhood granularity. Jobs sharing a
// key are never split across technicians.
func locationKey(city, neighborhood string) string {
	return NormalizeCity(city) + "|" + NormalizeCity(neighborhood)
}

// jobCity extracts the normalized city of a job, preferring the structured
// field and falling back to a best-effort parse of the free-text address
// ("Rua X, 123 - Centro, Curitiba - PR" yields "curitiba").
func jobCity(city, address string) string {
	if c := NormalizeCity(city); c != "" {
		return c
	}

	segments := strings.Split(address, ",")
	last := strings.TrimSpace(segments[len(segments)-1])
	if last == "" {
		return ""
	}

	// Drop a trailing state suffix such as " - PR".
	if i := strings.LastIndex(last, " - "); i >= 0 {
		last = last[:i]
	}

	return NormalizeCity(last)
}
