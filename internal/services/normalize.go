package services

import (
	"strconv"
	"strings"

	"catalog-service/internal/models"
)

// normalizeLength converts a length cell to millimeter text. Values marked
// "mm" keep their numeric text; values marked "m" and bare numbers are
// meters and get multiplied by 1000. Blank or unparseable input yields ""
// (no value), never an error.
func normalizeLength(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ""
	}

	if strings.Contains(v, "mm") {
		v = stripUnitMarkers(v)
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return ""
		}
		return v
	}

	if strings.Contains(v, "m") {
		v = stripUnitMarkers(v)
	}

	num, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(num*1000, 'f', -1, 64)
}

func stripUnitMarkers(v string) string {
	v = strings.ReplaceAll(v, "mm", "")
	v = strings.ReplaceAll(v, "m", "")
	return strings.TrimSpace(v)
}

// splitDelimited splits a multi-value cell on commas. A pair of double
// quotes escapes embedded commas, so `"Cat A","Cat, B",CatC` yields three
// tokens. Tokens are trimmed and empty tokens dropped.
func splitDelimited(value string) []string {
	if value == "" {
		return nil
	}

	// Fast path: no quoting anywhere, a plain split is equivalent.
	if !strings.Contains(value, `"`) {
		return trimTokens(strings.Split(value, ","))
	}

	var tokens []string
	var current strings.Builder
	inQuotes := false
	for _, r := range value {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			tokens = append(tokens, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	tokens = append(tokens, current.String())
	return trimTokens(tokens)
}

func trimTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeAvailability canonicalizes the stock/on-demand cell. Anything
// unrecognized, including blank, defaults to on demand.
func normalizeAvailability(value string) models.Availability {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "s":
		return models.AvailabilityStock
	case "o":
		return models.AvailabilityOnDemand
	}
	if strings.Contains(v, "stock") {
		return models.AvailabilityStock
	}
	if strings.Contains(v, "on demand") || strings.Contains(v, "on-demand") || strings.Contains(v, "ondemand") {
		return models.AvailabilityOnDemand
	}
	return models.AvailabilityOnDemand
}
