package usecase

import (
	"regexp"
	"strings"
)

// Compiled regex patterns for name normalization
var (
	// Matches a standalone vintage year token (1900-2099).
	vintageYearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	// Matches punctuation to be replaced with spaces during normalization.
	namePunctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

	// Multiple spaces cleanup
	nameMultiSpaceRegex = regexp.MustCompile(`\s+`)
)

// diacriticFold maps common Latin accented characters to their plain ASCII
// form. Wine names mix French, Italian, Spanish, German and Swedish spelling
// and users rarely type the accents.
var diacriticFold = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a", "å", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// foldDiacritics lowercases s and folds accented characters to plain ASCII.
func foldDiacritics(s string) string {
	return diacriticFold.Replace(strings.ToLower(s))
}

// stripVintageYear removes any standalone 4-digit year token and trims the
// remainder.
func stripVintageYear(s string) string {
	return strings.TrimSpace(nameMultiSpaceRegex.ReplaceAllString(
		vintageYearRegex.ReplaceAllString(s, " "), " "))
}

// extractVintageYear returns the first standalone 4-digit year token in s,
// or "" if none is present.
func extractVintageYear(s string) string {
	return vintageYearRegex.FindString(s)
}

// normalizeWineName produces the canonical comparison form of a wine name:
// diacritics folded, vintage year removed, punctuation replaced with spaces,
// whitespace collapsed, lowercased.
func normalizeWineName(name string) string {
	s := foldDiacritics(name)
	s = vintageYearRegex.ReplaceAllString(s, " ")
	s = namePunctuationRegex.ReplaceAllString(s, " ")
	s = nameMultiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// nameTokens splits a normalized name into tokens longer than two
// characters. Short tokens ("de", "la", "di") carry no identity.
func nameTokens(normalized string) []string {
	var tokens []string
	for _, tok := range strings.Fields(normalized) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// containsFold reports whether haystack contains needle, case-insensitively.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
