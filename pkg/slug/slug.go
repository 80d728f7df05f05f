// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Collections get a slug derived from their name (e.g. "Seinen Favourites" becomes
// "seinen-favourites") for shareable, readable links.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiHyphen collapses runs of separators into one hyphen.
var multiHyphen = regexp.MustCompile(`-{2,}`)

// Fallback is returned when a name has no ASCII letters or digits at all (e.g. "進撃の巨人").
const Fallback = "collection"

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. NFKD decomposition, then combining marks are dropped (é becomes e).
//  2. Lowercase.
//  3. Anything outside [a-z0-9] becomes a hyphen.
//  4. Hyphen runs collapse and edges are trimmed.
func From(s string) string {
	chain := transform.Chain(norm.NFKD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(chain, s)
	if err != nil {
		result = s
	}

	result = strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, result)

	result = strings.Trim(multiHyphen.ReplaceAllString(result, "-"), "-")
	if result == "" {
		return Fallback
	}
	return result
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
