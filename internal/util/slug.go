// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)

	// validSlug is the canonical slug shape: lowercase alphanumeric
	// segments joined by single hyphens.
	validSlug = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// stripMarks decomposes accented characters and removes the combining
// marks, turning "café" into "cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a string to a URL-friendly slug. Arabic and other
// non-Latin input is transliterated to ASCII first, so "عصير برتقال"
// becomes "syr-brtql" (unidecode drops the alif) rather than an empty
// slug. The result is lowercase with hyphens separating words; it may
// be empty when the input contains nothing transliterable.
func Slugify(s string) string {
	s, _, _ = transform.String(stripMarks, s)

	// Transliterate remaining non-ASCII (Arabic, Cyrillic, CJK...)
	s = unidecode.Unidecode(s)

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is already in canonical slug form and
// can be stored without running it through Slugify.
func IsValidSlug(s string) bool {
	return validSlug.MatchString(s)
}
