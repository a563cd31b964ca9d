// Package lang normalizes language tags threaded through every
// language-sensitive stage.
package lang

import "strings"

// Fallback is the only implicit language default any stage may assume.
const Fallback = "en"

// Normalize canonicalizes a language tag: "RO-ro" becomes "ro-RO",
// "EN" becomes "en". Blank input yields the fallback tag.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Fallback
	}
	parts := strings.Split(strings.ReplaceAll(tag, "_", "-"), "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) > 1 {
		parts[1] = strings.ToUpper(parts[1])
		return parts[0] + "-" + parts[1]
	}
	return parts[0]
}

// Base returns the language part of a tag: "ro-RO" becomes "ro".
func Base(tag string) string {
	normalized := Normalize(tag)
	if i := strings.IndexByte(normalized, '-'); i > 0 {
		return normalized[:i]
	}
	return normalized
}
