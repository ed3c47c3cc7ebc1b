// ABOUTME: Portuguese collation for name-ordered listings
// ABOUTME: Matches the locale-aware ordering the browser UI always showed

package store

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ptCollator orders names the Brazilian-Portuguese way, case-insensitively.
// Only used while holding the store mutex; collators are not safe for
// concurrent use.
var ptCollator = collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
