// Package i18n provides localized message lookup with placeholder substitution.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // first tag is the fallback
	language.Urdu,
}

var matcher = language.NewMatcher(supported)

// Match resolves an Accept-Language header value to a supported language code
// ("en" or "ur"). Empty or unrecognized input falls back to English.
func Match(acceptLanguage string) string {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if base.String() == "ur" {
		return "ur"
	}
	return "en"
}

// T looks up key in the catalog for lang and substitutes {placeholder} args.
// A missing key returns the key itself so callers never render an empty string.
func T(lang, key string, args map[string]string) string {
	cat, ok := catalogs[lang]
	if !ok {
		cat = catalogs["en"]
	}
	msg, ok := cat[key]
	if !ok {
		if msg, ok = catalogs["en"][key]; !ok {
			return key
		}
	}
	for k, v := range args {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}
