// Package i18n picks the storefront language and holds the user-visible messages.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	Bangla  Lang = "bn"
	English Lang = "en"
)

// Default language of the storefront.
const Default = Bangla

var matcher = language.NewMatcher([]language.Tag{
	language.Bengali, // first entry is the fallback
	language.English,
})

// FromRequest resolves the language from an explicit ?lang= value, falling back
// to the Accept-Language header and finally to Bangla.
func FromRequest(acceptLanguage, queryLang string) Lang {
	if queryLang = strings.TrimSpace(queryLang); queryLang != "" {
		if lang, ok := match(queryLang); ok {
			return lang
		}
	}
	if acceptLanguage != "" {
		if lang, ok := match(acceptLanguage); ok {
			return lang
		}
	}
	return Default
}

func match(raw string) (Lang, bool) {
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	tag, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, true
	case "bn":
		return Bangla, true
	}
	return "", false
}

// T returns the message for key in lang. Unknown keys are returned as-is.
func T(lang Lang, key string) string {
	if msgs, ok := messages[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[Default][key]; ok {
		return msg
	}
	return key
}
