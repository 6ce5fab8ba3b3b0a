package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const localeKey = "locale"

// Locale resolves the display locale for the request. A signed-in user's
// stored preference wins; anonymous requests and users without a
// preference fall back to Accept-Language negotiation against the
// supported set.
func Locale(supported []string, defaultLocale string) gin.HandlerFunc {
	tags := make([]language.Tag, 0, len(supported))
	for _, loc := range supported {
		tags = append(tags, language.Make(loc))
	}
	matcher := language.NewMatcher(tags)

	return func(c *gin.Context) {
		locale := defaultLocale

		if caller := CallerFromContext(c); caller != nil && caller.PreferredLocale != "" {
			for _, loc := range supported {
				if caller.PreferredLocale == loc {
					locale = loc
				}
			}
		} else if header := c.GetHeader("Accept-Language"); header != "" {
			if prefs, _, err := language.ParseAcceptLanguage(header); err == nil {
				_, index, _ := matcher.Match(prefs...)
				locale = supported[index]
			}
		}

		c.Set(localeKey, locale)
		c.Header("Content-Language", locale)
		c.Next()
	}
}

// LocaleFromContext returns the locale resolved for the request.
func LocaleFromContext(c *gin.Context) string {
	val, exists := c.Get(localeKey)
	if !exists {
		return ""
	}
	locale, _ := val.(string)
	return locale
}
