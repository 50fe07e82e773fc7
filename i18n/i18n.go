// Package i18n localizes parrot's own user-facing strings (section
// hints, status messages) via gotext. Translations are embedded in the
// binary and loaded once at startup with Init().
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the translation catalogs, laid out as
// locales/{lang}/LC_MESSAGES/parrot.po.
//
//go:embed all:locales
var locales embed.FS

const domain = "parrot"

var locale *gotext.Locale

// Init loads the translation catalog for lang. An empty lang
// auto-detects from the environment. Call once before any T or N.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	locale = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// T translates msgid, returning it unchanged when no translation is
// loaded (gettext passthrough).
func T(msgid string) string {
	if locale == nil {
		return msgid
	}
	return locale.Get(msgid)
}

// N translates with plural forms selected by n.
func N(singular, plural string, n int) string {
	if locale == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return locale.GetN(singular, plural, n)
}

// detectLanguage follows the GNU gettext environment priority:
// LANGUAGE > LC_ALL > LC_MESSAGES > LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE is a colon-separated preference list; take the head.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Drop the encoding suffix ("zh_CN.UTF-8" -> "zh_CN").
		val, _, _ = strings.Cut(val, ".")
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
