// Package i18n localizes the messages stringsync prints (not the Android
// resources it writes). Catalogs are gettext .po files embedded from
// locales/<lang>/LC_MESSAGES/stringsync.po and read with gotext.
//
// The language comes from STRINGSYNC_LANG when set, and from the usual
// gettext variables otherwise. A regional locale without its own catalog
// uses the catalog of its base language, so ar_EG.UTF-8 gets Arabic.
package i18n

import (
	"embed"
	"io/fs"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

const domain = "stringsync"

// EnvLang overrides the message language for stringsync only, without
// touching LANG for the rest of the environment.
const EnvLang = "STRINGSYNC_LANG"

var po *gotext.Locale

// Init selects the message catalog. An empty lang is detected from the
// environment. Call it once before T or N.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	lang = catalogLanguage(lang)

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid, returning it unchanged when no translation exists.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage returns the first usable value of STRINGSYNC_LANG,
// LANGUAGE, LC_ALL, LC_MESSAGES and LANG, or "en".
func detectLanguage() string {
	for _, env := range []string{EnvLang, "LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// "ru_RU.UTF-8" -> "ru_RU"
		val, _, _ = strings.Cut(val, ".")
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}

// catalogLanguage maps lang to the embedded catalog directory to load:
// lang itself when it has one, else its base language ("ar_EG" -> "ar",
// "pt-BR" -> "pt"). Languages without any catalog are returned as is.
func catalogLanguage(lang string) string {
	if hasCatalog(lang) {
		return lang
	}
	if base, _, ok := strings.Cut(strings.ReplaceAll(lang, "-", "_"), "_"); ok && hasCatalog(base) {
		return base
	}
	return lang
}

func hasCatalog(lang string) bool {
	_, err := fs.Stat(locales, "locales/"+lang+"/LC_MESSAGES/"+domain+".po")
	return err == nil
}
