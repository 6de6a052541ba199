package config

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

type I18n struct {
	Locales               []Locale              `mapstructure:"locales"`
	Lazy                  bool                  `mapstructure:"lazy"`
	LangDir               string                `mapstructure:"langDir"`
	DefaultLocale         string                `mapstructure:"defaultLocale"`
	FallbackLocale        string                `mapstructure:"fallbackLocale"`
	DetectBrowserLanguage DetectBrowserLanguage `mapstructure:"detectBrowserLanguage"`
}

type Locale struct {
	Code string `mapstructure:"code"`
	ISO  string `mapstructure:"iso"`
	File string `mapstructure:"file"`
	Dir  string `mapstructure:"dir"`
}

type DetectBrowserLanguage struct {
	UseCookie  bool   `mapstructure:"useCookie"`
	CookieKey  string `mapstructure:"cookieKey"`
	RedirectOn string `mapstructure:"redirectOn"`
}

const localeCookieMaxAge = 365 * 24 * time.Hour

// Lookup finds a configured locale by its code.
func (i I18n) Lookup(code string) (Locale, bool) {
	for _, l := range i.Locales {
		if strings.EqualFold(l.Code, code) {
			return l, true
		}
	}
	return Locale{}, false
}

// Default returns the default locale, or the first configured one.
func (i I18n) Default() Locale {
	if l, ok := i.Lookup(i.DefaultLocale); ok {
		return l
	}
	if len(i.Locales) > 0 {
		return i.Locales[0]
	}
	return Locale{Code: i.DefaultLocale, Dir: "ltr"}
}

// Resolve picks the locale for a request: the locale cookie first, then the
// Accept-Language header, then the default locale.
func (i I18n) Resolve(r *http.Request) Locale {
	if r == nil {
		return i.Default()
	}

	if i.DetectBrowserLanguage.UseCookie {
		if cookie, err := r.Cookie(i.DetectBrowserLanguage.CookieKey); err == nil {
			if l, ok := i.Lookup(strings.TrimSpace(cookie.Value)); ok {
				return l
			}
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			if l, ok := i.match(tags); ok {
				return l
			}
		}
	}

	return i.Default()
}

// HasCookie reports whether the request already carries a valid locale cookie.
func (i I18n) HasCookie(r *http.Request) bool {
	if !i.DetectBrowserLanguage.UseCookie {
		return false
	}
	cookie, err := r.Cookie(i.DetectBrowserLanguage.CookieKey)
	if err != nil {
		return false
	}
	_, ok := i.Lookup(cookie.Value)
	return ok
}

// SetCookie persists the locale choice when cookie detection is enabled.
func (i I18n) SetCookie(w http.ResponseWriter, l Locale) {
	if !i.DetectBrowserLanguage.UseCookie || w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     i.DetectBrowserLanguage.CookieKey,
		Value:    l.Code,
		Path:     "/",
		MaxAge:   int(localeCookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func (i I18n) match(tags []language.Tag) (Locale, bool) {
	for _, tag := range tags {
		base, _ := tag.Base()
		for _, l := range i.Locales {
			if strings.EqualFold(base.String(), l.Code) || strings.EqualFold(base.String(), isoLanguage(l.ISO)) {
				return l, true
			}
		}
	}
	return Locale{}, false
}

func isoLanguage(iso string) string {
	lang, _, _ := strings.Cut(iso, "-")
	return lang
}
