package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"golang.org/x/text/language"

	"budgetsummary/services"
)

type contextKey string

const LanguageKey contextKey = "budgetLanguage"

// languageMatcher prefers Spanish, the language of the original form.
var languageMatcher = language.NewMatcher([]language.Tag{
	services.LangES.Tag(),
	services.LangEN.Tag(),
})

// GetLanguage extracts the resolved document language from the request
// context, falling back to Spanish.
func GetLanguage(r *http.Request) services.Language {
	if val, ok := r.Context().Value(LanguageKey).(services.Language); ok {
		return val
	}
	return services.LangES
}

// ResolveLanguage picks the document language for a request: the "lang"
// query parameter when it names a supported language, then the best match
// for Accept-Language, then fallback.
func ResolveLanguage(r *http.Request, fallback services.Language) services.Language {
	if q := r.URL.Query().Get("lang"); q != "" {
		if lang, err := services.ParseLanguage(q); err == nil {
			return lang
		}
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			_, idx, conf := languageMatcher.Match(tags...)
			if conf != language.No {
				return services.SupportedLanguages[idx]
			}
		}
	}

	return fallback
}

// LanguageMiddleware resolves the document language once per request and
// stores it in the request context for handlers.
func LanguageMiddleware(fallback services.Language) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lang := ResolveLanguage(e.Request, fallback)
		ctx := context.WithValue(e.Request.Context(), LanguageKey, lang)
		e.Request = e.Request.WithContext(ctx)
		e.Response.Header().Add("Vary", "Accept-Language")
		return e.Next()
	}
}
