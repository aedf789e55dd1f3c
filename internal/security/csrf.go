package security

import (
	"course-platform-auth/internal/util"
	"net/http"

	"github.com/google/uuid"
)

// CSRFGuard реализует double-submit cookie: значение из cookie, доступной скрипту,
// должно совпасть со значением заголовка x-csrf-token того же запроса.
// Серверного реестра токенов нет, токен меняется при каждом входе, обновлении и выходе.
type CSRFGuard struct {
	secure bool
}

func NewCSRFGuard(production bool) *CSRFGuard {
	return &CSRFGuard{secure: production}
}

// Issue возвращает 128 случайных бит в формате UUID
func (g *CSRFGuard) Issue() (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", util.LogError("не удалось сгенерировать csrf токен", err)
	}
	return token.String(), nil
}

// Attach кладет токен в cookie без HttpOnly: клиент должен прочитать его и отправить в заголовке
func (g *CSRFGuard) Attach(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if g.secure {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(csrfCookieTTL.Seconds()),
		HttpOnly: false,
		Secure:   g.secure,
		SameSite: sameSite,
	})
}

func (g *CSRFGuard) Verify(r *http.Request) bool {
	header := r.Header.Get(CSRFHeaderName)
	cookie := cookieValue(r, CSRFCookieName)
	if header == "" || cookie == "" {
		return false
	}
	return header == cookie
}

func (g *CSRFGuard) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   CSRFCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// Middleware отклоняет запросы с несовпадающим csrf токеном (403)
func (g *CSRFGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Verify(r) {
			util.HandleError(w, CSRFFailureMessage, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CSRFFailureMessage одинаково для отсутствующей cookie, отсутствующего заголовка и несовпадения
const CSRFFailureMessage = "неверный токен защиты, обновите страницу и попробуйте снова"
