package security

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s`)

// ClientKey возвращает идентификатор клиента для rate limit:
// первый адрес из X-Forwarded-For, затем X-Real-IP, затем адрес соединения.
// В разработке без прокси-заголовков ключ строится из User-Agent, чтобы локальные клиенты не делили один счетчик.
func ClientKey(r *http.Request, development bool) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
		return "unknown"
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if development {
		userAgent := r.UserAgent()
		if userAgent == "" {
			userAgent = "unknown"
		}
		if len(userAgent) > 20 {
			userAgent = userAgent[:20]
		}
		return "dev-" + whitespace.ReplaceAllString(userAgent, "-")
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}

	return "unknown"
}
