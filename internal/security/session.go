package security

import (
	"context"
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/ports"
	"course-platform-auth/internal/util"
	"fmt"
	"net/http"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// SessionResolver восстанавливает пользователя из access cookie без обращения к БД.
// Если задан denylist, отозванные при выходе access токены отклоняются до истечения срока.
type SessionResolver struct {
	verifier TokenVerifier
	denylist ports.TokenDenylist
}

func NewSessionResolver(verifier TokenVerifier, denylist ports.TokenDenylist) *SessionResolver {
	return &SessionResolver{verifier: verifier, denylist: denylist}
}

// ResolveCurrent возвращает nil для анонимного запроса, невалидного токена или токена не того типа
func (s *SessionResolver) ResolveCurrent(r *http.Request) *model.SessionUser {
	token := AccessToken(r)
	if token == "" {
		return nil
	}

	payload, err := VerifyKind(s.verifier, token, model.TokenKindAccess)
	if err != nil {
		return nil
	}

	if s.denylist != nil && payload.ID != "" {
		revoked, err := s.denylist.Contains(r.Context(), payload.ID)
		if err != nil {
			util.Logger().Error("не удалось проверить denylist access токенов", "error", err)
			return nil
		}
		if revoked {
			return nil
		}
	}

	return &model.SessionUser{
		ID:    payload.Subject,
		Email: payload.Email,
		Role:  payload.Role,
	}
}

func (s *SessionResolver) RequireAdmin(r *http.Request) (*model.SessionUser, error) {
	user := s.ResolveCurrent(r)
	if user == nil {
		return nil, fmt.Errorf("%w: нет сессии", model.ErrForbidden)
	}
	if !user.IsAdmin() {
		return nil, fmt.Errorf("%w: требуется роль администратора", model.ErrForbidden)
	}
	return user, nil
}

// Authenticate пропускает только запросы с действующей сессией (401)
func (s *SessionResolver) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.ResolveCurrent(r)
		if user == nil {
			util.HandleError(w, "не авторизован", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSessionUser(r.Context(), user)))
	})
}

// RequireAdminMiddleware пропускает только администраторов. Любой отказ отдается как 403.
func (s *SessionResolver) RequireAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.RequireAdmin(r)
		if err != nil {
			util.HandleError(w, "доступ запрещён", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSessionUser(r.Context(), user)))
	})
}

func WithSessionUser(ctx context.Context, user *model.SessionUser) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func SessionUserFromContext(ctx context.Context) (*model.SessionUser, error) {
	user, ok := ctx.Value(UserContextKey).(*model.SessionUser)
	if !ok || user == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return user, nil
}
