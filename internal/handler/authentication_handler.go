package handler

import (
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/model/requestresponse"
	"course-platform-auth/internal/ports"
	"course-platform-auth/internal/security"
	"course-platform-auth/internal/util"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RateLimitPolicy : сколько попыток разрешено за окно
type RateLimitPolicy struct {
	Limit  int
	Window time.Duration
}

type AuthenticationHandlerConfig struct {
	Login       RateLimitPolicy
	Register    RateLimitPolicy
	Development bool
}

type AuthenticationHandler struct {
	ports.AuthenticationService
	limiter ports.RateLimiter
	csrf    *security.CSRFGuard
	cookies *security.CookieManager
	cfg     AuthenticationHandlerConfig
	now     func() time.Time
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	limiter ports.RateLimiter,
	csrf *security.CSRFGuard,
	cookies *security.CookieManager,
	cfg AuthenticationHandlerConfig,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		AuthenticationService: authenticationService,
		limiter:               limiter,
		csrf:                  csrf,
		cookies:               cookies,
		cfg:                   cfg,
		now:                   time.Now,
	}
}

// CsrfToken godoc
// @Summary Выдача csrf токена
// @Description Кладет новый csrf токен в cookie csrfToken и возвращает его в теле. Клиент отправляет его в заголовке x-csrf-token.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.CsrfTokenResponse
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/csrf-token [get]
func (h *AuthenticationHandler) CsrfToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrf.Issue()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.csrf.Attach(w, token)

	util.WriteJSON(w, http.StatusOK, requestresponse.CsrfTokenResponse{CsrfToken: token})
}

// Login godoc
// @Summary Вход по email и паролю
// @Description Проверяет лимит попыток и csrf токен, выставляет cookie accessToken, refreshToken и новый csrfToken
// @Tags Authentication
// @Accept json
// @Produce json
// @Param x-csrf-token header string true "Значение cookie csrfToken"
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный email или пароль"
// @Failure 403 {object} requestresponse.ErrorResponse "Неверный csrf токен"
// @Failure 429 {object} requestresponse.ErrorResponse "Слишком много попыток"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, "login", h.cfg.Login) {
		return
	}
	if !h.csrf.Verify(r) {
		writeServiceError(w, model.ErrCSRFMismatch)
		return
	}

	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	result, err := h.AuthenticationService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	csrfToken, err := h.startSession(w, result.Tokens)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.AuthResponse{
		User:      toUserSummary(result.User),
		CsrfToken: csrfToken,
	})
}

// Register godoc
// @Summary Регистрация
// @Description Создает пользователя с ролью USER и сразу выполняет вход. Роль от клиента не принимается.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param x-csrf-token header string true "Значение cookie csrfToken"
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 403 {object} requestresponse.ErrorResponse "Неверный csrf токен"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже используется"
// @Failure 429 {object} requestresponse.ErrorResponse "Слишком много попыток"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, "register", h.cfg.Register) {
		return
	}
	if !h.csrf.Verify(r) {
		writeServiceError(w, model.ErrCSRFMismatch)
		return
	}

	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	result, err := h.AuthenticationService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	csrfToken, err := h.startSession(w, result.Tokens)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.AuthResponse{
		User:      toUserSummary(result.User),
		CsrfToken: csrfToken,
	})
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Обменивает refresh токен из cookie на новую пару. Старый refresh токен перестает действовать.
// @Tags Authentication
// @Produce json
// @Param x-csrf-token header string true "Значение cookie csrfToken"
// @Success 200 {object} requestresponse.RefreshResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Refresh токен отсутствует, невалиден или отозван"
// @Failure 403 {object} requestresponse.ErrorResponse "Неверный csrf токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	if !h.csrf.Verify(r) {
		writeServiceError(w, model.ErrCSRFMismatch)
		return
	}

	refreshToken := security.RefreshToken(r)
	if refreshToken == "" {
		sendErrorResponse(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	result, err := h.AuthenticationService.Refresh(r.Context(), refreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	csrfToken, err := h.startSession(w, result.Tokens)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.RefreshResponse{OK: true, CsrfToken: csrfToken})
}

// Logout godoc
// @Summary Завершение сессии
// @Description Отзывает refresh токен, если его удается прочитать, и очищает все cookie. После проверки csrf всегда отвечает 200.
// @Tags Authentication
// @Produce json
// @Param x-csrf-token header string true "Значение cookie csrfToken"
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Неверный csrf токен"
// @Router /auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if !h.csrf.Verify(r) {
		writeServiceError(w, model.ErrCSRFMismatch)
		return
	}

	err := h.AuthenticationService.Logout(r.Context(), security.RefreshToken(r), security.AccessToken(r))
	if err != nil {
		// выход на клиенте важнее серверной бухгалтерии
		util.Logger().Warn("не удалось отозвать токены при выходе", "error", err)
	}

	h.cookies.ClearAuthCookies(w)
	h.csrf.Clear(w)

	util.WriteJSON(w, http.StatusOK, requestresponse.LogoutResponse{OK: true})
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Description Возвращает пользователя, которому принадлежит access токен из cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/me [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	sessionUser, err := security.SessionUserFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	user, err := h.AuthenticationService.CurrentUser(r.Context(), sessionUser.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			sendErrorResponse(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.CurrentUserResponse{User: toUserSummary(user)})
}

// allow проверяет лимит попыток. Счетчики входа и регистрации раздельные.
func (h *AuthenticationHandler) allow(w http.ResponseWriter, r *http.Request, action string, policy RateLimitPolicy) bool {
	clientKey := action + ":" + security.ClientKey(r, h.cfg.Development)

	result, err := h.limiter.Check(r.Context(), clientKey, policy.Limit, policy.Window)
	if err != nil {
		writeServiceError(w, err)
		return false
	}

	if !result.Allowed {
		retryAfter := math.Ceil(result.ResetAt.Sub(h.now()).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)))
		writeServiceError(w, model.ErrRateLimited)
		return false
	}

	return true
}

// startSession выставляет cookie новой пары токенов и меняет csrf токен
func (h *AuthenticationHandler) startSession(w http.ResponseWriter, tokens *model.TokensPair) (string, error) {
	csrfToken, err := h.csrf.Issue()
	if err != nil {
		return "", err
	}

	h.cookies.SetAuthCookies(w, tokens.AccessToken, tokens.RefreshToken)
	h.csrf.Attach(w, csrfToken)

	return csrfToken, nil
}
