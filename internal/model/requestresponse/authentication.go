package requestresponse

// LoginRequest : тело запроса на вход
type LoginRequest struct {
	Email    string `json:"email" example:"test@example.com"`
	Password string `json:"password" example:"test123456"`
}

// RegisterRequest : тело запроса регистрации. Роль клиент не передает.
type RegisterRequest struct {
	Name     string `json:"name" example:"Test User"`
	Email    string `json:"email" example:"test@example.com"`
	Password string `json:"password" example:"test123456"`
}

// UserSummary : краткие данные пользователя в ответах
type UserSummary struct {
	ID    string `json:"id" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Name  string `json:"name,omitempty" example:"Test User"`
	Email string `json:"email" example:"test@example.com"`
	Role  string `json:"role" example:"USER"`
}

// AuthResponse : ответ на успешный вход или регистрацию
type AuthResponse struct {
	User      UserSummary `json:"user"`
	CsrfToken string      `json:"csrfToken" example:"3f1c0e...9a"`
}

// CsrfTokenResponse : новый csrf токен
type CsrfTokenResponse struct {
	CsrfToken string `json:"csrfToken" example:"3f1c0e...9a"`
}

// RefreshResponse : ответ на успешное обновление токенов
type RefreshResponse struct {
	OK        bool   `json:"ok" example:"true"`
	CsrfToken string `json:"csrfToken" example:"3f1c0e...9a"`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	OK bool `json:"ok" example:"true"`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	User UserSummary `json:"user"`
}
