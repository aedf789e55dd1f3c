package model

import "time"

type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPayload : проверенное содержимое подписанного токена
type TokenPayload struct {
	ID        string
	Subject   string
	Email     string
	Role      Role
	Kind      TokenKind
	ExpiresAt time.Time
}

// RefreshToken : единственный действующий refresh токен пользователя
type RefreshToken struct {
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// TokensPair содержит пару access и refresh токенов
type TokensPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthResult : результат успешного входа, регистрации или обновления токенов
type AuthResult struct {
	User   *User
	Tokens *TokensPair
}
