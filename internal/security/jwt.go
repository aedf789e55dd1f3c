package security

import (
	"course-platform-auth/config"
	"course-platform-auth/internal/model"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	Email string          `json:"email"`
	Role  model.Role      `json:"role"`
	Kind  model.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TokenCodec подписывает access и refresh токены общим секретом (HS512).
// Отзыва access токенов на стороне сервера нет, срок жизни задается полем exp.
type TokenCodec struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type CodecOption func(*TokenCodec)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

func NewTokenCodec(secret config.SigningSecret, cfg *config.JWTConfig, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) < config.MinSecretLength {
		return nil, fmt.Errorf("секрет подписи короче %d байт", config.MinSecretLength)
	}

	accessTTL, err := parseTTL(cfg.AccessTokenTTL, defaultAccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга access_token_ttl: %w", err)
	}
	refreshTTL, err := parseTTL(cfg.RefreshTokenTTL, defaultRefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга refresh_token_ttl: %w", err)
	}

	codec := &TokenCodec{
		secret:     append([]byte(nil), secret...),
		issuer:     cfg.Issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}

	return codec, nil
}

func parseTTL(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть положительным: %q", raw)
	}
	return d, nil
}

func (c *TokenCodec) AccessTTL() time.Duration {
	return c.accessTTL
}

func (c *TokenCodec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

func (c *TokenCodec) SignAccess(subject, email string, role model.Role) (string, error) {
	return c.sign(subject, email, role, model.TokenKindAccess, c.accessTTL)
}

func (c *TokenCodec) SignRefresh(subject, email string, role model.Role) (string, error) {
	return c.sign(subject, email, role, model.TokenKindRefresh, c.refreshTTL)
}

func (c *TokenCodec) sign(subject, email string, role model.Role, kind model.TokenKind, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		Email: email,
		Role:  role,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return token, nil
}

// Verify проверяет подпись и срок действия. Тип токена проверяет вызывающий код
// (или VerifyAccess / VerifyRefresh). Любая ошибка сводится к model.ErrInvalidToken.
func (c *TokenCodec) Verify(tokenStr string) (*model.TokenPayload, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, model.ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: пустой subject", model.ErrInvalidToken)
	}
	if claims.Kind != model.TokenKindAccess && claims.Kind != model.TokenKindRefresh {
		return nil, fmt.Errorf("%w: неизвестный тип токена %q", model.ErrInvalidToken, claims.Kind)
	}

	return &model.TokenPayload{
		ID:        claims.ID,
		Subject:   claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		Kind:      claims.Kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// TokenVerifier : то, что умеет проверять подпись токена
type TokenVerifier interface {
	Verify(token string) (*model.TokenPayload, error)
}

// VerifyKind проверяет токен и совпадение его типа с ожидаемым
func VerifyKind(codec TokenVerifier, token string, kind model.TokenKind) (*model.TokenPayload, error) {
	payload, err := codec.Verify(token)
	if err != nil {
		return nil, err
	}
	if payload.Kind != kind {
		return nil, fmt.Errorf("%w: ожидался %s, получен %s", model.ErrInvalidToken, kind, payload.Kind)
	}
	return payload, nil
}

func (c *TokenCodec) VerifyAccess(token string) (*model.TokenPayload, error) {
	return VerifyKind(c, token, model.TokenKindAccess)
}

func (c *TokenCodec) VerifyRefresh(token string) (*model.TokenPayload, error) {
	return VerifyKind(c, token, model.TokenKindRefresh)
}
