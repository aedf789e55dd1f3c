package model

import "errors"

var (
	ErrNotFound     = errors.New("не найден")
	ErrInvalidInput = errors.New("некорректные данные")

	ErrRateLimited        = errors.New("слишком много попыток")
	ErrCSRFMismatch       = errors.New("неверный csrf токен")
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrInvalidToken       = errors.New("невалидный токен")
	ErrForbidden          = errors.New("доступ запрещён")
	ErrEmailTaken         = errors.New("email уже используется")
)
