package service

import (
	"course-platform-auth/internal/model"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 6
	// bcrypt не принимает пароли длиннее 72 байт
	maxPasswordBytes = 72
	minNameLength    = 2
)

// normalizeEmail : email сравнивается и хранится в нижнем регистре без пробелов по краям
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email обязателен", model.ErrInvalidInput)
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return fmt.Errorf("%w: некорректный email", model.ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: пароль должен содержать минимум %d символов", model.ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: пароль длиннее %d байт", model.ErrInvalidInput, maxPasswordBytes)
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) < minNameLength {
		return fmt.Errorf("%w: имя должно содержать минимум %d символа", model.ErrInvalidInput, minNameLength)
	}
	return nil
}
