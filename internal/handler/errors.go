package handler

import (
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/model/requestresponse"
	"course-platform-auth/internal/security"
	"course-platform-auth/internal/util"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodySize : тела запросов авторизации маленькие
const maxBodySize = 1 << 20

const (
	msgRateLimited        = "слишком много попыток, попробуйте позже"
	msgInvalidInput       = "некорректные данные"
	msgInvalidCredentials = "неверный email или пароль"
	msgInvalidToken       = "невалидный токен"
	msgUnauthorized       = "не авторизован"
	msgForbidden          = "доступ запрещён"
	msgEmailTaken         = "email уже используется"
	msgNotFound           = "не найден"
	msgInternal           = "внутренняя ошибка сервера"
)

// writeServiceError переводит ошибку сервиса в HTTP ответ.
// Неожиданные ошибки логируются целиком, клиент получает только общий текст.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrRateLimited):
		sendErrorResponse(w, http.StatusTooManyRequests, msgRateLimited)
	case errors.Is(err, model.ErrCSRFMismatch):
		sendErrorResponse(w, http.StatusForbidden, security.CSRFFailureMessage)
	case errors.Is(err, model.ErrInvalidInput):
		sendErrorResponse(w, http.StatusBadRequest, msgInvalidInput)
	case errors.Is(err, model.ErrInvalidCredentials):
		sendErrorResponse(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, model.ErrInvalidToken):
		sendErrorResponse(w, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, model.ErrForbidden):
		sendErrorResponse(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, model.ErrEmailTaken):
		sendErrorResponse(w, http.StatusConflict, msgEmailTaken)
	case errors.Is(err, model.ErrNotFound):
		sendErrorResponse(w, http.StatusNotFound, msgNotFound)
	default:
		util.Logger().Error("необработанная ошибка", "error", err)
		sendErrorResponse(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON обрабатывает декодирование JSON и возвращает ответ об ошибке, если декодирование не удалось.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := decoder.Decode(target); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return err
	}
	return nil
}

// sendErrorResponse отправляет ответ об ошибке JSON с указанным кодом статуса и сообщением
func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	util.HandleError(w, message, statusCode)
}

func toUserSummary(user *model.User) requestresponse.UserSummary {
	return requestresponse.UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
