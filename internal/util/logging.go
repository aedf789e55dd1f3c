package util

import (
	"course-platform-auth/internal/model/requestresponse"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// SetLogger заменяет логгер процесса
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

func Logger() *slog.Logger {
	return logger.Load()
}

// NewLogger : JSON в production, текст в остальных окружениях
func NewLogger(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func LogError(message string, err error) error {
	Logger().Error(message, "error", err)
	return fmt.Errorf("%s: %w", message, err)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		Logger().Error("ошибка кодирования ответа", "error", err)
	}
}

// WriteJSON пишет тело ответа в JSON с указанным статусом
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		Logger().Error("ошибка кодирования ответа", "error", err)
	}
}
