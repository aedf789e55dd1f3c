package handler

import (
	"course-platform-auth/internal/model"
	"course-platform-auth/internal/model/requestresponse"
	"course-platform-auth/internal/ports"
	"course-platform-auth/internal/util"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserHandler : административные операции над пользователями.
// Маршруты закрыты SessionResolver.RequireAdminMiddleware, изменяющие еще и csrf.
type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// ListUsers godoc
// @Summary Получение списка пользователей
// @Description Возвращает список пользователей с постраничной навигацией (cursor-based). Только для администратора.
// @Tags Admin
// @Produce json
// @Param cursor query string false "Курсор для пагинации"
// @Param limit query int false "Количество пользователей в списке" default(20) minimum(1) maximum(100)
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный курсор"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			sendErrorResponse(w, http.StatusBadRequest, "limit должен быть положительным числом")
			return
		}
		limit = l
	}

	users, nextCursor, err := h.UserService.ListUsers(r.Context(), cursor, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := requestresponse.ListUsersResponse{}
	resp.Data.Users = users
	resp.Data.NextCursor = nextCursor
	if resp.Data.Users == nil {
		resp.Data.Users = []*model.User{}
	}

	util.WriteJSON(w, http.StatusOK, resp)
}

// UpdateUser godoc
// @Summary Обновление пользователя
// @Description Меняет только переданные поля: имя, email, роль
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param x-csrf-token header string true "Значение cookie csrfToken"
// @Param body body requestresponse.UpdateUserRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже используется"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users/{id} [patch]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	update := model.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.UserService.UpdateUser(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponse{User: toUserSummary(user)})
}

// DeleteUser godoc
// @Summary Удаление пользователя
// @Description Удаляет пользователя и отзывает его refresh токен
// @Tags Admin
// @Produce json
// @Param id path string true "ID пользователя"
// @Param x-csrf-token header string true "Значение cookie csrfToken"
// @Success 200 {object} requestresponse.DeleteUserResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.DeleteUserResponse{Deleted: true})
}

func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id пользователя")
		return "", false
	}
	return id.String(), true
}
