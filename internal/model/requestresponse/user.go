package requestresponse

import "course-platform-auth/internal/model"

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"некорректные данные"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// UpdateUserRequest : частичное обновление пользователя администратором
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" example:"New Name"`
	Email *string `json:"email,omitempty" example:"new@example.com"`
	Role  *string `json:"role,omitempty" example:"ADMIN"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	User UserSummary `json:"user"`
}

// ListUsersResponse : успешный ответ
type ListUsersResponse struct {
	Data struct {
		Users      []*model.User `json:"users"`
		NextCursor string        `json:"next_cursor,omitempty"`
	} `json:"data"`
}

// DeleteUserResponse : успешный ответ
type DeleteUserResponse struct {
	Deleted bool `json:"deleted" example:"true"`
}
