package ports

import (
	"course-platform-auth/internal/model"
	"context"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
}

// UserService : административные операции над пользователями
type UserService interface {
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
	UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}
