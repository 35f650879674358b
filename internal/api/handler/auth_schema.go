package handler

import "github.com/superheromanager/hero-service/internal/core/domain"

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin editor"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin editor"`
}

// userView is the public projection of a user; the password hash never
// leaves the service layer.
type userView struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// sessionData pairs a freshly signed token with its user, as returned by
// register and login.
type sessionData struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
