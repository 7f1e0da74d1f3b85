package dto

// RegisterRequest body para POST /api/auth/register: crea el equipo y su primer usuario (admin).
type RegisterRequest struct {
	TeamName string `json:"team_name" validate:"required,min=2"`
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse token emitido y datos básicos del usuario.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	TeamID string `json:"team_id"`
	Role   string `json:"role"`
}
