package handler

// registerRequest is the payload for POST /api/register.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role" validate:"required,oneof=client dispatcher driver admin"`
	AreaID   *int64 `json:"area_id,omitempty"`
}

// loginRequest is the payload for POST /api/login.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// registerResponse is returned on successful registration.
type registerResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
