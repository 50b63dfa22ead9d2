package dto

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=80"`
	Password string `json:"password" binding:"required,min=1"`
}

// UpdateProfileRequest is the JSON body for POST /profile.
// Both fields are optional; nil means keep the current value.
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=80"`
	Password *string `json:"password" binding:"omitempty,min=1"`
}

// UserResponse is the user representation returned to clients.
// The password hash is never included.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
