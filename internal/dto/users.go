package dto

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// UpdateUserRequest holds the profile fields PUT /api/users/me may change.
// Omitted fields are kept.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FullName  *string `json:"full_name"`
	Password  *string `json:"password"`
	AvatarURL *string `json:"avatar_url"`
}
