package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest carries no validator tags: blank input is answered with the
// same generic invalid-credentials failure as a wrong password, never with a
// field-level validation error that discloses which field was empty.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // seconds
	User         UserResponse `json:"user"`
}
