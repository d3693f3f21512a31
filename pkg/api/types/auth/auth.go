package auth

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDetail struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
