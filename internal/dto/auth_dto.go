package dto

// Data Transfer Objects for sign-up and token exchange

// SignUpRequest: payload for passwordless registration. Repeating the call
// with the same (username, email) pair reissues the confirmation code.
type SignUpRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignUpResponse echoes the accepted registration payload.
type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for an access
// token. The code travels under its own field name, never as "password".
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: payload after a successful exchange
type TokenResponse struct {
	Token string `json:"token"`
}
