package model

import "github.com/golang-jwt/jwt/v5"

// HostClaims is the JWT payload for form owners.
type HostClaims struct {
	HostID string `json:"hostId"`
	jwt.RegisteredClaims
}

// RespondentClaims is the JWT payload handed to respondents of forms that
// require login. Scoped to a single form.
type RespondentClaims struct {
	RespondentID string `json:"respondentId"`
	FormID       string `json:"formId"`
	jwt.RegisteredClaims
}

// LoginResponse is returned on successful host login.
type LoginResponse struct {
	Token  string `json:"token"`
	HostID string `json:"hostId"`
}
