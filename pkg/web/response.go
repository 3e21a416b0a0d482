// Package web defines common components for a web application.
package web

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string    `json:"access_token,omitempty"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at,omitempty"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
	Data                  any       `json:"data,omitempty"`
	Error                 string    `json:"error,omitempty"`
}

// Error wraps a given err into the common response type.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg builds a readable message from the first binding validation error.
func GetErrorMsg(ve validator.ValidationErrors) string {
	field := ve[0]

	switch field.Tag() {
	case "required":
		return field.Field() + " field is required"
	case "alphanum":
		return field.Field() + " field must contain only letters and numbers"
	case "email":
		return field.Field() + " field must be a valid email address"
	case "min":
		return field.Field() + " field must be at least " + field.Param() + " characters long"
	case "max":
		return field.Field() + " field must be at most " + field.Param() + " characters long"
	case "accountid":
		return field.Field() + " field must be an alphanumeric account id of 3 to 20 characters"
	case "amount":
		return field.Field() + " field must be a positive decimal number"
	case "initialbalance":
		return field.Field() + " field must be a non-negative decimal number"
	}

	return field.Field() + " field is invalid"
}
