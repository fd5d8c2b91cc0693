package settings

import (
	"github.com/gitpulse/gitpulse/internal/github"
)

// TokenRequest represents the request payload for storing or testing a token.
type TokenRequest struct {
	Token string `json:"token" validate:"required,min=1,max=255"`
}

// TokenStatusResponse reports whether a token is currently stored. The token
// itself is never returned.
type TokenStatusResponse struct {
	HasToken bool `json:"has_token"`
}

// TokenCheckResponse represents the result of testing a token against the
// remote.
type TokenCheckResponse struct {
	Valid   bool   `json:"valid"`
	CanPush bool   `json:"can_push"`
	Reason  string `json:"reason,omitempty"`
}

// PushCheckResponse represents the result of checking connectivity to the
// push remote.
type PushCheckResponse struct {
	Reachable bool   `json:"reachable"`
	Reason    string `json:"reason,omitempty"`
}

func newTokenCheckResponse(check *github.TokenCheck) TokenCheckResponse {
	return TokenCheckResponse{
		Valid:   check.Valid,
		CanPush: check.CanPush,
		Reason:  check.Reason,
	}
}
