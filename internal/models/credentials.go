package models

import "strings"

// Credentials identify the caller against the remote platform.
// The token is forwarded as a bearer token and never inspected.
type Credentials struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Credential store keys
const (
	CredentialUsername = "username"
	CredentialToken    = "token"
	CredentialEmail    = "email"
)

func (c Credentials) missingFields() []string {
	var missing []string
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(c.Token) == "" {
		missing = append(missing, "token")
	}
	return missing
}
