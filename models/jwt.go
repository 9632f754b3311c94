package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// CustomClaims is the session token payload. The user id travels in the
// registered "sub" claim.
type CustomClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

func (c *CustomClaims) AuthInfo() AuthInfo {
	return AuthInfo{UserID: c.Subject, Username: c.Username}
}
