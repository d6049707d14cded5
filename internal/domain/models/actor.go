package models

import "github.com/golang-jwt/jwt/v5"

// Role is the platform role carried by an authenticated actor.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Actor is the authenticated caller of a request. Identity issuance lives
// outside this service; the auth middleware verifies the token and hands
// the core an Actor, nothing more.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// AccessClaims is the JWT claims structure issued by the platform's auth
// service. The subject claim is the user ID.
type AccessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Actor builds the request actor from the verified claims.
func (c *AccessClaims) Actor() Actor {
	return Actor{ID: c.Subject, Role: Role(c.Role)}
}
