package auth

import (
	"context"
	"os"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// JWTKey signs and verifies bearer tokens. Issuance lives in the identity
// provider; this service only verifies.
var JWTKey = []byte(os.Getenv("JWT_KEY"))

type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Claims struct {
	Profile Profile `json:"profile"`
	jwt.RegisteredClaims
}

type ctxKey int

const (
	userNameKey ctxKey = iota + 1
	userRoleKey
)

func SetAuthContext(ctx context.Context, username, role string) context.Context {
	ctx = context.WithValue(ctx, userNameKey, username)
	return context.WithValue(ctx, userRoleKey, role)
}

func Username(ctx context.Context) string {
	name, _ := ctx.Value(userNameKey).(string)
	return name
}

func Role(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

func IsAdmin(ctx context.Context) bool {
	return Role(ctx) == RoleAdmin
}
