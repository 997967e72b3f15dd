// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Session is the explicit identity handed to readers and writers instead of
// a shared client-side store.
type Session struct {
	UserID int64
	Role   string
}

func claims(c echo.Context) (jwt.MapClaims, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no jwt token in context")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid jwt claims")
	}
	return mc, nil
}

func UserIDFromContext(c echo.Context) (int64, error) {
	mc, err := claims(c)
	if err != nil {
		return 0, err
	}
	if f, ok := mc["sub"].(float64); ok && f > 0 {
		return int64(f), nil
	}
	// some token issuers use user_id instead of sub
	if f, ok := mc["user_id"].(float64); ok && f > 0 {
		return int64(f), nil
	}
	return 0, errors.New("sub missing in claims")
}

func RoleFromContext(c echo.Context) string {
	mc, err := claims(c)
	if err != nil {
		return ""
	}
	role, _ := mc["role"].(string)
	return role
}

func SessionFromContext(c echo.Context) (Session, error) {
	uid, err := UserIDFromContext(c)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: uid, Role: RoleFromContext(c)}, nil
}
