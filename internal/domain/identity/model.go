package identity

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// nameIdentifierClaim is the long-form claim name some backend tokens use
// for the person id instead of sub/nameid.
const nameIdentifierClaim = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"

// User is the authenticated console identity, assembled from the login
// response plus claims decoded out of the bearer token.
type User struct {
	Token     string `json:"token"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	Role      string `json:"rol"`
	IsTeacher bool   `json:"esProfesor,omitempty"`
	IsAdmin   bool   `json:"esAdmin,omitempty"`
	PersonID  int    `json:"idPersona"`
}

// DisplayName returns the name shown in the header.
func (u User) DisplayName() string { return u.FirstName + " " + u.LastName }

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role string) bool { return u.Role == role }

// Admin reports whether the user is an administrator.
func (u User) Admin() bool { return u.Role == "administrador" || u.IsAdmin }

// Teacher reports whether the user is a teacher.
func (u User) Teacher() bool { return u.Role == "profesor" || u.IsTeacher }

// Guardian reports whether the user is a guardian.
func (u User) Guardian() bool { return u.Role == "representante" }

// CanRegisterAttendance reports whether the user may open the attendance
// registration view. The backend enforces this too; the check only gates UI.
func (u User) CanRegisterAttendance() bool { return u.Admin() || u.Teacher() }

// ErrTokenExpired marks a bearer token past its exp claim.
var ErrTokenExpired = errors.New("token expirado")

// Claims is the payload the console reads out of the backend's JWT.
// The token is decoded without verification: the backend owns the secret
// and re-validates on every API call; the console only needs the payload.
type Claims struct {
	PersonID  int
	ExpiresAt time.Time
}

// DecodeToken extracts the claims the console cares about. The person id is
// read from sub, then nameid, then the XML name-identifier claim, matching
// the variants the backend has been seen emitting.
// POST: Returns Claims or an error for a malformed token
func DecodeToken(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, err
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("claims ilegibles")
	}

	var claims Claims
	for _, key := range []string{"sub", "nameid", nameIdentifierClaim} {
		if raw, ok := mapClaims[key]; ok {
			if id := toInt(raw); id != 0 {
				claims.PersonID = id
				break
			}
		}
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// TokenExpired reports whether the token's exp claim is in the past.
// Tokens without a readable exp claim are treated as live; expiry is a
// convenience check here, not a security boundary.
func TokenExpired(token string, now time.Time) bool {
	claims, err := DecodeToken(token)
	if err != nil {
		return false
	}
	return !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(now)
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		id, _ := strconv.Atoi(n)
		return id
	}
	return 0
}
