package ghapi

import (
	"encoding/base64"
	"fmt"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
)

// AuthKind identifies the credential scheme of an Auth value.
type AuthKind int

const (
	// AuthNone sends no Authorization header.
	AuthNone AuthKind = iota
	// AuthToken sends "token <value>".
	AuthToken
	// AuthBearer sends "Bearer <value>".
	AuthBearer
	// AuthBasic sends "Basic base64(user:password)".
	AuthBasic
)

// String returns the scheme name.
func (k AuthKind) String() string {
	switch k {
	case AuthNone:
		return "none"
	case AuthToken:
		return "token"
	case AuthBearer:
		return "bearer"
	case AuthBasic:
		return "basic"
	default:
		return fmt.Sprintf("AuthKind(%d)", int(k))
	}
}

// Auth describes how requests authenticate. The zero value is NoAuth.
// Values are immutable and safe to share between goroutines.
type Auth struct {
	kind     AuthKind
	secret   string
	username string
}

// NoAuth returns an Auth that sends no credentials.
func NoAuth() Auth { return Auth{kind: AuthNone} }

// TokenAuth returns an Auth using a personal access token.
func TokenAuth(token string) Auth { return Auth{kind: AuthToken, secret: token} }

// BearerAuth returns an Auth using a bearer token, such as a GitHub App JWT.
func BearerAuth(token string) Auth { return Auth{kind: AuthBearer, secret: token} }

// BasicAuth returns an Auth using a username and password.
func BasicAuth(username, password string) Auth {
	return Auth{kind: AuthBasic, username: username, secret: password}
}

// Kind reports the credential scheme.
func (a Auth) Kind() AuthKind { return a.kind }

// Header returns the exact Authorization header value and whether the header
// must be sent at all.
func (a Auth) Header() (string, bool) {
	switch a.kind {
	case AuthToken:
		return "token " + a.secret, true
	case AuthBearer:
		return "Bearer " + a.secret, true
	case AuthBasic:
		creds := base64.StdEncoding.EncodeToString([]byte(a.username + ":" + a.secret))

		return "Basic " + creds, true
	default:
		return "", false
	}
}

// String renders the descriptor with the secret masked, for logs.
func (a Auth) String() string {
	switch a.kind {
	case AuthNone:
		return "none"
	case AuthBasic:
		return fmt.Sprintf("basic(%s:%s)", a.username, constants.MaskedSecret)
	default:
		return fmt.Sprintf("%s(%s)", a.kind, constants.MaskedSecret)
	}
}
