package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Roles carried in the token.
const (
	RoleDispatcher = "dispatcher"
	RoleCompany    = "company"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid bearer token")

// Claims identify the caller: the subject is the user id, and company users
// carry the single company they act for.
type Claims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
}

// Authenticator turns HS256 bearer tokens into actors.
type Authenticator struct {
	secret []byte
	issuer string
}

func NewAuthenticator(secret, issuer string) (*Authenticator, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	return &Authenticator{secret: []byte(secret), issuer: issuer}, nil
}

// Issue signs a token for a. It backs the token CLI command and tests.
func (a *Authenticator) Issue(who actor.Actor, ttl time.Duration, now time.Time) (string, error) {
	if err := who.Validate(); err != nil {
		return "", err
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   who.UserID().String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: RoleCompany,
	}
	if who.IsDispatcher() {
		claims.Role = RoleDispatcher
	}
	if id := who.CompanyID(); id != nil {
		claims.CompanyID = id.String()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates the token and resolves the actor it names.
func (a *Authenticator) Parse(token string) (actor.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return actor.Actor{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("subject: %w", err)
	}

	switch claims.Role {
	case RoleDispatcher:
		return actor.NewDispatcher(userID)
	case RoleCompany:
		companyID, err := kernel.UUIDFromString(claims.CompanyID)
		if err != nil {
			return actor.Actor{}, fmt.Errorf("company_id: %w", err)
		}
		return actor.NewCompanyUser(userID, companyID)
	default:
		return actor.Actor{}, fmt.Errorf("unknown role %q", claims.Role)
	}
}

// Middleware rejects requests without a valid bearer token and stores the
// resolved actor on the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return errUnauthorized
			}

			who, err := a.Parse(token)
			if err != nil {
				return errUnauthorized.WithInternal(err)
			}

			c.Set(actorKey, who)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) actor.Actor {
	who, _ := c.Get(actorKey).(actor.Actor)
	return who
}
