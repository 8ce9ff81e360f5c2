package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/noah-isme/backend-food/internal/common"
)

// RoleClaim is the private claim carrying the caller's role.
const RoleClaim = "role"

var knownRoles = map[string]bool{
	common.RoleCustomer: true,
	common.RoleStore:    true,
	common.RoleAdmin:    true,
	common.RoleShipper:  true,
}

// Verifier checks HS256 access tokens minted by the identity service and
// turns them into an Identity.
type Verifier struct {
	secret    []byte
	issuer    string
	clockSkew time.Duration
	algorithm jwa.SignatureAlgorithm
	now       func() time.Time
}

// NewVerifier returns a verifier for tokens signed with secret. An empty
// issuer disables the issuer check.
func NewVerifier(secret, issuer string, clockSkew time.Duration) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	if clockSkew < 0 {
		clockSkew = 0
	}
	return &Verifier{
		secret:    []byte(secret),
		issuer:    strings.TrimSpace(issuer),
		clockSkew: clockSkew,
		algorithm: jwa.HS256,
		now:       time.Now,
	}, nil
}

// WithNow allows tests to override the time provider.
func (v *Verifier) WithNow(now func() time.Time) {
	if now != nil {
		v.now = now
	}
}

func unauthorized(err error) error {
	return common.NewAppError("UNAUTHORIZED", "invalid token", http.StatusUnauthorized, err)
}

// Verify parses token and returns the caller it identifies. Tokens without a
// role claim belong to customers.
func (v *Verifier) Verify(token string) (common.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return common.Identity{}, common.NewAppError("UNAUTHORIZED", "missing token", http.StatusUnauthorized, nil)
	}
	algorithm, err := tokenAlgorithm(token)
	if err != nil {
		return common.Identity{}, unauthorized(err)
	}
	if algorithm != v.algorithm {
		return common.Identity{}, unauthorized(fmt.Errorf("auth: unexpected token algorithm %s", algorithm))
	}
	parsed, err := jwt.ParseString(token, jwt.WithKey(algorithm, v.secret), jwt.WithValidate(false))
	if err != nil {
		return common.Identity{}, unauthorized(err)
	}
	if err := v.validate(parsed); err != nil {
		return common.Identity{}, unauthorized(err)
	}
	if parsed.Subject() == "" {
		return common.Identity{}, unauthorized(errors.New("auth: token has no subject"))
	}

	role := common.RoleCustomer
	if raw, ok := parsed.Get(RoleClaim); ok {
		s, _ := raw.(string)
		if !knownRoles[s] {
			return common.Identity{}, unauthorized(fmt.Errorf("auth: unknown role %q", s))
		}
		role = s
	}
	return common.Identity{UserID: parsed.Subject(), Role: role}, nil
}

func (v *Verifier) validate(tok jwt.Token) error {
	now := v.now()
	options := []jwt.ValidateOption{
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
	}
	if v.clockSkew > 0 {
		options = append(options, jwt.WithAcceptableSkew(v.clockSkew))
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}
	return jwt.Validate(tok, options...)
}

// tokenAlgorithm reads the signing algorithm from the protected headers and
// refuses unsigned or mixed-algorithm tokens.
func tokenAlgorithm(token string) (jwa.SignatureAlgorithm, error) {
	message, err := jws.ParseString(token)
	if err != nil {
		return "", err
	}
	signatures := message.Signatures()
	if len(signatures) == 0 {
		return "", errors.New("auth: token contains no signatures")
	}
	var algorithm jwa.SignatureAlgorithm
	for _, sig := range signatures {
		headers := sig.ProtectedHeaders()
		if headers == nil {
			return "", errors.New("auth: token missing protected headers")
		}
		alg := headers.Algorithm()
		switch {
		case alg == "":
			return "", errors.New("auth: token missing algorithm")
		case alg == jwa.NoSignature:
			return "", errors.New("auth: token uses none algorithm")
		case algorithm == "":
			algorithm = alg
		case algorithm != alg:
			return "", errors.New("auth: mixed token algorithms detected")
		}
	}
	return algorithm, nil
}
