package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-food/internal/common"
)

const testSecret = "s3cret-for-tests"

type tokenOpts struct {
	issuer  string
	subject string
	role    string
	nbf     time.Time
	exp     time.Time
	alg     jwa.SignatureAlgorithm
}

func sign(t *testing.T, now time.Time, opts tokenOpts) string {
	t.Helper()
	if opts.alg == "" {
		opts.alg = jwa.HS256
	}
	if opts.exp.IsZero() {
		opts.exp = now.Add(time.Minute)
	}
	if opts.nbf.IsZero() {
		opts.nbf = now
	}
	b := jwt.NewBuilder().
		Issuer(opts.issuer).
		Subject(opts.subject).
		IssuedAt(now).
		NotBefore(opts.nbf).
		Expiration(opts.exp)
	if opts.role != "" {
		b = b.Claim(RoleClaim, opts.role)
	}
	tok, err := b.Build()
	require.NoError(t, err)
	signed, err := jwt.Sign(tok, jwt.WithKey(opts.alg, []byte(testSecret)))
	require.NoError(t, err)
	return string(signed)
}

func newVerifier(t *testing.T, now time.Time) *Verifier {
	t.Helper()
	v, err := NewVerifier(testSecret, "food-identity", time.Second)
	require.NoError(t, err)
	v.WithNow(func() time.Time { return now })
	return v
}

func TestVerifyReadsSubjectAndRole(t *testing.T) {
	now := time.Now()
	v := newVerifier(t, now)

	id, err := v.Verify(sign(t, now, tokenOpts{issuer: "food-identity", subject: "u-1", role: common.RoleShipper}))
	require.NoError(t, err)
	require.Equal(t, common.Identity{UserID: "u-1", Role: common.RoleShipper}, id)

	id, err = v.Verify(sign(t, now, tokenOpts{issuer: "food-identity", subject: "u-2"}))
	require.NoError(t, err)
	require.Equal(t, common.RoleCustomer, id.Role)
}

func TestVerifyRejects(t *testing.T) {
	now := time.Now()
	cases := map[string]tokenOpts{
		"issuer mismatch": {issuer: "other", subject: "u"},
		"expired":         {issuer: "food-identity", subject: "u", nbf: now.Add(-2 * time.Hour), exp: now.Add(-time.Minute)},
		"not yet valid":   {issuer: "food-identity", subject: "u", nbf: now.Add(5 * time.Minute), exp: now.Add(10 * time.Minute)},
		"wrong algorithm": {issuer: "food-identity", subject: "u", alg: jwa.HS512},
		"unknown role":    {issuer: "food-identity", subject: "u", role: "root"},
		"no subject":      {issuer: "food-identity"},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			v := newVerifier(t, now)
			_, err := v.Verify(sign(t, now, opts))
			require.Error(t, err)
			var appErr *common.AppError
			require.ErrorAs(t, err, &appErr)
			require.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
		})
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := newVerifier(t, time.Now())
	_, err := v.Verify("not.a.token")
	require.Error(t, err)
	_, err = v.Verify("  ")
	require.Error(t, err)
}

func TestNewVerifierNeedsSecret(t *testing.T) {
	_, err := NewVerifier(" ", "", 0)
	require.Error(t, err)
}

func TestRequireAuthAndRole(t *testing.T) {
	now := time.Now()
	m := Middleware{Verifier: newVerifier(t, now)}
	var seen common.Identity
	h := m.RequireAuth(RequireRole(common.RoleAdmin, common.RoleStore)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = common.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	call := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusUnauthorized, call(""))
	require.Equal(t, http.StatusUnauthorized, call("bogus"))
	require.Equal(t, http.StatusForbidden, call(sign(t, now, tokenOpts{issuer: "food-identity", subject: "c-1"})))
	require.Equal(t, http.StatusNoContent, call(sign(t, now, tokenOpts{issuer: "food-identity", subject: "m-1", role: common.RoleStore})))
	require.Equal(t, common.Identity{UserID: "m-1", Role: common.RoleStore}, seen)
}

func TestAuthenticateLetsAnonymousThrough(t *testing.T) {
	m := Middleware{Verifier: newVerifier(t, time.Now())}
	called := false
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := common.IdentityFrom(r.Context())
		require.False(t, ok)
		called = true
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, called)
}
