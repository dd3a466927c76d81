package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sociogram/backend/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:   userID,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// run sends a request through IdentityMiddleware and reports the user id the
// downstream handler observed.
func run(t *testing.T, authHeader string) (uint, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen uint
	handler := IdentityMiddleware(testSecret)(func(c echo.Context) error {
		seen = UserIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	return seen, handler(c)
}

func TestMissingHeaderIsAnonymous(t *testing.T) {
	seen, err := run(t, "")
	if err != nil {
		t.Fatalf("anonymous request rejected: %v", err)
	}
	if seen != 0 {
		t.Fatalf("anonymous request got user id %d", seen)
	}
}

func TestValidTokenAttachesUserID(t *testing.T) {
	seen, err := run(t, "Bearer "+signToken(t, testSecret, 7))
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if seen != 7 {
		t.Fatalf("user id = %d, want 7", seen)
	}
}

func TestWrongSecretIsRejected(t *testing.T) {
	_, err := run(t, "Bearer "+signToken(t, "other-secret", 7))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	claims := &models.JwtCustomClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = run(t, "Bearer "+signed)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMalformedHeaderIsRejected(t *testing.T) {
	for _, header := range []string{"Bearer", "Token abc", "abc"} {
		_, err := run(t, header)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if got := UserIDFromContext(ctx); got != 42 {
		t.Fatalf("round trip = %d, want 42", got)
	}
	if got := UserIDFromContext(context.Background()); got != 0 {
		t.Fatalf("bare context = %d, want 0", got)
	}
}
