package docsauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return tokenString
}

func TestJWTMiddleware(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		handler := JWT(WithSecret("test-secret"))(okHandler)

		tokenString := signedToken(t, "test-secret", jwt.MapClaims{
			"sub": "user123",
			"exp": time.Now().Add(time.Hour).Unix(),
			"iat": time.Now().Unix(),
		})

		req := httptest.NewRequest("GET", "/docs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("MissingToken", func(t *testing.T) {
		handler := JWT(WithSecret("test-secret"))(okHandler)

		req := httptest.NewRequest("GET", "/docs", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		handler := JWT(WithSecret("test-secret"))(okHandler)

		req := httptest.NewRequest("GET", "/docs", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		handler := JWT(WithSecret("test-secret"))(okHandler)

		tokenString := signedToken(t, "other-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/docs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		handler := JWT(WithSecret("test-secret"))(okHandler)

		tokenString := signedToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/docs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("QueryLookup", func(t *testing.T) {
		handler := JWT(
			WithSecret("test-secret"),
			WithTokenLookup("query:token"),
		)(okHandler)

		tokenString := signedToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/docs?token="+tokenString, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("CookieLookup", func(t *testing.T) {
		handler := JWT(
			WithSecret("test-secret"),
			WithTokenLookup("cookie:jwt"),
		)(okHandler)

		tokenString := signedToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/docs", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: tokenString})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("ClaimsFromContext", func(t *testing.T) {
		var gotSub string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				t.Error("Expected claims on the request context")
				return
			}
			gotSub, _ = claims["sub"].(string)
		})
		handler := JWT(WithSecret("test-secret"))(inner)

		tokenString := signedToken(t, "test-secret", jwt.MapClaims{
			"sub": "user123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/docs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if gotSub != "user123" {
			t.Errorf("Expected sub claim user123, got %q", gotSub)
		}
	})

	t.Run("Skipper", func(t *testing.T) {
		handler := JWT(
			WithSecret("test-secret"),
			WithSkipper(func(r *http.Request) bool {
				return r.URL.Path == "/open"
			}),
		)(okHandler)

		req := httptest.NewRequest("GET", "/open", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected skipper to bypass auth, got %d", w.Code)
		}
	})
}

func TestCreateToken(t *testing.T) {
	config := DefaultJWTConfig()
	config.Secret = []byte("test-secret")

	tokenString, err := CreateToken(jwt.MapClaims{
		"sub": "user123",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, config)
	if err != nil {
		t.Fatal(err)
	}

	handler := JWT(WithSecret("test-secret"))(okHandler)
	req := httptest.NewRequest("GET", "/docs", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected created token to be accepted, got %d", w.Code)
	}

	t.Run("MissingSecret", func(t *testing.T) {
		if _, err := CreateToken(jwt.MapClaims{}, &JWTConfig{SigningMethod: jwt.SigningMethodHS256}); err == nil {
			t.Error("Expected error without a secret")
		}
	})

	t.Run("RSARejected", func(t *testing.T) {
		if _, err := CreateToken(jwt.MapClaims{}, &JWTConfig{SigningMethod: jwt.SigningMethodRS256}); err == nil {
			t.Error("Expected error for RSA token creation")
		}
	})
}
