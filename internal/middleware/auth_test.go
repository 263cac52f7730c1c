package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secret"

func signToken(t *testing.T, sub, secret string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: sub,
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestAuth(t *testing.T) {
	tt := []struct {
		name   string
		header string

		callerID string
		resolved bool
	}{
		{
			name:     "valid_token",
			header:   fmt.Sprintf("Bearer %s", signToken(t, "alice", secret)),
			callerID: "alice",
			resolved: true,
		},
		{
			name:     "no_header",
			header:   "",
			resolved: false,
		},
		{
			name:     "not_bearer",
			header:   "Basic abc",
			resolved: false,
		},
		{
			name:     "garbage_token",
			header:   "Bearer garbage",
			resolved: false,
		},
		{
			name:     "wrong_secret",
			header:   fmt.Sprintf("Bearer %s", signToken(t, "alice", "other")),
			resolved: false,
		},
		{
			name:     "no_subject",
			header:   fmt.Sprintf("Bearer %s", signToken(t, "", secret)),
			resolved: false,
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			r, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			var gotID string
			var gotOK bool
			h := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, gotOK = CallerID(r.Context())
			}))

			h.ServeHTTP(httptest.NewRecorder(), r)

			assert.Equal(t, tc.resolved, gotOK)
			assert.Equal(t, tc.callerID, gotID)
		})
	}
}
