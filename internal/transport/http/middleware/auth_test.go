package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnector/internal/pkg/jwtutil"
)

func newGuardedRouter(verifier TokenVerifier) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.GET("/private", AuthToken(verifier), func(c *gin.Context) {
		calls++
		userID, ok := UserID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r, &calls
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Msg
}

func TestAuthToken(t *testing.T) {
	issuer := jwtutil.NewIssuer("guard-secret", time.Hour)
	valid, err := issuer.Issue(11)
	require.NoError(t, err)
	expired, err := issuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Issue(11)
	require.NoError(t, err)
	foreign, err := jwtutil.NewIssuer("other-secret", time.Hour).Issue(11)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantMsg    string
		wantCalled bool
	}{
		{name: "missing", token: "", wantStatus: http.StatusUnauthorized, wantMsg: "No token, authorization denied"},
		{name: "blank", token: "   ", wantStatus: http.StatusUnauthorized, wantMsg: "No token, authorization denied"},
		{name: "garbage", token: "abc.def.ghi", wantStatus: http.StatusUnauthorized, wantMsg: "Token not valid"},
		{name: "expired", token: expired, wantStatus: http.StatusUnauthorized, wantMsg: "Token not valid"},
		{name: "wrong secret", token: foreign, wantStatus: http.StatusUnauthorized, wantMsg: "Token not valid"},
		{name: "valid", token: valid, wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, calls := newGuardedRouter(issuer)
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, *calls == 1)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeMsg(t, rec))
			}
			if tt.wantCalled {
				assert.JSONEq(t, `{"user_id":11}`, rec.Body.String())
			}
		})
	}
}
