package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-drive-api/internal/domain/identity"
	"file-drive-api/internal/domain/user"
)

type FakeVerifier struct {
	VerifyFunc func(token string) (*identity.Identity, error)
}

func (f *FakeVerifier) Verify(token string) (*identity.Identity, error) { return f.VerifyFunc(token) }

type FakeUserService struct {
	ensured   []*identity.Identity
	ensureErr error
}

func (f *FakeUserService) EnsureUser(_ context.Context, id *identity.Identity) error {
	f.ensured = append(f.ensured, id)
	return f.ensureErr
}
func (f *FakeUserService) UpsertUser(context.Context, user.User) (*user.User, error) {
	return nil, errors.New("not used")
}
func (f *FakeUserService) AddOrgMembership(context.Context, string, string) (*user.User, error) {
	return nil, errors.New("not used")
}
func (f *FakeUserService) RemoveOrgMembership(context.Context, string, string) (*user.User, error) {
	return nil, errors.New("not used")
}

func newVerifier() *FakeVerifier {
	return &FakeVerifier{
		VerifyFunc: func(token string) (*identity.Identity, error) {
			if token != "good" {
				return nil, errors.New("invalid token")
			}
			return &identity.Identity{TokenIdentifier: "iss|user_1", Subject: "user_1"}, nil
		},
	}
}

func TestIdentityGate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		header     string
		ensureErr  error
		wantID     string
		wantEnsure int
	}{
		{name: "no header is anonymous"},
		{name: "wrong scheme is anonymous", header: "Basic Zm9vOmJhcg=="},
		{name: "empty bearer is anonymous", header: "Bearer  "},
		{name: "bad token is anonymous", header: "Bearer forged"},
		{name: "good token", header: "Bearer good", wantID: "iss|user_1", wantEnsure: 1},
		{name: "scheme is case-insensitive", header: "bearer good", wantID: "iss|user_1", wantEnsure: 1},
		{
			name:       "ensure failure keeps identity",
			header:     "Bearer good",
			ensureErr:  errors.New("db down"),
			wantID:     "iss|user_1",
			wantEnsure: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{ensureErr: tt.ensureErr}

			var got *identity.Identity
			r := gin.New()
			r.GET("/", IdentityGate(newVerifier(), us, zap.NewNop()), func(c *gin.Context) {
				got = IdentityFrom(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			require.Equal(t, http.StatusNoContent, rr.Code)
			if tt.wantID == "" {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantID, got.TokenIdentifier)
			}
			assert.Len(t, us.ensured, tt.wantEnsure)
		})
	}
}
