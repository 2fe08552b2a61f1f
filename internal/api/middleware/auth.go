package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/pkg/jwthelper"
	"github.com/rinkside/league-api/internal/pkg/legacytoken"
)

// ContextKeyUserID is where the authenticator stores the caller's user id.
const ContextKeyUserID = "userID"

// UserStore is the ambient identity lookup the authenticator depends on.
// The repository layer satisfies it; tests inject fakes.
type UserStore interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type Authenticator struct {
	signingKey  []byte
	allowLegacy bool
	store       UserStore
	verifier    *legacytoken.Verifier
	clock       clockwork.Clock
}

func NewAuthenticator(signingKey string, allowLegacy bool, store UserStore, clock clockwork.Clock) *Authenticator {
	return &Authenticator{
		signingKey:  []byte(signingKey),
		allowLegacy: allowLegacy,
		store:       store,
		verifier:    legacytoken.NewVerifier(storeAdapter{store}),
		clock:       clock,
	}
}

// VerifyToken accepts a signed JWT. When legacy tokens are enabled it also
// accepts the old unsigned base64 "userId|email|expiry" bearer format that
// pre-JWT clients still send.
func (a *Authenticator) VerifyToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err == nil {
			ctx.Set(ContextKeyUserID, claims.UserID)
			ctx.Next()
			return
		}

		if a.allowLegacy {
			legacy, legacyErr := a.verifier.Verify(ctx.Request.Context(), token, a.clock.Now())
			if legacyErr == nil {
				id, parseErr := strconv.ParseUint(legacy.UserID, 10, 64)
				if parseErr == nil {
					ctx.Set(ContextKeyUserID, uint(id))
					ctx.Next()
					return
				}
			}
		}

		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	}
}

// RequireAdmin runs after VerifyToken and rejects non-admin callers.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := UserIDFromContext(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := a.store.FindByID(ctx.Request.Context(), userID)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		if !user.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		ctx.Next()
	}
}

func UserIDFromContext(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint)

	return userID, ok
}

var errStoreUserID = errors.New("bad user id in token")

// storeAdapter exposes the uint-keyed user store through the string-keyed
// interface the legacy token verifier expects.
type storeAdapter struct {
	store UserStore
}

func (s storeAdapter) EmailForID(ctx context.Context, id string) (string, error) {
	parsed, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return "", errStoreUserID
	}

	user, err := s.store.FindByID(ctx, uint(parsed))
	if err != nil {
		return "", err
	}

	return user.Email, nil
}
