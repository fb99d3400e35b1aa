package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, userID, organizationID kernel.UUID, role string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		OrganizationID: organizationID.String(),
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestResolveActor_ValidToken(t *testing.T) {
	userID := kernel.NewUUID()
	organizationID := kernel.NewUUID()
	header := "Bearer " + signedToken(t, userID, organizationID, "member", time.Now().Add(time.Hour))

	actor, err := resolveActor(header, testSecret)

	require.NoError(t, err)
	assert.True(t, actor.UserID.IsEqual(userID))
	assert.True(t, actor.OrganizationID.IsEqual(organizationID))
	assert.Equal(t, access.RoleMember, actor.Role)
	assert.False(t, actor.PlatformAdmin)
}

func TestResolveActor_Failures(t *testing.T) {
	userID := kernel.NewUUID()
	organizationID := kernel.NewUUID()

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abcdef"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{
			name:   "expired",
			header: "Bearer " + signedToken(t, userID, organizationID, "member", time.Now().Add(-time.Hour)),
		},
		{
			name:   "unknown role",
			header: "Bearer " + signedToken(t, userID, organizationID, "superuser", time.Now().Add(time.Hour)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveActor(tt.header, testSecret)
			require.ErrorIs(t, err, errs.ErrUnauthenticated)
		})
	}
}

func TestResolveActor_WrongSecret(t *testing.T) {
	header := "Bearer " + signedToken(t, kernel.NewUUID(), kernel.NewUUID(), "member", time.Now().Add(time.Hour))

	_, err := resolveActor(header, []byte("other-secret"))

	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestAuthMiddleware_StoresActor(t *testing.T) {
	e := echo.New()
	userID := kernel.NewUUID()
	organizationID := kernel.NewUUID()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization,
		"Bearer "+signedToken(t, userID, organizationID, "admin", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	var seen access.Context
	next := func(c echo.Context) error {
		actor, err := actorFrom(c)
		if err != nil {
			return err
		}
		seen = actor
		return c.NoContent(http.StatusOK)
	}

	err := AuthMiddleware(testSecret)(next)(ctx)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen.UserID.IsEqual(userID))
	assert.Equal(t, access.RoleAdmin, seen.Role)
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		t.Fatal("handler must not run without a token")
		return nil
	}

	err := AuthMiddleware(testSecret)(next)(ctx)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), KindUnauthenticated)
}

func TestVerifyClaimedOrganization(t *testing.T) {
	organizationID := kernel.NewUUID()
	actor, err := access.NewContext(kernel.NewUUID(), organizationID, access.RoleMember, false)
	require.NoError(t, err)

	assert.NoError(t, verifyClaimedOrganization(actor, ""))
	assert.NoError(t, verifyClaimedOrganization(actor, organizationID.String()))
	assert.ErrorIs(t, verifyClaimedOrganization(actor, kernel.NewUUID().String()), errs.ErrDenied)
	assert.ErrorIs(t, verifyClaimedOrganization(actor, "not-a-uuid"), errs.ErrValueIsInvalid)
}

func TestKindMapping(t *testing.T) {
	tests := []struct {
		err    error
		kind   string
		status int
	}{
		{errs.NewUnauthenticatedError(), KindUnauthenticated, http.StatusUnauthorized},
		{errs.NewDeniedError(errs.DenyReasonCrossTenant), KindDenied, http.StatusForbidden},
		{errs.NewObjectNotFoundError("order", "x"), KindNotFound, http.StatusNotFound},
		{errs.NewInvalidTransitionError("draft", "shipped"), KindInvalidTransition, http.StatusUnprocessableEntity},
		{errs.NewConflictError("order", "x"), KindConflict, http.StatusConflict},
		{errs.NewHasDependentsError("order", "x"), KindHasDependents, http.StatusConflict},
		{errs.NewBatchTooLargeError(101, 100), KindBatchTooLarge, http.StatusRequestEntityTooLarge},
		{errs.NewValueIsInvalidError("total"), KindValidationFailed, http.StatusBadRequest},
		{assert.AnError, KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, kindOf(tt.err))
		assert.Equal(t, tt.status, statusOf(tt.kind))
	}
}
