package rest

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_JSONWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/users", acceptJSON, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":401,"message":"unauthorized"}`, rec.Body.String())
	assert.Zero(t, env.users.listCalls, "handler must not run")
}

func TestRequireAuth_HTMLRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/users", acceptHTML, "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sessions/", rec.Header().Get("Location"))
	assert.Zero(t, env.users.listCalls)
}

func TestRequireAuth_BadTokenOnEveryProtectedRoute(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodPost, "/users"},
		{http.MethodGet, "/users/u1"},
		{http.MethodPut, "/users/u1"},
		{http.MethodDelete, "/users/u1"},
		{http.MethodGet, "/users/add"},
		{http.MethodGet, "/users/u1/edit"},
	}
	for _, r := range routes {
		rec := env.do(r.method, r.path, acceptJSON, "", withToken("bogus"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.method, r.path)
	}
	assert.Zero(t, env.users.listCalls)
	assert.Empty(t, env.users.deletedID)
	assert.Nil(t, env.users.created)
	assert.Nil(t, env.users.updated)
}

func TestRequireAuth_HeaderToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/users", acceptJSON, "", withToken(goodToken))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.users.listCalls)
}

func TestRequireAuth_SignedCookie(t *testing.T) {
	env := newTestEnv(t)

	value, err := env.codec.Encode(goodToken, time.Hour)
	require.NoError(t, err)

	rec := env.do(http.MethodGet, "/users", acceptHTML, "", withCookie(&http.Cookie{Name: cookieName, Value: value}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.users.listCalls)

	rec = env.do(http.MethodGet, "/users", acceptJSON, "", withCookie(&http.Cookie{Name: cookieName, Value: value}))
	assert.Equal(t, http.StatusOK, rec.Code, "cookie works for API clients too")
}

func TestRequireAuth_ForeignCookie(t *testing.T) {
	env := newTestEnv(t)

	foreign, err := auth.NewCookieCodec("someone-else").Encode(goodToken, time.Hour)
	require.NoError(t, err)

	rec := env.do(http.MethodGet, "/users", acceptHTML, "", withCookie(&http.Cookie{Name: cookieName, Value: foreign}))
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = env.do(http.MethodGet, "/users", acceptHTML, "", withCookie(&http.Cookie{Name: cookieName, Value: goodToken}))
	assert.Equal(t, http.StatusFound, rec.Code, "raw token in cookie is not accepted")
}

func TestRequireAuth_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.authErr = errBoom

	rec := env.do(http.MethodGet, "/users", acceptJSON, "", withToken(goodToken))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":500,"message":"internal server error"}`, rec.Body.String())
	assert.False(t, strings.Contains(rec.Body.String(), "10.0.0.5"))
	assert.Zero(t, env.users.listCalls)
}

func TestPublicRoutes_NoToken(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/", acceptJSON, "").Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/sessions/", acceptJSON, "").Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/sessions/", acceptJSON, "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/sessions/", acceptJSON, `{}`, withJSONBody()).Code)
}

func TestMethodOverride(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/users/u1?_method=delete", acceptHTML, "", withToken(goodToken))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "u1", env.users.deletedID)

	rec = env.do(http.MethodPost, "/users/u2?_method=PUT", acceptHTML,
		"pseudo=bob&email=b%40x.io&firstname=Bob&lastname=B&password=pw", withToken(goodToken), withFormBody())
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "u2", env.users.updatedID)
}

func TestMethodOverride_IgnoresOtherMethods(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/users/u1?_method=delete", acceptJSON, "", withToken(goodToken))
	assert.Equal(t, http.StatusNotFound, rec.Code, "GET stays GET")
	assert.Empty(t, env.users.deletedID)
}
