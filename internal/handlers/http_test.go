package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/accountd/internal/auth"
	"github.com/vaughan-dsouza/accountd/internal/handlers"
	"github.com/vaughan-dsouza/accountd/internal/service"
	"github.com/vaughan-dsouza/accountd/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokens := auth.NewTokens([]byte("testsecret"), time.Hour)
	svc := service.NewAccountService(store.NewMemory(), auth.NewPasswordHasher(bcrypt.MinCost), tokens)

	srv := httptest.NewServer(handlers.Routes(handlers.NewHandler(svc), tokens))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGreeting(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hola desde mi-app")
}

func TestRegisterCreatesUserAndReturnsToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "Juan", "email": "juan@test.com", "password": "passwd123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "juan@test.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{"email": "x@test.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/register", map[string]string{"password": "pass"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	payload := map[string]string{"name": "Paco", "email": "paco@test.com", "password": "correcto"}

	resp := postJSON(t, srv.URL+"/auth/register", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/register", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["error"])
}

func TestLogin(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "Luisa", "email": "luisa@test.com", "password": "mipass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{"email": "luisa@test.com", "password": "mipass"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
}

func TestLoginFailureShapeIsUniform(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "Paco", "email": "paco@test.com", "password": "correcto",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	wrongPass := postJSON(t, srv.URL+"/auth/login", map[string]string{"email": "paco@test.com", "password": "mal"})
	unknown := postJSON(t, srv.URL+"/auth/login", map[string]string{"email": "nadie@test.com", "password": "mal"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, decodeBody(t, wrongPass), decodeBody(t, unknown))
}

func TestUsersCRUD(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/users", map[string]string{"name": "Ana", "email": "ana@example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, "ana@example.com", created["email"])
	assert.NotContains(t, created, "password")

	id, ok := created["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	// list contains exactly the created user
	resp, err := http.Get(srv.URL + "/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list, 1)
	assert.Equal(t, "ana@example.com", list[0]["email"])

	// get by id
	resp, err = http.Get(srv.URL + "/users/" + id)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody(t, resp)
	assert.Equal(t, id, got["id"])

	// get unknown id
	resp, err = http.Get(srv.URL + "/users/unknown-id")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// delete twice, both ok
	for i := 0; i < 2; i++ {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/users/"+id, nil)
		require.NoError(t, err)
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["ok"])
	}
}

func TestCreateUserRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/users", map[string]string{
		"email": "eva@example.com", "isAdmin": "true",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/users", map[string]string{"name": "NoMail"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestListIsBounded(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	for i := 0; i < store.MaxListLimit+3; i++ {
		resp := postJSON(t, srv.URL+"/users", map[string]string{
			"email": fmt.Sprintf("bulk%03d@example.com", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Len(t, list, store.MaxListLimit)
}

func TestMe(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{
		"name": "Juan", "email": "juan@test.com", "password": "passwd123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	me := decodeBody(t, meResp)
	assert.Equal(t, "juan@test.com", me["email"])

	// no token
	noTok, err := http.Get(srv.URL + "/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, noTok.StatusCode)
	noTok.Body.Close()

	// garbage token
	req, err = http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	badTok, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, badTok.StatusCode)
	badTok.Body.Close()
}
