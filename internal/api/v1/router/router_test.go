package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courseapi/internal/config"
	"courseapi/internal/database"
	"courseapi/internal/migrations"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t *testing.T
	h http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = migrations.Up(ctx, db)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:        "development",
		PasswordHasher:     "bcrypt",
		CORSAllowedOrigins: []string{"*"},
	}
	h, err := New(cfg, db, nil, zerolog.Nop())
	require.NoError(t, err)
	return &testServer{t: t, h: h}
}

type authn struct{ email, password string }

func (s *testServer) do(method, path, body string, as *authn) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.SetBasicAuth(as.email, as.password)
	}
	w := httptest.NewRecorder()
	s.h.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(email, password string) *authn {
	s.t.Helper()
	body := `{"firstName":"Joe","lastName":"Smith","emailAddress":"` + email + `","password":"` + password + `"}`
	w := s.do(http.MethodPost, "/api/users", body, nil)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return &authn{email: email, password: password}
}

func (s *testServer) createCourse(as *authn, title string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/courses", `{"title":"`+title+`","description":"High-end furniture"}`, as)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return w.Header().Get("Location")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestWelcomeAndFallbacks(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Welcome to the REST API project!"}`, w.Body.String())

	w = s.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, w.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRegisterThenAuthenticate(t *testing.T) {
	s := newTestServer(t)
	joe := s.register("joe@smith.com", "joepassword")

	w := s.do(http.MethodGet, "/api/users", "", joe)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	user := decode[map[string]any](t, w)
	assert.Equal(t, "joe@smith.com", user["emailAddress"])

	t.Run("root mount serves the same routes", func(t *testing.T) {
		w := s.do(http.MethodGet, "/users", "", joe)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users", "", &authn{email: joe.email, password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
	})

	t.Run("unknown user", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users", "", &authn{email: "sam@smith.com", password: "joepassword"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
	})

	t.Run("no credentials", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
	})
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	s.register("joe@smith.com", "joepassword")

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "duplicate email",
			body: `{"firstName":"Joe","lastName":"Smith","emailAddress":"joe@smith.com","password":"other"}`,
			want: []string{"Email address already exists"},
		},
		{
			name: "malformed email",
			body: `{"firstName":"Joe","lastName":"Smith","emailAddress":"joe","password":"other"}`,
			want: []string{"Please provide a valid email address"},
		},
		{
			name: "missing fields",
			body: `{}`,
			want: []string{"First name is required", "Last name is required", "Email address is required", "Password is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/users", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decode[struct {
				Errors []string `json:"errors"`
			}](t, w)
			assert.Equal(t, tt.want, body.Errors)
		})
	}
}

func TestCourseLifecycle(t *testing.T) {
	s := newTestServer(t)
	joe := s.register("joe@smith.com", "joepassword")
	sally := s.register("sally@jones.com", "sallypassword")

	location := s.createCourse(joe, "Build a Basic Bookcase")
	require.Equal(t, "/courses/1", location)

	t.Run("reads are public and hide the password", func(t *testing.T) {
		for _, path := range []string{"/api/courses", "/api" + location} {
			w := s.do(http.MethodGet, path, "", nil)
			require.Equal(t, http.StatusOK, w.Code, path)
			assert.NotContains(t, w.Body.String(), "password", path)
			assert.Contains(t, w.Body.String(), `"emailAddress":"joe@smith.com"`, path)
		}
	})

	t.Run("non-owner update is forbidden and changes nothing", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api"+location, `{"title":"Hijacked","description":"x"}`, sally)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do(http.MethodGet, "/api"+location, "", nil)
		course := decode[map[string]any](t, w)
		assert.Equal(t, "Build a Basic Bookcase", course["title"])
	})

	t.Run("non-owner delete is forbidden", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api"+location, "", sally)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner update with missing field is rejected", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api"+location, `{"title":"Only a title"}`, joe)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Validation error","errors":["Description is required"]}`, w.Body.String())
	})

	t.Run("owner update", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api"+location, `{"title":"Bookcase v2","description":"Updated","materialsNeeded":"* Wood"}`, joe)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = s.do(http.MethodGet, "/api"+location, "", nil)
		course := decode[map[string]any](t, w)
		assert.Equal(t, "Bookcase v2", course["title"])
		assert.Equal(t, "* Wood", course["materialsNeeded"])
	})

	t.Run("owner delete then repeated delete", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api"+location, "", joe)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = s.do(http.MethodDelete, "/api"+location, "", joe)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Course not found"}`, w.Body.String())

		w = s.do(http.MethodGet, "/api"+location, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateCourseValidation(t *testing.T) {
	s := newTestServer(t)
	joe := s.register("joe@smith.com", "joepassword")

	w := s.do(http.MethodPost, "/api/courses", `{"description":"no title"}`, joe)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Validation error","errors":["Title is required"]}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/courses", "", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodPost, "/api/courses", `{"title":"t","description":"d"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewRejectsUnknownHasher(t *testing.T) {
	_, err := New(&config.Config{PasswordHasher: "md5"}, nil, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestRegisterMultibytePasswordOverLimit(t *testing.T) {
	s := newTestServer(t)

	// 40 characters, 80 bytes.
	body := `{"firstName":"Joe","lastName":"Smith","emailAddress":"joe@smith.com","password":"` + strings.Repeat("é", 40) + `"}`
	w := s.do(http.MethodPost, "/api/users", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Validation error","errors":["Password must be at most 72 bytes"]}`, w.Body.String())

	// 36 characters, 72 bytes, is accepted and authenticates.
	joe := s.register("joe@smith.com", strings.Repeat("é", 36))
	w = s.do(http.MethodGet, "/api/users", "", joe)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBlankFieldsAreRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/users", `{"firstName":"   ","lastName":"Smith","emailAddress":"joe@smith.com","password":"joepassword"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Validation error","errors":["First name is required"]}`, w.Body.String())

	joe := s.register("joe@smith.com", "joepassword")

	w = s.do(http.MethodPost, "/api/courses", `{"title":"   ","description":"\t"}`, joe)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Validation error","errors":["Title is required","Description is required"]}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/courses", "", joe)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Validation error","errors":["Title is required","Description is required"]}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/courses", "", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}
