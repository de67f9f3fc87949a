package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Skotchmaster/bargain_shop/internal/repo"
	"github.com/Skotchmaster/bargain_shop/internal/search"
	"github.com/Skotchmaster/bargain_shop/internal/service"
	"github.com/Skotchmaster/bargain_shop/internal/storage"
	"github.com/Skotchmaster/bargain_shop/internal/testdb"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Events *events.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := testdb.New(t)
	r := &repo.GormRepo{DB: gdb}
	rec := &events.Recorder{}

	uploads := filepath.Join(t.TempDir(), "uploads")
	images, err := storage.NewDiskStore(uploads, "/uploads")
	require.NoError(t, err)

	authSvc := &service.AuthService{Repo: r, Events: rec, JWTSecret: []byte("test-secret"), TokenTTL: time.Hour}
	orders := &service.OrderService{Repo: r, Events: rec}

	e := NewEcho(logging.NewWithWriter(io.Discard, "error"), nil)
	Register(e, &Deps{
		DB:              gdb,
		Authn:           authSvc,
		AuthHandler:     &AuthHTTP{Svc: authSvc},
		CatalogHandler:  &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Events: rec, Images: images, Search: search.Disabled{}}},
		BargainHandler:  &BargainHTTP{Svc: &service.BargainService{Repo: r, Events: rec}},
		CartHandler:     &CartHTTP{Svc: &service.CartService{Repo: r, Events: rec}, Orders: orders},
		OrderHandler:    &OrderHTTP{Svc: orders},
		UploadDir:       uploads,
		UploadURLPrefix: "/uploads",
	})

	return &testEnv{T: t, E: e, Events: rec}
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) multipart(method, path, token string, fields map[string]string, files ...string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	for _, name := range files {
		part, err := w.CreateFormFile("images", name)
		require.NoError(env.T, err)
		_, err = part.Write([]byte("fake image " + name))
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireMsg(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	require.Equal(t, msg, decode[map[string]any](t, rec)["msg"])
}

// signup registers an account and returns its token and id.
func (env *testEnv) signup(email, role string) (string, string) {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": email, "email": email, "password": "password", "role": role,
	})
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "password"})
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}](env.T, rec)
	require.NotEmpty(env.T, resp.Token)
	return resp.Token, resp.User.ID
}
