package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/invtrack/apiserver/internal/cache"
	"github.com/invtrack/apiserver/internal/services"
	"github.com/invtrack/apiserver/internal/store"
	"github.com/invtrack/apiserver/types"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// stubItemRepo is an in-memory ItemRepository recording store traffic.
type stubItemRepo struct {
	items map[string]int
	calls int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]int)}
}

func (r *stubItemRepo) List(_ context.Context) ([]types.Item, error) {
	r.calls++
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]types.Item, 0, len(names))
	for _, name := range names {
		items = append(items, types.Item{Name: name, Quantity: r.items[name]})
	}
	return items, nil
}

func (r *stubItemRepo) Create(_ context.Context, name string, quantity int) error {
	r.calls++
	if _, exists := r.items[name]; exists {
		return store.ErrConflict
	}
	r.items[name] = quantity
	return nil
}

func (r *stubItemRepo) UpdateQuantity(_ context.Context, name string, quantity int) error {
	r.calls++
	if _, exists := r.items[name]; !exists {
		return store.ErrNotFound
	}
	r.items[name] = quantity
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, name string) error {
	r.calls++
	if _, exists := r.items[name]; !exists {
		return store.ErrNotFound
	}
	delete(r.items, name)
	return nil
}

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users  map[string]types.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]types.User)}
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	user, ok := r.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *stubUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return types.User{}, store.ErrConflict
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = user
	return user, nil
}

type testEnv struct {
	router   *chi.Mux
	itemRepo *stubItemRepo
	userRepo *stubUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	itemRepo := newStubItemRepo()
	userRepo := newStubUserRepo()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	inventory := services.NewInventoryService(itemRepo, cache.NewMemoryCache(), nil, "", log)
	users := services.NewUserService(userRepo)

	pageHandler, err := NewPageHandler(testSecret)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Get("/healthz", Healthz)
	PageRouter(router, pageHandler)
	AuthRouter(router, users, testSecret)
	router.Route("/items", func(r chi.Router) {
		ItemsRouter(r, inventory, RequireSession(testSecret))
	})

	return &testEnv{router: router, itemRepo: itemRepo, userRepo: userRepo}
}

// do executes a request against the router and decodes the JSON body into out
// when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

// login registers alice and returns her session cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/register", map[string]any{"username": "alice", "password": "pw1"}, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/login", map[string]any{"username": "alice", "password": "pw1"}, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}
