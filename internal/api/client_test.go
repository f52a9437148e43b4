package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yagomarket/internal/session"
	"yagomarket/internal/types"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.NewAt(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return s
}

func TestClient_LoginThenAuthenticatedRequest(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token":"tok-abc","user":{"id":1,"name":"Ana","email":"ana@example.com","role":"client"}}`))
		case "/api/cart-items":
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := newTestStore(t)
	client := New(Config{BaseURL: srv.URL}, store, nil)

	sess, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, store.SetSession(sess.Token, sess.User))

	_, err = client.CartItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth, "authenticated call must carry the bearer header")
}

func TestClient_AnonymousRequestHasNoBearerHeader(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		w.Write([]byte(`{"data":[],"total":0}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, newTestStore(t), nil)
	_, err := client.ListProducts(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestClient_CategoryDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/categories/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":3,"name":"Roupas","description":"Moda e acessórios"}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, newTestStore(t), nil)
	cat, err := client.Category(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Roupas", cat.Name)
	assert.Equal(t, "Moda e acessórios", cat.Description)
}

func TestClient_ValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"email":["O e-mail já está em uso."],"password":["A senha é muito curta."]}}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, nil, nil)
	_, err := client.Register(context.Background(), "Ana", "ana@example.com", "x", "client")
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Equal(t, "O e-mail já está em uso.", apiErr.FieldError("email"))
	assert.Equal(t, "", apiErr.FieldError("name"))
}

func TestClient_FlatMessageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Credenciais inválidas."}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, nil, nil)
	_, err := client.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Credenciais inválidas.", apiErr.Message)
}

func TestClient_NotFoundSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"No query results"}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, nil, nil)
	_, err := client.GetProduct(context.Background(), "not-a-real-slug")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_TransportFailureIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(Config{BaseURL: srv.URL}, nil, nil)
	_, err := client.Categories(context.Background())
	require.Error(t, err)
	_, ok := AsAPIError(err)
	assert.False(t, ok, "transport failures must stay distinct from API errors")
}

func TestClient_DuplicateAddIssuesTwoRequests(t *testing.T) {
	var posts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/cart-items" {
			posts++
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, client.AddCartItem(context.Background(), 42, 1, types.Price(9.9)))
	require.NoError(t, client.AddCartItem(context.Background(), 42, 1, types.Price(9.9)))
	assert.Equal(t, 2, posts, "client never dedups; merge semantics belong to the backend")
}

func TestClient_CartItemsCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cart-items-count", r.URL.Path)
		w.Write([]byte(`{"count":4}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, nil, nil)
	n, err := client.CartItemsCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestClient_UploadRejectsTooManyImages(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:0"}, nil, nil)
	err := client.UploadProductImages(context.Background(), 1,
		[]string{"a", "b", "c", "d", "e", "f"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 5 images")
}
