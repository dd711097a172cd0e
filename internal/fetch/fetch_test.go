package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	page, err := New("swissknife-test", 1024).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(page.Body))
	assert.Equal(t, "application/json", page.ContentType)
	assert.Equal(t, "swissknife-test", ua)
	assert.Equal(t, srv.URL, page.URL.String())
}

func TestGet_Charset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
		_, _ = w.Write([]byte{'c', 'a', 'f', 0xe9})
	}))
	defer srv.Close()

	page, err := New("", 1024).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "café", string(page.Body))
}

func TestGet_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
		default:
			_, _ = w.Write([]byte("ok"))
		}
	}))
	defer srv.Close()

	c := New("", 1024)

	_, err := c.Get(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "404")

	_, err = c.Get(context.Background(), srv.URL+"/big")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = c.Get(context.Background(), "ftp://example.com/file")
	assert.ErrorIs(t, err, ErrScheme)
}

func TestGet_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("", 1024).Get(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}
