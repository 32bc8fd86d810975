package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/big" {
			w.Write(make([]byte, 2048))
			return
		}
		if r.URL.Path == "/ok" {
			w.Write([]byte("hello"))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	b, err := GetBytes(context.Background(), srv.Client(), srv.URL+"/ok")
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))

	_, err = GetBytes(context.Background(), srv.Client(), srv.URL+"/denied")
	require.ErrorContains(t, err, "status 403")

	b, err = getBytesLimit(context.Background(), srv.Client(), srv.URL+"/big", 2048)
	require.NoError(t, err)
	require.Len(t, b, 2048)

	_, err = getBytesLimit(context.Background(), srv.Client(), srv.URL+"/big", 1024)
	require.ErrorContains(t, err, "exceeds 1024 bytes")
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.jpg")
	require.NoError(t, WriteFileAtomic(path, []byte("data")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "data", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file cleaned up")
}
