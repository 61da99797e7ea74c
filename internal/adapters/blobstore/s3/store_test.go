package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 acepta PUT /<bucket>/<key> (path style) y guarda el body.
type fakeS3 struct {
	mu     sync.Mutex
	status int
	puts   map[string][]byte
	ctypes map[string]string
	calls  int
}

func newFakeS3(status int) *fakeS3 {
	return &fakeS3{status: status, puts: map[string][]byte{}, ctypes: map[string]string{}}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.status != http.StatusOK {
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>InternalError</Code><Message>boom</Message></Error>`)
		return
	}
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	f.puts[r.URL.Path] = body
	f.ctypes[r.URL.Path] = r.Header.Get("Content-Type")
	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(http.StatusOK)
}

func newTestStore(t *testing.T, srv *httptest.Server) *Store {
	t.Helper()
	st, err := New(context.Background(), Options{
		BaseURL:         "https://s3.us-east-1.amazonaws.com/",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		UsePathStyle:    true,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	require.NoError(t, err)
	return st
}

func TestPut_UploadsAndReturnsRetrievalURL(t *testing.T) {
	fake := newFakeS3(http.StatusOK)
	srv := httptest.NewServer(fake)
	defer srv.Close()

	st := newTestStore(t, srv)

	url, err := st.Put(context.Background(), "catcollector-avatar-946", "jdbw7f.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://s3.us-east-1.amazonaws.com/catcollector-avatar-946/jdbw7f.png", url)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []byte("png-bytes"), fake.puts["/catcollector-avatar-946/jdbw7f.png"])
	assert.Equal(t, "image/png", fake.ctypes["/catcollector-avatar-946/jdbw7f.png"])
}

func TestPut_ServerErrorIsNotRetried(t *testing.T) {
	fake := newFakeS3(http.StatusInternalServerError)
	srv := httptest.NewServer(fake)
	defer srv.Close()

	st := newTestStore(t, srv)

	_, err := st.Put(context.Background(), "bucket", "abc123.jpg", strings.NewReader("x"))
	require.Error(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 1, fake.calls)
}

func TestURL(t *testing.T) {
	st := NewWithClient(nil, "https://example.test/")
	assert.Equal(t, "https://example.test/b/k", st.URL("b", "k"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", contentType("a1b2c3.PNG"))
	assert.Equal(t, "", contentType("a1b2c3"))
}
