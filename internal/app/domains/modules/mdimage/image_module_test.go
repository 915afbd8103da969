package mdimage

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kcstudio/storefront/internal/app/infra/imagehost"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/logger"
)

type fakeHost struct {
	url   string
	err   error
	calls int
}

func (h *fakeHost) Upload(_ context.Context, _ string) (string, error) {
	h.calls++
	return h.url, h.err
}

type brokenStore struct{}

func (brokenStore) Save(context.Context, []byte) (string, error) {
	return "", errors.New("disk full")
}

const base = "http://localhost:5000"

var dataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

func newStore(t *testing.T) *imagehost.LocalStore {
	store, err := imagehost.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(dataURL))
	assert.NoError(t, Validate("https://res.cloudinary.com/x/a.png"))
	assert.ErrorIs(t, Validate("ftp://x/a.png"), errorx.ErrInvalidImage)
	assert.ErrorIs(t, Validate("hello"), errorx.ErrInvalidImage)
	assert.ErrorIs(t, Validate("https://"), errorx.ErrInvalidImage)
}

func TestResolveRemoteURLKept(t *testing.T) {
	host := &fakeHost{}
	m := NewImageModule(host, newStore(t), base, logger.NewNop())

	r, err := m.Resolve(context.Background(), "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", r.URL)
	assert.True(t, r.Remote)
	assert.Zero(t, host.calls)

	r, err = m.Resolve(context.Background(), base+"/uploads/x.png")
	require.NoError(t, err)
	assert.False(t, r.Remote, "own uploads are not gallery material")
}

func TestResolveUploadsToHost(t *testing.T) {
	host := &fakeHost{url: "https://res.cloudinary.com/demo/keychain-orders/a.png"}
	m := NewImageModule(host, newStore(t), base, logger.NewNop())

	r, err := m.Resolve(context.Background(), dataURL)
	require.NoError(t, err)
	assert.Equal(t, host.url, r.URL)
	assert.True(t, r.Remote)
}

func TestResolveFallsBackToLocal(t *testing.T) {
	store := newStore(t)
	for name, host := range map[string]ImageHost{
		"host failed":   &fakeHost{err: errors.New("503")},
		"host disabled": nil,
	} {
		t.Run(name, func(t *testing.T) {
			m := NewImageModule(host, store, base, logger.NewNop())

			r, err := m.Resolve(context.Background(), dataURL)
			require.NoError(t, err)
			assert.False(t, r.Remote)
			require.True(t, strings.HasPrefix(r.URL, base+"/uploads/"), r.URL)

			_, err = os.Stat(filepath.Join(store.Dir(), strings.TrimPrefix(r.URL, base+"/uploads/")))
			assert.NoError(t, err)
		})
	}
}

func TestResolveEmptyWhenFallbackFails(t *testing.T) {
	m := NewImageModule(&fakeHost{err: errors.New("503")}, brokenStore{}, base, logger.NewNop())

	r, err := m.Resolve(context.Background(), dataURL)
	require.NoError(t, err)
	assert.Empty(t, r.URL)
	assert.False(t, r.Remote)

	r, err = m.Resolve(context.Background(), "data:image/png;base64,%%%")
	require.NoError(t, err)
	assert.Empty(t, r.URL, "undecodable payload yields empty reference")
}

func TestResolveRejectsUnknownScheme(t *testing.T) {
	m := NewImageModule(nil, newStore(t), base, logger.NewNop())
	_, err := m.Resolve(context.Background(), "file:///etc/passwd")
	assert.ErrorIs(t, err, errorx.ErrInvalidImage)
}

func TestDecodeDataURL(t *testing.T) {
	data, err := decodeDataURL("data:image/png;base64,aGVsbG8")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = decodeDataURL("data:image/png,raw")
	assert.Error(t, err)
	_, err = decodeDataURL("data:image/png;base64")
	assert.Error(t, err)
}
