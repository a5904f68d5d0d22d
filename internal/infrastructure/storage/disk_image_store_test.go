package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

func upload(contentType string, body []byte) ports.ImageUpload {
	return ports.ImageUpload{
		Filename:    "foto",
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		},
	}
}

func newStore(t *testing.T, max int64) (*DiskImageStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := NewDiskImageStore(fs, "uploads", "/uploads/", max)
	require.NoError(t, err)
	return s, fs
}

func TestSaveAndRelease(t *testing.T) {
	ctx := context.Background()
	s, fs := newStore(t, 0)

	ref, err := s.Save(ctx, upload("image/png", []byte("png-data")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	data, err := afero.ReadFile(fs, ref)
	require.NoError(t, err)
	assert.Equal(t, "png-data", string(data))

	require.NoError(t, s.Release(ctx, ref))
	ok, err := afero.Exists(fs, ref)
	require.NoError(t, err)
	assert.False(t, ok)

	// liberar dos veces no es error
	require.NoError(t, s.Release(ctx, ref))
}

func TestSave_RechazaTipo(t *testing.T) {
	s, _ := newStore(t, 0)
	_, err := s.Save(context.Background(), upload("application/pdf", []byte("x")))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSave_RechazaTamano(t *testing.T) {
	s, fs := newStore(t, 4)

	_, err := s.Save(context.Background(), upload("image/gif", []byte("12345")))
	assert.ErrorIs(t, err, domain.ErrValidation)

	// tamaño declarado falso: se corta al leer y no queda archivo
	up := upload("image/gif", []byte("123456789"))
	up.Size = 1
	_, err = s.Save(context.Background(), up)
	assert.ErrorIs(t, err, domain.ErrValidation)

	files, err := afero.ReadDir(fs, "uploads")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRelease_NormalizaYRechazaReferencias(t *testing.T) {
	ctx := context.Background()
	s, fs := newStore(t, 0)
	ref, err := s.Save(ctx, upload("image/jpeg", []byte("jpg")))
	require.NoError(t, err)

	require.NoError(t, s.Release(ctx, strings.ReplaceAll(ref, "/", `\`)))
	ok, err := afero.Exists(fs, ref)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, s.Release(ctx, "uploads/../config.env"))
	assert.Error(t, s.Release(ctx, "otra/archivo.png"))
}
