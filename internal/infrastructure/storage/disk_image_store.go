// Package storage implementa ports.ImageStore sobre un sistema de archivos afero
// (disco en producción, memoria en tests).
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// DefaultMaxBytes tamaño máximo de una imagen (5 MiB).
const DefaultMaxBytes int64 = 5 << 20

// allowedTypes tipos de imagen aceptados y su extensión.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// DiskImageStore guarda las imágenes en dir con nombre aleatorio.
// Las referencias devueltas son "<prefix>/<archivo>" con separador "/".
type DiskImageStore struct {
	fs       afero.Fs
	dir      string
	prefix   string
	maxBytes int64
}

// NewDiskImageStore crea dir si no existe. prefix es la referencia pública (p.ej. "uploads").
func NewDiskImageStore(fs afero.Fs, dir, prefix string, maxBytes int64) (*DiskImageStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	prefix = strings.Trim(strings.ReplaceAll(prefix, `\`, "/"), "/")
	return &DiskImageStore{fs: fs, dir: dir, prefix: prefix, maxBytes: maxBytes}, nil
}

// MaxBytes tamaño máximo aceptado.
func (s *DiskImageStore) MaxBytes() int64 { return s.maxBytes }

// Save valida tipo y tamaño y escribe el archivo. Un archivo rechazado falla la petición.
func (s *DiskImageStore) Save(ctx context.Context, up ports.ImageUpload) (string, error) {
	ext, ok := allowedTypes[strings.ToLower(strings.TrimSpace(up.ContentType))]
	if !ok {
		return "", domain.Wrap(domain.ErrValidation, "tipo de imagen no permitido (jpeg, png o gif)")
	}
	if up.Size > s.maxBytes {
		return "", domain.Wrap(domain.ErrValidation, fmt.Sprintf("la imagen supera el máximo de %d bytes", s.maxBytes))
	}
	if up.Open == nil {
		return "", domain.Wrap(domain.ErrValidation, "imagen vacía")
	}
	src, err := up.Open()
	if err != nil {
		return "", fmt.Errorf("storage: abrir upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	full := path.Join(s.dir, name)
	dst, err := s.fs.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear %s: %w", full, err)
	}
	// lee como máximo maxBytes+1 para detectar tamaños declarados falsos
	n, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > s.maxBytes {
		err = domain.Wrap(domain.ErrValidation, fmt.Sprintf("la imagen supera el máximo de %d bytes", s.maxBytes))
	}
	if err != nil {
		_ = s.fs.Remove(full)
		return "", err
	}
	return s.prefix + "/" + name, nil
}

// Release borra el archivo de ref. Una referencia ya inexistente no es error.
func (s *DiskImageStore) Release(ctx context.Context, ref string) error {
	name, err := s.fileName(ref)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(path.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: borrar %s: %w", ref, err)
	}
	return nil
}

// fileName extrae el nombre del archivo; rechaza referencias fuera del prefijo.
func (s *DiskImageStore) fileName(ref string) (string, error) {
	ref = strings.TrimPrefix(strings.ReplaceAll(ref, `\`, "/"), "/")
	name := strings.TrimPrefix(ref, s.prefix+"/")
	if name == ref || name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", fmt.Errorf("storage: referencia inválida %q", ref)
	}
	return name, nil
}
