package ports

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"
)

// ImageUpload imagen recibida en una petición, todavía no almacenada.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ImageStore almacena imágenes subidas (avatares, productos) y las libera.
// Save valida tipo y tamaño y devuelve la referencia pública a guardar en la fila.
type ImageStore interface {
	Save(ctx context.Context, upload ImageUpload) (string, error)
	Release(ctx context.Context, ref string) error
}

// ReleaseBestEffort libera ref sin propagar el error: la limpieza de archivos nunca
// hace fallar la operación principal. Se llama después del commit de la transacción.
func ReleaseBestEffort(ctx context.Context, store ImageStore, ref, reason string) {
	if store == nil || ref == "" {
		return
	}
	if err := store.Release(ctx, ref); err != nil {
		log.Warn().Err(err).Str("image", ref).Str("reason", reason).Msg("no se pudo liberar la imagen")
	}
}
