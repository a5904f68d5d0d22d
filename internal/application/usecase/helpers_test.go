package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/application/ports"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// fakeImages guarda referencias en memoria y registra las liberaciones.
type fakeImages struct {
	mu          sync.Mutex
	seq         int
	stored      map[string]bool
	released    []string
	failSave    bool
	failRelease bool
}

func newFakeImages() *fakeImages { return &fakeImages{stored: map[string]bool{}} }

func (f *fakeImages) Save(ctx context.Context, up ports.ImageUpload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return "", domain.Wrap(domain.ErrValidation, "tipo de imagen no permitido")
	}
	f.seq++
	ref := fmt.Sprintf("uploads/img-%d.png", f.seq)
	f.stored[ref] = true
	return ref, nil
}

func (f *fakeImages) Release(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, ref)
	if f.failRelease {
		return errors.New("disco no disponible")
	}
	delete(f.stored, ref)
	return nil
}

func (f *fakeImages) has(ref string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[ref]
}

func upload() *ports.ImageUpload {
	return &ports.ImageUpload{Filename: "a.png", ContentType: "image/png", Size: 10}
}
