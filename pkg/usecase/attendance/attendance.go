// Package attendance implements voice-driven attendance taking: a class
// transcript is matched against the roster and the result is written
// back as one attendance row per student.
package attendance

import (
	"github.com/e-c-centric/ClassHelper/pkg/adapter"
	"github.com/e-c-centric/ClassHelper/pkg/repository"
)

// UseCase provides attendance reconciliation and transcription.
type UseCase struct {
	repo    repository.Repository
	gemini  adapter.Gemini
	storage adapter.Storage
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithStorage enables best-effort archiving of uploaded recordings.
func WithStorage(s adapter.Storage) Option {
	return func(uc *UseCase) {
		uc.storage = s
	}
}

// New creates a new attendance UseCase instance
func New(repo repository.Repository, gemini adapter.Gemini, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:   repo,
		gemini: gemini,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
