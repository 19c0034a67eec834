// Package report aggregates per-student event logs into summaries and
// synthesizes narrative reports and participation analyses through the
// completion service.
package report

import (
	"github.com/e-c-centric/ClassHelper/pkg/adapter"
	"github.com/e-c-centric/ClassHelper/pkg/repository"
)

// UseCase provides report generation and participation analysis.
type UseCase struct {
	repo   repository.Repository
	gemini adapter.Gemini
}

// New creates a new report UseCase instance
func New(repo repository.Repository, gemini adapter.Gemini) *UseCase {
	return &UseCase{
		repo:   repo,
		gemini: gemini,
	}
}
