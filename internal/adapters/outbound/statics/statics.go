// Package statics provides fixed-baseline implementations of the
// originality and completeness oracles. Real plagiarism detection and
// milestone checking plug in behind the same ports later.
package statics

import (
	"context"

	"github.com/vieraprotocol/subvet/internal/domain"
)

// Baseline scores every file with a constant value.
type Baseline struct {
	value int
}

// NewOriginality returns the static originality oracle.
func NewOriginality(cfg domain.EngineConfig) *Baseline {
	return &Baseline{value: cfg.OriginalityBaseline}
}

// NewCompleteness returns the static completeness oracle.
func NewCompleteness(cfg domain.EngineConfig) *Baseline {
	return &Baseline{value: cfg.CompletenessBaseline}
}

func (b *Baseline) Score(_ context.Context, _ domain.FileInfo) (int, error) {
	return b.value, nil
}
