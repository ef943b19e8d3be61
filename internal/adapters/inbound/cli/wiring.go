package cli

import (
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/clamav"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/lint"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/statics"
	"github.com/vieraprotocol/subvet/internal/application"
	"github.com/vieraprotocol/subvet/internal/domain"
)

// buildService wires the standard set of outbound adapters into the
// validation service.
func buildService(cfg domain.EngineConfig) (*application.ValidateService, error) {
	var antivirus domain.AntivirusOracle
	if cfg.ClamdAddress != "" {
		antivirus = clamav.New(cfg.ClamdAddress)
	}

	return application.NewValidateService(
		cfg,
		antivirus,
		lint.NewOracles(cfg),
		statics.NewOriginality(cfg),
		statics.NewCompleteness(cfg),
	)
}
