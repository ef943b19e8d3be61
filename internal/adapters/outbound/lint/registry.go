package lint

import (
	"github.com/vieraprotocol/subvet/internal/domain"
	"github.com/vieraprotocol/subvet/internal/domain/quality"
)

// NewOracles builds the per-language oracle registry from configured tool
// paths.
func NewOracles(cfg domain.EngineConfig) quality.Oracles {
	return quality.Oracles{
		Syntax: map[domain.Language]domain.SyntaxOracle{
			domain.LanguagePython:     NewPythonSyntax(cfg.PythonBin),
			domain.LanguageJavaScript: NewNodeSyntax(cfg.NodeBin),
		},
		Lint: map[domain.Language]domain.LintOracle{
			domain.LanguagePython:     NewFlake8(cfg.Flake8Bin),
			domain.LanguageJavaScript: NewESLint(cfg.ESLintBin),
		},
		SecurityLint: map[domain.Language]domain.SecurityLintOracle{
			domain.LanguagePython: NewBandit(cfg.BanditBin),
		},
	}
}
