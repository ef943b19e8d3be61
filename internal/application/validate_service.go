package application

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/vieraprotocol/subvet/internal/domain"
	"github.com/vieraprotocol/subvet/internal/domain/confidence"
	"github.com/vieraprotocol/subvet/internal/domain/quality"
	"github.com/vieraprotocol/subvet/internal/domain/security"
	"github.com/vieraprotocol/subvet/internal/worker"
)

const securityPassThreshold = 70

// ValidateService orchestrates the validation pipeline: fan the files out
// across analyzers, average category scores, reduce to one confidence value
// and decide the recommendation.
type ValidateService struct {
	cfg          domain.EngineConfig
	security     *security.Analyzer
	quality      *quality.Analyzer
	scorer       *confidence.Scorer
	originality  domain.OriginalityOracle
	completeness domain.CompletenessOracle
	pool         *worker.Pool
}

// NewValidateService wires the analyzers and oracles into a service.
func NewValidateService(
	cfg domain.EngineConfig,
	antivirus domain.AntivirusOracle,
	oracles quality.Oracles,
	originality domain.OriginalityOracle,
	completeness domain.CompletenessOracle,
) (*ValidateService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	workers := cfg.MaxWorkers
	if workers == 0 {
		workers = domain.DefaultConfig().MaxWorkers
	}
	pool, err := worker.New(workers)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}

	return &ValidateService{
		cfg:          cfg,
		security:     security.NewAnalyzer(antivirus, cfg.OracleTimeout),
		quality:      quality.NewAnalyzer(oracles, cfg.OracleTimeout),
		scorer:       confidence.NewScorer(cfg.Weights),
		originality:  originality,
		completeness: completeness,
		pool:         pool,
	}, nil
}

// ValidateSubmission analyzes every file of a submission and reduces the
// per-file results into one Report. Empty file lists and unrecognized
// researcher types are rejected before any analysis begins; degraded oracle
// checks lower scores and add issues instead of failing the run.
func (s *ValidateService) ValidateSubmission(ctx context.Context, submissionID string, files []domain.FileInfo, researcher domain.ResearcherType) (*domain.Report, error) {
	start := time.Now()

	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}
	if err := researcher.Validate(); err != nil {
		return nil, err
	}

	results, err := worker.Map(ctx, s.pool, files, func(ctx context.Context, file domain.FileInfo) (*domain.FileResult, error) {
		return s.evaluateFile(ctx, file, researcher), nil
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing files: %w", err)
	}

	report := s.aggregate(results)
	report.ValidationID = fmt.Sprintf("val_%s_%d", submissionID, start.Unix())
	report.ProcessingTime = time.Since(start)
	report.Timestamp = start

	s.logSummary(report)
	return report, nil
}

// ValidateCode is the single-file variant used when no upload is involved.
func (s *ValidateService) ValidateCode(ctx context.Context, source, language, filename string) (*domain.Report, error) {
	start := time.Now()

	lang, ok := domain.LanguageByName(language)
	if !ok {
		return nil, fmt.Errorf("unsupported language %q (supported: %v)", language, domain.SupportedLanguages())
	}
	if filename == "" {
		filename = "snippet" + lang.DefaultExtension()
	}

	file := domain.FileInfo{
		Name:    filename,
		Size:    int64(len(source)),
		Content: []byte(source),
	}

	secScore, secIssues := s.security.Scan(ctx, file)
	techScore, techIssues := s.quality.ValidateSource(ctx, source, lang, filename)

	result := &domain.FileResult{
		File: file,
		Scores: map[domain.Category]int{
			domain.CategorySecurity:  secScore,
			domain.CategoryTechnical: techScore,
		},
		Issues: append(secIssues, techIssues...),
	}
	s.scoreStubbedCategories(ctx, file, result)

	report := s.aggregate([]*domain.FileResult{result})
	report.ProcessingTime = time.Since(start)
	report.Timestamp = start
	return report, nil
}

// evaluateFile produces the per-file category scores and issues. Code
// quality only applies to coder submissions; the stubbed categories come
// from their oracles and are simply omitted when one is unavailable, so
// weight renormalization absorbs the gap.
func (s *ValidateService) evaluateFile(ctx context.Context, file domain.FileInfo, researcher domain.ResearcherType) *domain.FileResult {
	secScore, issues := s.security.Scan(ctx, file)

	result := &domain.FileResult{
		File: file,
		Scores: map[domain.Category]int{
			domain.CategorySecurity: secScore,
		},
	}

	if researcher == domain.ResearcherCoder {
		techScore, techIssues := s.quality.Validate(ctx, file)
		result.Scores[domain.CategoryTechnical] = techScore
		issues = append(issues, techIssues...)
	}

	result.Issues = issues
	s.scoreStubbedCategories(ctx, file, result)
	return result
}

func (s *ValidateService) scoreStubbedCategories(ctx context.Context, file domain.FileInfo, result *domain.FileResult) {
	if s.originality != nil {
		if score, err := s.originality.Score(ctx, file); err == nil {
			result.Scores[domain.CategoryOriginality] = domain.ClampScore(score)
		}
	}
	if s.completeness != nil {
		if score, err := s.completeness.Score(ctx, file); err == nil {
			result.Scores[domain.CategoryCompleteness] = domain.ClampScore(score)
		}
	}
}

// aggregate averages category scores across files, concatenates issues in
// file order and derives confidence and the recommendation.
func (s *ValidateService) aggregate(results []*domain.FileResult) *domain.Report {
	sums := make(map[domain.Category]float64)
	counts := make(map[domain.Category]int)
	var issues []domain.Issue

	for _, res := range results {
		for cat, score := range res.Scores {
			sums[cat] += float64(score)
			counts[cat]++
		}
		issues = append(issues, res.Issues...)
	}

	means := make(map[domain.Category]float64, len(sums))
	scores := make(map[domain.Category]int, len(sums))
	for cat, sum := range sums {
		mean := sum / float64(counts[cat])
		means[cat] = mean
		scores[cat] = domain.ClampScore(int(math.Round(mean)))
	}

	conf := s.scorer.Score(means)

	return &domain.Report{
		Confidence:     conf,
		SecurityPassed: means[domain.CategorySecurity] >= securityPassThreshold,
		Scores:         scores,
		Issues:         issues,
		Recommendation: domain.Recommend(conf, issues),
		FilesProcessed: len(results),
	}
}

func (s *ValidateService) logSummary(report *domain.Report) {
	errors, warnings, infos := 0, 0, 0
	for _, iss := range report.Issues {
		switch iss.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		case domain.SeverityInfo:
			infos++
		}
	}

	log.Printf("Validation %s completed:", report.ValidationID)
	log.Printf("  Files: %d", report.FilesProcessed)
	log.Printf("  Confidence: %d (%s)", report.Confidence, confidence.Label(report.Confidence))
	log.Printf("  Issues: %d errors, %d warnings, %d info", errors, warnings, infos)
	log.Printf("  Recommendation: %s", report.Recommendation)

	stats := s.pool.Stats()
	log.Printf("  Worker pool: %d tasks, %d failed", stats["total_tasks"], stats["failed_tasks"])
}
