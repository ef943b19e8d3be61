package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/vieraprotocol/subvet/internal/domain"
	"github.com/vieraprotocol/subvet/internal/domain/confidence"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))

	verdictColors = map[domain.Recommendation]lipgloss.Color{
		domain.RecommendApprove:     success,
		domain.RecommendHumanReview: warning,
		domain.RecommendReject:      danger,
	}
)

// RenderReport renders a validation report for the terminal.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	verdictColor := verdictColors[report.Recommendation]
	title := headerStyle.Render("subvet")
	subtitle := dimStyle.Render("Submission Validation Report")
	confLine := lipgloss.NewStyle().Bold(true).Foreground(verdictColor).
		Render(fmt.Sprintf("%d / 100  confidence (%s)", report.Confidence, confidence.Label(report.Confidence)))
	verdict := lipgloss.NewStyle().Bold(true).Foreground(verdictColor).
		Render(strings.ToUpper(string(report.Recommendation)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + confLine + "\n" + verdict))
	b.WriteString("\n\n")

	for _, cat := range domain.Categories {
		score, ok := report.Scores[cat]
		if !ok {
			continue
		}
		renderCategory(&b, cat, score)
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	renderIssues(&b, report.Issues)

	b.WriteString("\n  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d files · %dms", report.FilesProcessed, report.ProcessingTime.Milliseconds())))
	if report.CommitHash != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" · %.8s", report.CommitHash)))
	}
	if report.ValidationID != "" {
		b.WriteString(dimStyle.Render(" · " + report.ValidationID))
	}
	b.WriteString("\n")

	return b.String()
}

func renderCategory(b *strings.Builder, cat domain.Category, score int) {
	bar := renderBar(score)
	name := catNameStyle.Render(fmt.Sprintf("%-18s", humanize(string(cat))))
	b.WriteString(fmt.Sprintf("  %s %s %3d\n", name, bar, score))
}

func renderBar(score int) string {
	const width = 30
	filled := score * width / 100

	color := danger
	switch {
	case score >= 85:
		color = success
	case score >= 70:
		color = warning
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := faintStyle.Render(strings.Repeat("░", width-filled))
	return bar + rest
}

func renderIssues(b *strings.Builder, issues []domain.Issue) {
	if len(issues) == 0 {
		b.WriteString("  " + dimStyle.Render("No issues found") + "\n")
		return
	}

	errors, warnings, infos := countSeverities(issues)
	b.WriteString("  " + titleStyle.Render("Issues") + "  ")
	if errors > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errors)) + "  ")
	}
	if warnings > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnings)) + "  ")
	}
	if infos > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infos)))
	}
	b.WriteString("\n\n")

	for _, iss := range sortBySeverity(issues) {
		tag := severityTag(iss.Severity)
		location := iss.File
		if iss.Line > 0 {
			location = fmt.Sprintf("%s:%d", iss.File, iss.Line)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", tag, iss.Message))
		b.WriteString("     " + fileStyle.Render(location) + faintStyle.Render("  "+humanize(iss.Rule)) + "\n")
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("✗ error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("⚠ warn ")
	default:
		return infoTagStyle.Render("ℹ info ")
	}
}

func sortBySeverity(issues []domain.Issue) []domain.Issue {
	order := []string{domain.SeverityError, domain.SeverityWarning, domain.SeverityInfo}
	sorted := make([]domain.Issue, 0, len(issues))
	for _, severity := range order {
		for _, iss := range issues {
			if iss.Severity == severity {
				sorted = append(sorted, iss)
			}
		}
	}
	return sorted
}

func countSeverities(issues []domain.Issue) (errors, warnings, infos int) {
	for _, iss := range issues {
		switch iss.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		case domain.SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}

// humanize turns rule and category identifiers into readable labels.
// External linters mix snake_case, kebab-case and camelCase rule names.
func humanize(identifier string) string {
	identifier = strings.NewReplacer("_", " ", "-", " ").Replace(identifier)

	var words []string
	for _, word := range strings.Fields(identifier) {
		words = append(words, camelcase.Split(word)...)
	}
	return strings.ToLower(strings.Join(words, " "))
}

// RenderHistory renders past validation outcomes for a submission.
func RenderHistory(entries []domain.ReportEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history") + "\n"
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n\n")
	for _, e := range entries {
		color := verdictColors[e.Recommendation]
		verdict := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%-12s", e.Recommendation))
		b.WriteString(fmt.Sprintf("  %s %s %3d  %s\n",
			dimStyle.Render(e.Timestamp), verdict, e.Confidence, faintStyle.Render(e.ValidationID)))
	}
	return b.String()
}
