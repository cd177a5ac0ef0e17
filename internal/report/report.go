// Package report renders completed interviews as JSON, HTML or XLSX documents.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

const Version = "1.0"

var ErrUnsupportedFormat = errors.New("unsupported report format")

type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatHTML, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
}

type Report struct {
	Metadata          Metadata                 `json:"report_metadata"`
	Candidate         models.Candidate         `json:"candidate"`
	Results           []models.ResultRecord    `json:"results"`
	Analysis          models.AggregateAnalysis `json:"analysis"`
	AIRecommendations []string                 `json:"ai_recommendations,omitempty"`
}

type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Build stamps a report with the generation time.
func (g *Generator) Build(candidate models.Candidate, results []models.ResultRecord, analysis models.AggregateAnalysis, aiRecommendations []string) *Report {
	if results == nil {
		results = []models.ResultRecord{}
	}
	return &Report{
		Metadata:          Metadata{GeneratedAt: g.now(), Version: Version},
		Candidate:         candidate,
		Results:           results,
		Analysis:          analysis,
		AIRecommendations: aiRecommendations,
	}
}

func (g *Generator) Render(format Format, r *Report) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.JSON(r)
	case FormatHTML:
		return g.HTML(r)
	case FormatXLSX:
		return g.XLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (g *Generator) JSON(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// Save renders the report into dir and returns the written path.
func (g *Generator) Save(dir string, format Format, r *Report) (string, error) {
	data, err := g.Render(format, r)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, Filename(r.Candidate.Name, r.Metadata.GeneratedAt, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Filename builds <Name_With_Underscores>_<YYYYmmdd_HHMMSS>.<ext>.
func Filename(name string, at time.Time, format Format) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "candidate"
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("%s_%s.%s", name, at.Format("20060102_150405"), format)
}
