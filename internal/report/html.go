package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

const (
	questionPreviewLength = 80
	barWidthPx            = 200
)

type scoreBar struct {
	Label string
	Score float64
	Width float64
}

type htmlView struct {
	*Report
	Overall  float64
	Bars     []scoreBar
	Summary  models.AnalysisSummary
	Footer   string
	Patterns []string
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"preview": preview,
	"score":   formatScore,
	"inc":     func(i int) int { return i + 1 },
	"fixed":   func(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) },
	"orNA": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "N/A"
		}
		return s
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Interview Report - {{orNA .Candidate.Name}}</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 40px; color: #333; background-color: #f5f5f5; }
.container { max-width: 1000px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
h1, h2 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
.header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 1px solid #ecf0f1; padding-bottom: 20px; }
.overall-score { text-align: center; font-size: 24px; font-weight: bold; color: #27ae60; }
.score-item { margin: 15px 0; }
.score-bar { height: 30px; width: 200px; background: #ecf0f1; border-radius: 5px; overflow: hidden; margin: 5px 0; }
.bar-fill { height: 100%; background: linear-gradient(90deg, #3498db, #27ae60); }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
table th { background: #34495e; color: white; padding: 12px; text-align: left; }
table td { padding: 12px; border-bottom: 1px solid #ecf0f1; }
.patterns, .recommendations { background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0; }
.footer { text-align: center; color: #7f8c8d; margin-top: 40px; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
<h1>Interview Assessment Report</h1>
<div class="header">
  <div class="candidate-info">
    <h3>{{orNA .Candidate.Name}}</h3>
    <p><strong>Role:</strong> {{orNA .Candidate.Role}}</p>
    <p><strong>Experience:</strong> {{orNA .Candidate.ExperienceLevel}}</p>
    <p><strong>Domain:</strong> {{orNA .Candidate.Domain}}</p>
  </div>
  <div class="overall-score">
    <div>{{fixed .Overall 2}}</div>
    <div style="font-size: 16px; color: #7f8c8d;">Overall Score</div>
  </div>
</div>
<h2>Summary</h2>
<p><strong>Level:</strong> {{orNA .Summary.OverallLevel}}</p>
<p>{{orNA .Summary.Interpretation}}</p>
<h2>Dimension Scores</h2>
{{range .Bars}}<div class="score-item">
  <label>{{.Label}}</label>
  <div class="score-bar"><div class="bar-fill" style="width: {{fixed .Width 0}}px;"></div></div>
  <span>{{score .Score}}/5</span>
</div>
{{end}}
<h2>Question Results</h2>
<table>
<thead><tr><th>#</th><th>Question</th><th>Clarity</th><th>Accuracy</th><th>Completeness</th><th>Confidence</th><th>Overall</th></tr></thead>
<tbody>
{{range $i, $r := .Results}}<tr>
  <td>{{inc $i}}</td>
  <td>{{preview $r.QuestionText}}</td>
  <td>{{$r.Scores.Clarity}}/5</td>
  <td>{{$r.Scores.Accuracy}}/5</td>
  <td>{{$r.Scores.Completeness}}/5</td>
  <td>{{$r.Scores.Confidence}}/5</td>
  <td><strong>{{fixed $r.Overall 2}}/5</strong></td>
</tr>
{{end}}</tbody>
</table>
<h2>Key Patterns</h2>
<div class="patterns"><ul>
{{range .Patterns}}<li>{{.}}</li>
{{end}}</ul></div>
<h2>Recommendations</h2>
<div class="recommendations"><ul>
{{range .Analysis.Recommendations}}<li>{{.}}</li>
{{end}}{{range .AIRecommendations}}<li>{{.}}</li>
{{end}}</ul></div>
<div class="footer">
<p>Generated on {{.Footer}}</p>
<p>Interview Automation Engine v{{.Metadata.Version}}</p>
</div>
</div>
</body>
</html>
`))

func (g *Generator) HTML(r *Report) ([]byte, error) {
	view := htmlView{
		Report:   r,
		Footer:   r.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"),
		Patterns: r.Analysis.Patterns,
	}
	if agg := r.Analysis.AggregateScores; agg != nil {
		view.Overall = agg.Overall
		for _, d := range models.Dimensions {
			s := agg.Get(d)
			view.Bars = append(view.Bars, scoreBar{
				Label: dimensionLabel(d),
				Score: s,
				Width: s / models.MaxScore * barWidthPx,
			})
		}
	}
	if r.Analysis.Summary != nil {
		view.Summary = *r.Analysis.Summary
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render html report: %w", err)
	}
	return buf.Bytes(), nil
}

// preview cuts question text to questionPreviewLength runes.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= questionPreviewLength {
		return text
	}
	return string(runes[:questionPreviewLength]) + "..."
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dimensionLabel(d models.Dimension) string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
