package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/interview-service/internal/models"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator; fewer than two samples yield 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// formatScore prints the shortest representation with at least one decimal
// place: 4.5, 4.0, 3.75.
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func trend(scores []float64) models.Trend {
	if len(scores) < 2 {
		return models.TrendStable
	}
	half := len(scores) / 2
	diff := mean(scores[half:]) - mean(scores[:half])
	switch {
	case diff > 0.5:
		return models.TrendImproving
	case diff < -0.5:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}
