package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskpilot/internal/models"
)

func metricsPayload(vol, sharpe, cvar, drawdown float64) models.Payload {
	return models.Payload{
		"metrics": map[string]interface{}{
			"annualized_volatility": vol,
			"sharpe_ratio":          sharpe,
			"cvar_95":               cvar,
			"max_drawdown":          drawdown,
		},
	}
}

func titles(insights []models.Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.Title
	}
	return out
}

func TestGenerateRiskyPortfolioBattery(t *testing.T) {
	svc := NewService(nil)

	// Every rule fires at its worst band plus the concentration warning,
	// so the cap at five applies.
	insights := svc.Generate(metricsPayload(0.35, 0.4, -0.06, -0.30), []string{"A", "B", "C"})
	require.Len(t, insights, 5)

	assert.Equal(t, []string{
		"High Volatility Detected",
		"Poor Risk-Adjusted Returns",
		"Significant Tail Risk",
		"Large Historical Drawdown",
		"Concentrated Portfolio",
	}, titles(insights))

	for _, in := range insights[:4] {
		assert.Equal(t, models.PriorityHigh, in.Priority)
	}
	assert.Equal(t, models.PriorityMedium, insights[4].Priority)
}

func TestGenerateCalmPortfolio(t *testing.T) {
	svc := NewService(nil)

	symbols := []string{"A", "B", "C", "D", "E", "F"}
	insights := svc.Generate(metricsPayload(0.12, 1.4, -0.02, -0.10), symbols)
	require.Len(t, insights, 3, "drawdown and concentration rules stay silent")

	assert.Equal(t, []string{
		"Stable Portfolio",
		"Strong Risk-Adjusted Returns",
		"Low Tail Risk",
	}, titles(insights))
	for _, in := range insights {
		assert.Equal(t, models.PriorityLow, in.Priority)
	}
}

func TestGenerateModerateBands(t *testing.T) {
	svc := NewService(nil)

	insights := svc.Generate(metricsPayload(0.25, 0.7, -0.04, -0.20), []string{"A", "B", "C", "D", "E"})
	require.Len(t, insights, 4)
	assert.Equal(t, []string{
		"Moderate Risk Profile",
		"Average Risk-Adjusted Returns",
		"Moderate Tail Risk",
		"Moderate Drawdown History",
	}, titles(insights))
}

func TestGenerateHighlyDiversified(t *testing.T) {
	svc := NewService(nil)

	symbols := make([]string, 25)
	for i := range symbols {
		symbols[i] = string(rune('A' + i))
	}
	insights := svc.Generate(metricsPayload(0.12, 1.4, -0.02, -0.10), symbols)

	assert.Contains(t, titles(insights), "Highly Diversified")
}

func TestGenerateErrorPayload(t *testing.T) {
	svc := NewService(nil)

	insights := svc.Generate(models.ErrorPayload("Request failed: boom"), []string{"A"})
	require.Len(t, insights, 1)
	assert.Equal(t, "Unable to Generate Insights", insights[0].Title)
	assert.Equal(t, models.PriorityHigh, insights[0].Priority)

	insights = svc.Generate(nil, []string{"A"})
	require.Len(t, insights, 1)
	assert.Equal(t, "Unable to Generate Insights", insights[0].Title)
}

func TestGenerateMissingMetrics(t *testing.T) {
	svc := NewService(nil)

	insights := svc.Generate(models.Payload{"status": "success"}, []string{"A"})
	require.Len(t, insights, 1)
	assert.Equal(t, "Analyzing Portfolio", insights[0].Title)
	assert.Equal(t, models.PriorityLow, insights[0].Priority)
}

func TestGenerateBoundaryValues(t *testing.T) {
	svc := NewService(nil)

	// Thresholds are strict: exactly 0.30 volatility is still moderate.
	insights := svc.Generate(metricsPayload(0.30, 1.0, -0.03, 0), []string{"A", "B", "C", "D", "E"})
	got := titles(insights)
	assert.Contains(t, got, "Moderate Risk Profile")
	assert.Contains(t, got, "Strong Risk-Adjusted Returns")
	assert.Contains(t, got, "Low Tail Risk")
}
