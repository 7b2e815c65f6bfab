// Package insight talks to the generative AI provider: consumption analysis
// and meter-photo OCR. Failures stop at this package's boundary helpers;
// callers get a fallback analysis or "no reading" instead of an error.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/aquaflow/internal/metrics"
	"github.com/mmynk/aquaflow/internal/models"
)

var (
	// ErrNoReading means the image did not contain a legible meter value.
	ErrNoReading = errors.New("no reading found")

	// ErrProviderDisabled is returned when no API key is configured.
	ErrProviderDisabled = errors.New("insight provider is not configured")
)

// HistoryWindow is how many recent readings are sent for analysis.
const HistoryWindow = 5

// Result is one analysis of a customer's consumption.
type Result struct {
	Analysis   string            `json:"analysis"`
	AlertLevel models.AlertLevel `json:"alertLevel"`
}

// Fallback is shown when the provider cannot produce an analysis.
var Fallback = Result{
	Analysis:   "Unable to generate insights at the moment. Please check back later.",
	AlertLevel: models.AlertLevelLow,
}

// Analyzer produces a consumption analysis for a customer.
type Analyzer interface {
	Analyze(ctx context.Context, customer models.Customer) (Result, error)
}

// MeterReader extracts the numeric value shown in a meter photo.
// It returns ErrNoReading when no clear value is visible.
type MeterReader interface {
	ExtractReading(ctx context.Context, image []byte, mimeType string) (string, error)
}

// AnalyzeOrFallback never fails: any provider error is logged and replaced
// by Fallback. The boolean reports whether the fallback was used.
func AnalyzeOrFallback(ctx context.Context, a Analyzer, customer models.Customer) (Result, bool) {
	start := time.Now()
	res, err := a.Analyze(ctx, customer)
	if err != nil {
		metrics.ObserveUpstream("analyze", metrics.OutcomeFallback, time.Since(start))
		slog.Warn("Insight provider failed, using fallback", "customer_id", customer.ID, "error", err)
		return Fallback, true
	}
	metrics.ObserveUpstream("analyze", metrics.OutcomeOK, time.Since(start))
	return res, false
}

// ExtractOrNotFound never fails: any error becomes found == false.
func ExtractOrNotFound(ctx context.Context, r MeterReader, image []byte, mimeType string) (value string, found bool) {
	start := time.Now()
	value, err := r.ExtractReading(ctx, image, mimeType)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, ErrNoReading) {
			outcome = metrics.OutcomeNotFound
		} else {
			slog.Warn("OCR provider failed", "error", err)
		}
		metrics.ObserveUpstream("extract_reading", outcome, time.Since(start))
		return "", false
	}
	metrics.ObserveUpstream("extract_reading", metrics.OutcomeOK, time.Since(start))
	return value, true
}

// AnalysisPrompt builds the analysis request for a customer.
func AnalysisPrompt(customer models.Customer) string {
	recent := customer.Readings
	if len(recent) > HistoryWindow {
		recent = recent[len(recent)-HistoryWindow:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this water consumption history for customer %q:\n", customer.Name)
	for _, r := range recent {
		fmt.Fprintf(&b, "Date: %s, Consumed: %g m3\n", r.Date.Format("2006-01-02"), r.Consumption)
	}
	fmt.Fprintf(&b, "\nCurrent Reading: %g\n\n", customer.LastReading)
	b.WriteString("Provide a brief, helpful summary (max 3 sentences) for a mobile app user.\n")
	b.WriteString("Identify any potential leaks (sudden spikes) or saving tips based on usage patterns.\n")
	b.WriteString(`Return the response in JSON format with two keys: "analysis" and "alertLevel" (low, medium, high).`)
	return b.String()
}

// OCRPrompt asks for the bare meter value.
const OCRPrompt = "This is a photo of a water meter. Please extract the numeric reading shown on the meter display. " +
	"Return ONLY the number. If the number contains decimals, include them. " +
	"If you cannot find a clear reading, return 'ERROR'."

// Disabled is used when no provider is configured.
type Disabled struct{}

func (Disabled) Analyze(context.Context, models.Customer) (Result, error) {
	return Result{}, ErrProviderDisabled
}

func (Disabled) ExtractReading(context.Context, []byte, string) (string, error) {
	return "", ErrProviderDisabled
}
