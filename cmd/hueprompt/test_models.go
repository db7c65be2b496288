package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/config"
	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/leonardotrapani/hueprompt/internal/provider"
	"github.com/spf13/cobra"
)

const defaultTestQuery = "a rainy day in Tokyo"

type testModelsOptions struct {
	query      string
	timeout    time.Duration
	outputPath string
	provider   string
}

type modelTest struct {
	provider string
	model    provider.Model
}

type modelTestResult struct {
	Provider   string   `json:"provider"`
	Model      string   `json:"model"`
	Status     string   `json:"status"`
	DurationMS int64    `json:"duration_ms"`
	Colors     []string `json:"colors,omitempty"`
	Output     string   `json:"output,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type testReport struct {
	StartedAt  time.Time         `json:"started_at"`
	Query      string            `json:"query"`
	Results    []modelTestResult `json:"results"`
	PassCount  int               `json:"pass_count"`
	FailCount  int               `json:"fail_count"`
	SkipCount  int               `json:"skip_count"`
	TotalCount int               `json:"total_count"`
}

func testModelsCmd() *cobra.Command {
	var opts testModelsOptions

	cmd := &cobra.Command{
		Use:   "test-models",
		Short: "Generate one palette with every provider/model that has a key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTestModels(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.query, "query", defaultTestQuery, "Query to generate a palette for")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 45*time.Second, "Per-model timeout")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "Write JSON report to file")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Only test this provider")

	return cmd
}

func runTestModels(ctx context.Context, opts testModelsOptions) error {
	if opts.timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	startedAt := time.Now().UTC()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tests, err := buildModelTests(opts.provider)
	if err != nil {
		return err
	}

	var results []modelTestResult
	for _, test := range tests {
		results = append(results, runModelTest(ctx, cfg, test, opts))
	}

	report := summarizeReport(startedAt, opts.query, results)
	printReport(report)

	if opts.outputPath != "" {
		if err := writeReport(opts.outputPath, report); err != nil {
			return err
		}
	}

	if report.FailCount > 0 {
		return fmt.Errorf("%d failed, %d skipped", report.FailCount, report.SkipCount)
	}

	return nil
}

// buildModelTests lists every catalogued model; providers without a model
// catalogue are not tested
func buildModelTests(providerFilter string) ([]modelTest, error) {
	providerNames := provider.ListProviders()
	if providerFilter != "" {
		if provider.GetProvider(providerFilter) == nil {
			return nil, fmt.Errorf("unknown provider: %s", providerFilter)
		}
		providerNames = []string{providerFilter}
	}

	var tests []modelTest
	for _, providerName := range providerNames {
		for _, model := range provider.GetProvider(providerName).Models() {
			tests = append(tests, modelTest{provider: providerName, model: model})
		}
	}
	return tests, nil
}

func runModelTest(ctx context.Context, cfg *config.Config, test modelTest, opts testModelsOptions) modelTestResult {
	result := modelTestResult{
		Provider: test.provider,
		Model:    test.model.ID,
		Status:   "fail",
	}

	apiKey := cfg.ResolveAPIKey(test.provider)
	if providerRequiresKey(test.provider) && apiKey == "" {
		result.Status = "skip"
		result.Error = "missing api key"
		return result
	}

	adapter, err := llm.NewAdapter(llm.Config{
		Provider:    test.provider,
		APIKey:      apiKey,
		Model:       test.model.ID,
		Endpoint:    test.model.BaseURL,
		Temperature: llm.DefaultTemperature,
		MaxTokens:   llm.DefaultMaxTokens,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	genCfg := llm.DefaultGenerationConfig()
	prompt := llm.BuildPalettePrompt(opts.query, genCfg)

	testCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	start := time.Now()
	output, err := adapter.Generate(testCtx, prompt)
	result.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = llm.Classify(testCtx, err).Error()
		return result
	}

	result.Output = strings.TrimSpace(output)
	parsed := palette.ParseResponse(output, genCfg.NumColors)
	if parsed.Empty() {
		result.Error = "response contained no usable palette"
		return result
	}

	result.Status = "pass"
	result.Colors = parsed.Colors
	return result
}

func providerRequiresKey(providerName string) bool {
	p := provider.GetProvider(providerName)
	if p == nil {
		return false
	}
	return p.RequiresAPIKey()
}

func summarizeReport(startedAt time.Time, query string, results []modelTestResult) testReport {
	report := testReport{
		StartedAt: startedAt,
		Query:     query,
		Results:   results,
	}
	for _, r := range results {
		report.TotalCount++
		switch r.Status {
		case "pass":
			report.PassCount++
		case "fail":
			report.FailCount++
		case "skip":
			report.SkipCount++
		}
	}
	return report
}

func printReport(report testReport) {
	fmt.Printf("test-models: total=%d pass=%d fail=%d skip=%d\n", report.TotalCount, report.PassCount, report.FailCount, report.SkipCount)
	fmt.Printf("query: %s\n", report.Query)
	for _, r := range report.Results {
		line := fmt.Sprintf("%s %s/%s", r.Status, r.Provider, r.Model)
		if r.DurationMS > 0 {
			line += fmt.Sprintf(" %dms", r.DurationMS)
		}
		if len(r.Colors) > 0 {
			line += " colors=" + strings.Join(r.Colors, ",")
		}
		if r.Error != "" {
			line += fmt.Sprintf(" error=%s", truncateString(r.Error, 160))
		}
		fmt.Println(line)
	}
}

func writeReport(path string, report testReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
