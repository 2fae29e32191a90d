package compare

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/doccheck/internal/segment"
)

// Config controls engine behavior.
type Config struct {
	MaxConcurrent   int               // Concurrent reasoning calls (rate-limit bound).
	MaxPromptTokens int               // Estimated prompt size budget.
	Synonyms        map[string]Status // Status word table; nil means defaults.
}

// Engine maps (template section, filled document) pairs to verdicts via the
// reasoning capability. Sections are independent; invocations run
// concurrently but results always come back in template order.
type Engine struct {
	llm             Invoker
	log             *slog.Logger
	synonyms        map[string]Status
	maxConcurrent   int
	maxPromptTokens int
}

func NewEngine(llm Invoker, log *slog.Logger, cfg Config) *Engine {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.MaxPromptTokens <= 0 {
		cfg.MaxPromptTokens = DefaultMaxPromptTokens
	}
	if cfg.Synonyms == nil {
		cfg.Synonyms = DefaultSynonyms()
	}
	return &Engine{
		llm:             llm,
		log:             log,
		synonyms:        cfg.Synonyms,
		maxConcurrent:   cfg.MaxConcurrent,
		maxPromptTokens: cfg.MaxPromptTokens,
	}
}

// Compare evaluates every template section against the filled document text.
// It always returns exactly one verdict per section, in section order; a
// failed invocation yields an Other Issue verdict rather than aborting the
// run. OnSection, when set, is called once per completed section.
func (e *Engine) Compare(ctx context.Context, tmpl segment.Template, filledText string, onSection func()) []Verdict {
	verdicts := make([]Verdict, len(tmpl.Sections))

	sem := make(chan struct{}, e.maxConcurrent)
	done := make(chan int, len(tmpl.Sections))

	for i, sec := range tmpl.Sections {
		sem <- struct{}{}
		go func(i int, sec segment.Section) {
			defer func() { <-sem }()
			verdicts[i] = e.compareSection(ctx, sec, filledText)
			done <- i
		}(i, sec)
	}

	for range tmpl.Sections {
		<-done
		if onSection != nil {
			onSection()
		}
	}

	return verdicts
}

// compareSection produces the verdict for a single section.
func (e *Engine) compareSection(ctx context.Context, sec segment.Section, filledText string) Verdict {
	// Verbatim match needs no reasoning call.
	if expected := strings.TrimSpace(sec.Content); expected != "" && strings.Contains(filledText, expected) {
		return Verdict{
			SectionTitle:    sec.Title,
			Status:          StatusSufficient,
			Reasoning:       "The filled document contains this section's content verbatim.",
			Remediation:     "None needed.",
			MatchPercentage: 100,
		}
	}

	prompt := BuildSectionPrompt(sec.Title, sec.Content, filledText, e.maxPromptTokens)

	var resp string
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		resp, lastErr = e.llm.Invoke(ctx, prompt)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		e.log.Warn("retryable comparison error", "section", sec.Title, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
	}
	if lastErr != nil {
		e.log.Error("comparison failed", "section", sec.Title, "error", lastErr)
		return failureVerdict(sec.Title, lastErr)
	}

	parsed := ParseResponse(resp, e.synonyms)
	if parsed.Outcome == OutcomeFailed {
		return failureVerdict(sec.Title, fmt.Errorf("empty or unusable model response"))
	}
	if parsed.Outcome == OutcomeDegraded {
		e.log.Warn("degraded response parse", "section", sec.Title, "status", parsed.Status)
	}

	return Verdict{
		SectionTitle:    sec.Title,
		Status:          parsed.Status,
		Reasoning:       parsed.Reasoning,
		Remediation:     parsed.Remediation,
		MatchPercentage: parsed.Match,
		Degraded:        parsed.Outcome == OutcomeDegraded,
	}
}

// failureVerdict is the degraded verdict for a section whose reasoning call
// could not be completed. The section is never silently skipped.
func failureVerdict(title string, err error) Verdict {
	return Verdict{
		SectionTitle:    title,
		Status:          StatusOther,
		Reasoning:       fmt.Sprintf("The reasoning call for this section failed: %v", err),
		Remediation:     "",
		MatchPercentage: 0,
		Degraded:        true,
	}
}
