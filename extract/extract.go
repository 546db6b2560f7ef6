// Package extract recovers the structured form record the model embeds in
// its reply and produces the user-facing text with that record removed.
package extract

import (
	"log/slog"
	"strings"

	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/prompt"
	"github.com/tbxark/formassist/record"
)

// BreakdownKey is the nested object some models emit for deposit counts.
const BreakdownKey = "denomination_breakdown"

// Result is what one reply yields.
type Result struct {
	// Clean is the reply with markers and fenced blocks removed.
	Clean string
	// Fields is nil when no record was recovered.
	Fields record.Record
	// Complete reports that a record was recovered.
	Complete bool
	// Strategy names the strategy that produced Fields.
	Strategy string
	// Attempts lists every strategy that matched, in cascade order.
	Attempts []Attempt
}

type Option func(*Extractor)

// WithStrategies replaces the default cascade.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// Extractor is stateless; one per template is enough.
type Extractor struct {
	template   *forms.Template
	strategies []Strategy
}

func New(tpl *forms.Template, opts ...Option) *Extractor {
	if tpl == nil {
		tpl = forms.Generic
	}
	e := &Extractor{
		template:   tpl,
		strategies: DefaultStrategies(tpl),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Extract inspects raw model output. Text without the marker token comes back
// unchanged and incomplete. When the token is present every strategy is tried
// in order; a malformed match falls through to the next one, and if none
// parses the turn degrades to plain text.
func (e *Extractor) Extract(raw string) Result {
	if !strings.Contains(raw, prompt.MarkerToken) {
		return Result{Clean: raw}
	}

	var result Result
	attempts, parsed := e.cascade(raw)
	result.Attempts = attempts
	if parsed != nil {
		result.Fields = normalize(parsed.Object, e.template)
		result.Complete = true
		result.Strategy = parsed.Strategy
	} else {
		slog.Warn("Marker token present but no record could be recovered",
			"form_id", e.template.ID,
			"attempts", len(attempts),
		)
	}
	result.Clean = e.clean(raw, parsed)
	return result
}

// cascade runs the strategies in order and stops at the first parsed one.
func (e *Extractor) cascade(raw string) ([]Attempt, *Attempt) {
	var attempts []Attempt
	for _, s := range e.strategies {
		a := s.Attempt(raw)
		if a.Status == NoMatch {
			continue
		}
		attempts = append(attempts, a)
		if a.Status == Malformed {
			slog.Debug("Record strategy matched malformed content", "strategy", a.Strategy, "error", a.Err)
			continue
		}
		return attempts, &attempts[len(attempts)-1]
	}
	return attempts, nil
}

func normalize(obj map[string]any, tpl *forms.Template) record.Record {
	flat := make(map[string]any, len(obj))
	hadBreakdown := false
	for k, v := range obj {
		if k != BreakdownKey {
			flat[k] = v
			continue
		}
		nested, ok := v.(map[string]any)
		if !ok {
			flat[k] = v
			continue
		}
		hadBreakdown = true
		for unit, count := range nested {
			flat[forms.DenominationKey(unit)] = count
		}
	}

	rec := record.FromObject(flat)
	units := tpl.Denominations
	if len(units) == 0 && hadBreakdown {
		units = forms.DepositDenominations
	}
	for _, unit := range units {
		key := forms.DenominationKey(unit)
		if _, ok := rec[key]; !ok {
			rec[key] = "0"
		}
	}
	return rec
}

// clean removes marker spans, fenced blocks and the bare object that was
// parsed. Other braces in the prose stay unless they would still parse as a
// record next to a leftover marker token.
func (e *Extractor) clean(raw string, parsed *Attempt) string {
	out := raw
	if parsed != nil && parsed.Strategy == StrategyBareObject {
		out = out[:parsed.Start] + out[parsed.End:]
	}
	out = stripMarkers(out)
	out = fencedBlock.ReplaceAllString(out, "")
	for strings.Contains(out, prompt.MarkerToken) {
		_, leftover := e.cascade(out)
		if leftover == nil || leftover.End <= leftover.Start {
			break
		}
		out = out[:leftover.Start] + out[leftover.End:]
	}
	return strings.TrimSpace(out)
}

// stripMarkers removes every marker span. An unterminated marker swallows the
// rest of the text.
func stripMarkers(s string) string {
	for {
		idx := strings.Index(s, singlePrefix)
		if idx < 0 {
			return s
		}
		if idx > 0 && s[idx-1] == '{' {
			idx--
		}
		end := balancedEnd(s, idx)
		if end < 0 {
			return s[:idx]
		}
		s = s[:idx] + s[end:]
	}
}
