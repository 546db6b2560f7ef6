package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/prompt"
)

// Status tags the outcome of a single strategy attempt.
type Status int

const (
	// NoMatch means the strategy's pattern does not occur in the text.
	NoMatch Status = iota
	// Parsed means the pattern matched and yielded a JSON object.
	Parsed
	// Malformed means the pattern matched but its content is not a JSON object.
	Malformed
)

func (s Status) String() string {
	switch s {
	case NoMatch:
		return "no_match"
	case Parsed:
		return "parsed"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Attempt is the result of running one strategy over the model output.
type Attempt struct {
	Strategy string
	Status   Status
	Object   map[string]any
	// Start and End delimit the matched text in the input.
	Start, End int
	Err        error
}

// Strategy recovers a structured record from free text using one pattern.
type Strategy interface {
	Name() string
	Attempt(raw string) Attempt
}

const (
	StrategyDoubledMarker = "doubled-brace-marker"
	StrategySingleMarker  = "single-brace-marker"
	StrategyFencedJSON    = "fenced-json"
	StrategyBareObject    = "bare-object"
)

var (
	doubledPrefix = "{{" + prompt.MarkerToken + ":"
	singlePrefix  = "{" + prompt.MarkerToken + ":"

	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(\\{.*?\\})\\s*```")
	fencedBlock       = regexp.MustCompile("(?s)```.*?```")

	// Numbers stay json.Number so long account numbers keep every digit.
	recordJSON = sonic.Config{UseNumber: true}.Froze()
)

// DefaultStrategies returns the fallback cascade in priority order. The bare
// object heuristic is last because ordinary text can trip it.
func DefaultStrategies(tpl *forms.Template) []Strategy {
	return []Strategy{
		markerStrategy{name: StrategyDoubledMarker, prefix: doubledPrefix, doubled: true},
		markerStrategy{name: StrategySingleMarker, prefix: singlePrefix},
		fencedStrategy{},
		newBareObjectStrategy(anchorKeys(tpl)),
	}
}

type markerStrategy struct {
	name    string
	prefix  string
	doubled bool
}

func (s markerStrategy) Name() string { return s.name }

func (s markerStrategy) Attempt(raw string) Attempt {
	a := Attempt{Strategy: s.name}
	start := strings.Index(raw, s.prefix)
	if start < 0 {
		return a
	}
	end := balancedEnd(raw, start)
	a.Start, a.End = start, end
	if end < 0 {
		a.Status = Malformed
		a.End = len(raw)
		a.Err = fmt.Errorf("unterminated %s marker", prompt.MarkerToken)
		return a
	}

	closing := 1
	if s.doubled {
		closing = 2
	}
	body := raw[start+len(s.prefix) : end-closing]
	body = strings.TrimSpace(body)
	if s.doubled {
		body = undouble(body)
	}
	return decodeInto(a, body)
}

type fencedStrategy struct{}

func (fencedStrategy) Name() string { return StrategyFencedJSON }

func (fencedStrategy) Attempt(raw string) Attempt {
	a := Attempt{Strategy: StrategyFencedJSON}
	loc := fencedJSONPattern.FindStringSubmatchIndex(raw)
	if loc == nil {
		return a
	}
	a.Start, a.End = loc[0], loc[1]
	return decodeInto(a, raw[loc[2]:loc[3]])
}

type bareObjectStrategy struct {
	pattern *regexp.Regexp
}

func newBareObjectStrategy(anchors []string) bareObjectStrategy {
	quoted := make([]string, 0, len(anchors))
	for _, k := range anchors {
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	expr := `\{[^{}]*"(?:` + strings.Join(quoted, "|") + `)"[^{}]*\}`
	return bareObjectStrategy{pattern: regexp.MustCompile(expr)}
}

func (bareObjectStrategy) Name() string { return StrategyBareObject }

func (s bareObjectStrategy) Attempt(raw string) Attempt {
	a := Attempt{Strategy: StrategyBareObject}
	loc := s.pattern.FindStringIndex(raw)
	if loc == nil {
		return a
	}
	a.Start, a.End = loc[0], loc[1]
	return decodeInto(a, raw[loc[0]:loc[1]])
}

func anchorKeys(tpl *forms.Template) []string {
	keys := []string{"form_type"}
	if tpl == nil || tpl.Generic() {
		return append(keys, "branch_name")
	}
	for _, k := range tpl.FieldKeys() {
		if k != "form_type" {
			keys = append(keys, k)
		}
	}
	return keys
}

func decodeInto(a Attempt, body string) Attempt {
	var obj map[string]any
	if err := recordJSON.UnmarshalFromString(body, &obj); err != nil {
		a.Status = Malformed
		a.Err = fmt.Errorf("failed to decode record JSON: %w", err)
		return a
	}
	if obj == nil {
		a.Status = Malformed
		a.Err = fmt.Errorf("record JSON is null")
		return a
	}
	a.Status = Parsed
	a.Object = obj
	return a
}

func undouble(s string) string {
	s = strings.ReplaceAll(s, "{{", "{")
	return strings.ReplaceAll(s, "}}", "}")
}

// balancedEnd returns the index just past the brace that closes the one at
// start, skipping braces inside JSON strings. It returns -1 when unbalanced.
func balancedEnd(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}
