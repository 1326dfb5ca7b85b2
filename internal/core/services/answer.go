package services

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches the first numeric substring, decimal-aware.
var numberPattern = regexp.MustCompile(`-?\d+\.?\d*`)

// intPattern matches the first integer substring.
var intPattern = regexp.MustCompile(`-?\d+`)

// coerceAnswer parses raw answer text according to the requested format,
// with cascading fallbacks. It never fails: the last resort is a zero
// value for numeric hints or the trimmed string otherwise.
//
// Parse order: structured literal (JSON object/array) first, then
// format-driven numeric extraction, then the raw trimmed string.
func coerceAnswer(raw, formatHint string) any {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed
		}
		return looseAnswer(trimmed, formatHint)
	}

	switch formatHint {
	case "int":
		if m := numberPattern.FindString(trimmed); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return int(v)
			}
		}
		return looseAnswer(trimmed, formatHint)
	case "float":
		if m := numberPattern.FindString(trimmed); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return round2(v)
			}
		}
		return looseAnswer(trimmed, formatHint)
	default:
		return trimmed
	}
}

// looseAnswer is the final fallback: digits-only extraction for int,
// decimal-aware extraction for float, zero value when nothing matches.
func looseAnswer(trimmed, formatHint string) any {
	switch formatHint {
	case "int":
		if m := intPattern.FindString(trimmed); m != "" {
			if v, err := strconv.Atoi(m); err == nil {
				return v
			}
		}
		return 0
	case "float":
		if m := numberPattern.FindString(trimmed); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return round2(v)
			}
		}
		return 0.0
	default:
		return trimmed
	}
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseCitations turns the delegate's free-text citation list into
// individual citation strings. Accepts a JSON array, a quoted
// bracketed list, or a plain comma-separated list.
func parseCitations(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "'") {
		var parsed []string
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed
		}
		trimmed = strings.Trim(trimmed, "[]")
	}

	var out []string
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// stripCodeFence removes surrounding markdown code-fence markup from
// generated query text, dropping the first and last line when fenced.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) <= 2 {
		return trimmed
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}

// isIntAnswer reports whether the parsed answer satisfies an "int"
// format hint.
func isIntAnswer(v any) bool {
	switch v.(type) {
	case int, int64:
		return true
	default:
		return false
	}
}

// isNumericAnswer reports whether the parsed answer satisfies a "float"
// format hint.
func isNumericAnswer(v any) bool {
	switch v.(type) {
	case int, int64, float32, float64:
		return true
	default:
		return false
	}
}
