package merger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Model output is loosely typed: numbers arrive as strings, lists as a
// single string, flags as "yes". These helpers accept those shapes and
// report whether a usable value was present.

func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(n), "%"))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringList(v any) ([]string, bool) {
	switch items := v.(type) {
	case []any:
		list := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := text(item); ok {
				list = append(list, s)
			}
		}
		return list, true
	case []string:
		list := make([]string, 0, len(items))
		for _, item := range items {
			if s := strings.TrimSpace(item); s != "" {
				list = append(list, s)
			}
		}
		return list, true
	case string:
		if s := strings.TrimSpace(items); s != "" {
			return []string{s}, true
		}
		return []string{}, true
	default:
		return nil, false
	}
}

func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func flag(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case float64:
		return b != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	}
	return false, false
}

// areas keeps numeric category ratings, rounded and clamped to [1,10].
func areas(v any) (map[string]int, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	result := make(map[string]int, len(m))
	for category, raw := range m {
		category = strings.TrimSpace(category)
		rating, ok := number(raw)
		if category == "" || !ok {
			continue
		}
		result[category] = int(math.Round(clamp(rating, 1, 10)))
	}
	return result, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func listOr(v any, fallback []string) []string {
	if list, ok := stringList(v); ok {
		return list
	}
	return append([]string{}, fallback...)
}

func textOr(v any, fallback string) string {
	if s, ok := text(v); ok {
		return s
	}
	return fallback
}

func flagOr(v any, fallback bool) bool {
	if b, ok := flag(v); ok {
		return b
	}
	return fallback
}
