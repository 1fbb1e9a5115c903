package normalizer

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"alfredoptarigan/hr-screening/internal/models"
)

type Status string

const (
	StatusOK             Status = "ok"
	StatusMalformed      Status = "malformed"
	StatusTransportError Status = "transport-error"
)

type Strategy string

const (
	StrategyStrict    Strategy = "strict"
	StrategyBraceScan Strategy = "brace-scan"
	StrategyFenceScan Strategy = "fence-scan"
)

// Outcome is the tagged result of normalizing one model response. Record is
// set only when Status is StatusOK; Raw always holds the unmodified reply.
type Outcome struct {
	Status   Status
	Record   map[string]any
	Strategy Strategy
	Raw      string
	Err      error
}

func (o Outcome) OK() bool {
	return o.Status == StatusOK && o.Record != nil
}

type strategy struct {
	name       Strategy
	candidates func(raw string) []string
}

var strategies = []strategy{
	{name: StrategyStrict, candidates: func(raw string) []string { return []string{raw} }},
	{name: StrategyBraceScan, candidates: braceCandidates},
	{name: StrategyFenceScan, candidates: fenceCandidates},
}

// Parse recovers a JSON object from free-form model output. It never fails
// hard: unrecoverable text comes back as a malformed Outcome carrying a
// *models.ParseError.
func Parse(raw string) Outcome {
	var lastErr error
	for _, s := range strategies {
		for _, candidate := range s.candidates(raw) {
			record, err := decodeObject(candidate)
			if err != nil {
				lastErr = err
				continue
			}
			return Outcome{
				Status:   StatusOK,
				Record:   record,
				Strategy: s.name,
				Raw:      raw,
			}
		}
	}

	return Outcome{
		Status: StatusMalformed,
		Raw:    raw,
		Err:    &models.ParseError{Raw: raw, Cause: lastErr},
	}
}

// FromServiceError wraps a failed model call so the merger can fall back.
func FromServiceError(err error) Outcome {
	return Outcome{
		Status: StatusTransportError,
		Err:    err,
	}
}

var errNotObject = errors.New("response is not a JSON object")

func decodeObject(text string) (map[string]any, error) {
	var record map[string]any
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errNotObject
	}
	return record, nil
}

// braceCandidates returns each balanced {...} region in order. Braces inside
// JSON strings are ignored. A brace with no partner is skipped and the scan
// resumes at the next opening brace after it.
func braceCandidates(raw string) []string {
	var candidates []string
	pos := 0
	for {
		next := strings.IndexByte(raw[pos:], '{')
		if next < 0 {
			return candidates
		}
		start := pos + next

		end := matchingBrace(raw, start)
		if end < 0 {
			pos = start + 1
			continue
		}
		candidates = append(candidates, raw[start:end+1])
		pos = end + 1
	}
}

// matchingBrace returns the index of the brace closing the one at start, or -1.
func matchingBrace(s string, start int) int {
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
				return i
			}
		}
	}
	return -1
}

var fenceRegex = regexp.MustCompile("(?s)```[A-Za-z0-9_+-]*[ \t]*\r?\n?(.*?)```")

func fenceCandidates(raw string) []string {
	var candidates []string
	for _, m := range fenceRegex.FindAllStringSubmatch(raw, -1) {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	return candidates
}
