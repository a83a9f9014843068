package http

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// present reports whether a JSON field was sent at all; an explicit null counts.
func present(raw json.RawMessage) bool {
	return len(raw) > 0
}

// looseInt reads a JSON number or numeric string the way form-driven clients
// send them: "3", 3, 3.9 and "3abc" all yield 3. ok is false for null, booleans,
// empty strings, text without a leading integer and values outside the int32 range.
func looseInt(raw json.RawMessage) (int, bool) {
	f, ok := looseNumber(raw, true)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// looseFloat is looseInt without truncation.
func looseFloat(raw json.RawMessage) (float64, bool) {
	return looseNumber(raw, false)
}

func looseNumber(raw json.RawMessage, integer bool) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		if integer {
			f = math.Trunc(f)
		}
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	prefix := numericPrefix(strings.TrimSpace(s), integer)
	if prefix == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numericPrefix returns the leading signed number of s, or "" if s does not start with one.
func numericPrefix(s string, integer bool) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
		digits++
	}
	if !integer && end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && unicode.IsDigit(rune(s[frac])) {
			frac++
		}
		if frac > end+1 {
			digits += frac - end - 1
			end = frac
		}
	}
	if digits == 0 {
		return ""
	}
	return s[:end]
}
