package http

import (
	"encoding/json"
	"testing"
)

func TestLooseInt(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{`3`, 3, true},
		{`"3"`, 3, true},
		{`3.9`, 3, true},
		{`"3.9"`, 3, true},
		{`" 12abc"`, 12, true},
		{`"-2"`, -2, true},
		{`0`, 0, true},
		{`"abc"`, 0, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`true`, 0, false},
		{``, 0, false},
		{`1e300`, 0, false},
		{`"99999999999999999999999"`, 0, false},
		{`-1e300`, 0, false},
		{`2147483647`, 2147483647, true},
	}
	for _, tc := range cases {
		got, ok := looseInt(json.RawMessage(tc.raw))
		if got != tc.want || ok != tc.ok {
			t.Fatalf("looseInt(%s): expected (%d, %v), got (%d, %v)", tc.raw, tc.want, tc.ok, got, ok)
		}
	}
}

func TestLooseFloatKeepsFraction(t *testing.T) {
	got, ok := looseFloat(json.RawMessage(`"7.5 points"`))
	if !ok || got != 7.5 {
		t.Fatalf("expected 7.5, got %v (%v)", got, ok)
	}
}

func TestPresentCountsNull(t *testing.T) {
	var req questionRequest
	if err := json.Unmarshal([]byte(`{"question":"q","options":[],"correctAnswer":null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	in := req.input()
	if !in.HasAnswer || in.CorrectAnswer != nil {
		t.Fatalf("expected present null answer, got %+v", in)
	}

	req = questionRequest{}
	_ = json.Unmarshal([]byte(`{"question":"q","options":[]}`), &req)
	if req.input().HasAnswer {
		t.Fatalf("absent answer must not count as present")
	}
}
