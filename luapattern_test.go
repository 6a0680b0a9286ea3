package luapattern_test

import (
	"errors"
	"testing"

	"github.com/coregx/luapattern"
	"github.com/coregx/luapattern/engine"
)

func TestCompilePatternRejectsMalformed(t *testing.T) {
	tests := []string{"bonzo %", "frodo (1) (2(3)%2)%1", "[abc", "abc)"}
	for _, pat := range tests {
		if _, err := luapattern.CompilePatternString(pat); err == nil {
			t.Errorf("pattern %q: expected error", pat)
		}
	}
}

func TestMatchAndCaptures(t *testing.T) {
	p := luapattern.MustCompilePattern(`(%a+) one`)
	if !p.MatchString(" hello one two") {
		t.Fatal("expected a match")
	}
	if p.NumCaptures() != 2 {
		t.Fatalf("got %d captures, want 2", p.NumCaptures())
	}
	if got := string(p.CaptureBytes([]byte(" hello one two"), 1)); got != "hello" {
		t.Errorf("got %q, want hello", got)
	}
}

func TestFirstCaptureFallsBackToWholeMatch(t *testing.T) {
	p := luapattern.MustCompilePattern(`%d+`)
	p.MatchString("age 42")
	span := p.FirstCapture()
	if span != p.Capture(0) {
		t.Errorf("FirstCapture should equal whole match when there are no user captures")
	}
}

func TestFirstCapturePrefersCaptureOne(t *testing.T) {
	p := luapattern.MustCompilePattern(`(%d+)`)
	p.MatchString("age 42")
	if p.FirstCapture() != p.Capture(1) {
		t.Errorf("FirstCapture should equal capture 1 when present")
	}
}

func TestMatchPanicsOnUnvalidatedMalformedPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic from Match on a malformed, uncompiled pattern")
		}
	}()
	p := luapattern.NewPatternString("bonzo %")
	p.MatchString("anything")
}

func TestAnchoredPatternOnlyMatchesStartWithPrefilterEnabled(t *testing.T) {
	p := luapattern.MustCompilePattern("^abc")
	if p.MatchString("xxabc") {
		t.Fatal("anchored pattern must not match past position 0, even when a prefilter is in play")
	}
	if !p.MatchString("abcxx") {
		t.Fatal("anchored pattern should still match at position 0")
	}
}

func TestNewPatternWithConfigDisablesPrefilter(t *testing.T) {
	cfg := luapattern.DefaultEngineConfig()
	cfg.EnablePrefilter = false
	p := luapattern.NewPatternWithConfig([]byte(`%d+`), cfg)
	if !p.MatchString("abc123") {
		t.Fatal("expected a match with prefilter disabled")
	}
}

func TestStepBudgetExceeded(t *testing.T) {
	cfg := luapattern.DefaultEngineConfig()
	cfg.StepBudget = 1
	p := luapattern.NewPatternWithConfig([]byte(`(a*)*b`), cfg)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic from an exhausted step budget")
		}
	}()
	p.MatchString("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaac")
}

func TestConfigValidateRejectsNegativeBudget(t *testing.T) {
	cfg := luapattern.DefaultEngineConfig()
	cfg.StepBudget = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a negative StepBudget")
	}
}

func TestPositionCapture(t *testing.T) {
	p := luapattern.MustCompilePattern(`()hello`)
	p.MatchString("xxhello")
	span := p.Capture(1)
	if !span.IsPosition() {
		t.Fatal("expected a position capture")
	}
	if span.Start != 2 {
		t.Errorf("got position %d, want 2", span.Start)
	}
}

func TestErrorsIsAgainstEngineSentinels(t *testing.T) {
	_, err := luapattern.CompilePatternString("bonzo %")
	if !errors.Is(err, engine.ErrDanglingEscape) {
		t.Errorf("got %v, want errors.Is ErrDanglingEscape", err)
	}
}
