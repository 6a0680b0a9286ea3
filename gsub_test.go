package luapattern_test

import (
	"errors"
	"testing"

	"github.com/coregx/luapattern"
)

func TestGsubTemplate(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		subject  string
		template string
		want     string
		wantN    int
	}{
		{"whole_match", `%d+`, "a1 b22", "[%0]", "a[1] b[22]", 2},
		{"capture_ref", `(%a)(%a)`, "ab cd", "%2%1", "ba dc", 2},
		{"literal_percent", `x`, "axax", "%%", "a%a%", 2},
		{"no_match", `%d+`, "abc", "X", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := luapattern.MustCompilePattern(tt.pattern)
			out, n, err := p.Gsub([]byte(tt.subject), tt.template)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
			if n != tt.wantN {
				t.Errorf("got n=%d, want %d", n, tt.wantN)
			}
		})
	}
}

func TestGsubEmptyTemplateRemovesMatches(t *testing.T) {
	p := luapattern.MustCompilePattern(`%s+`)
	out, n, err := p.Gsub([]byte("a b  c"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "abc" {
		t.Errorf("got %q, want %q", out, "abc")
	}
	if n != 2 {
		t.Errorf("got n=%d, want 2", n)
	}
}

func TestGsubMalformedTemplate(t *testing.T) {
	p := luapattern.MustCompilePattern(`x`)
	if _, _, err := p.Gsub([]byte("x"), "trailing %"); !errors.Is(err, luapattern.ErrGsubTemplate) {
		t.Fatalf("got %v, want ErrGsubTemplate", err)
	}
	if _, _, err := p.Gsub([]byte("x"), "%q"); !errors.Is(err, luapattern.ErrGsubTemplate) {
		t.Fatalf("got %v, want ErrGsubTemplate", err)
	}
}

func TestGsubCaptureIndexOutOfRange(t *testing.T) {
	p := luapattern.MustCompilePattern(`(%a)`)
	_, _, err := p.Gsub([]byte("a"), "%2")
	if !errors.Is(err, luapattern.ErrGsubCaptureIndex) {
		t.Fatalf("got %v, want ErrGsubCaptureIndex", err)
	}
}

func TestGsubFuncDeletesOnNilReturn(t *testing.T) {
	p := luapattern.MustCompilePattern(`%d+`)
	out, n := p.GsubFunc([]byte("a1b22c"), func(c *luapattern.Captures) []byte {
		return nil
	})
	if string(out) != "abc" {
		t.Errorf("got %q, want abc", out)
	}
	if n != 2 {
		t.Errorf("got n=%d, want 2", n)
	}
}

func TestGsubFuncUppercases(t *testing.T) {
	p := luapattern.MustCompilePattern(`%a+`)
	out, n := p.GsubFunc([]byte("shout loud"), func(c *luapattern.Captures) []byte {
		w := c.Whole()
		up := make([]byte, len(w))
		for i, b := range w {
			if b >= 'a' && b <= 'z' {
				b -= 'a' - 'A'
			}
			up[i] = b
		}
		return up
	})
	if string(out) != "SHOUT LOUD" {
		t.Errorf("got %q", out)
	}
	if n != 2 {
		t.Errorf("got n=%d, want 2", n)
	}
}
