package luapattern_test

import (
	"fmt"

	"github.com/coregx/luapattern"
)

// ExampleCompilePatternString demonstrates basic pattern compilation and
// matching.
func ExampleCompilePatternString() {
	p, err := luapattern.CompilePatternString(`%d+`)
	if err != nil {
		panic(err)
	}
	fmt.Println(p.MatchString("hello 123"))
	// Output: true
}

// ExampleMustCompilePattern demonstrates panic-on-error compilation.
func ExampleMustCompilePattern() {
	p := luapattern.MustCompilePattern(`hello`)
	fmt.Println(p.MatchString("hello world"))
	// Output: true
}

// ExamplePattern_CaptureBytes demonstrates extracting a named field.
func ExamplePattern_CaptureBytes() {
	p := luapattern.MustCompilePattern(`(%S+)%s*=%s*(.+)`)
	subject := []byte(" hello= bonzo dog")
	p.Match(subject)
	fmt.Println(string(p.CaptureBytes(subject, 1)))
	fmt.Println(string(p.CaptureBytes(subject, 2)))
	// Output:
	// hello
	// bonzo dog
}

// ExamplePattern_GMatch demonstrates global iteration.
func ExamplePattern_GMatch() {
	p := luapattern.MustCompilePattern(`%a+`)
	it := p.GMatch([]byte("one two three"))
	for {
		word, ok := it.Next()
		if !ok {
			break
		}
		fmt.Println(string(word))
	}
	// Output:
	// one
	// two
	// three
}

// ExamplePattern_Gsub demonstrates template-based substitution.
func ExamplePattern_Gsub() {
	p := luapattern.MustCompilePattern(`%$(%a+)`)
	out, n, err := p.Gsub([]byte("hello $name, you are $age"), "<%1>")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out), n)
	// Output: hello <name>, you are <age> 2
}

// ExamplePattern_GsubFunc demonstrates callback-based substitution.
func ExamplePattern_GsubFunc() {
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
	fmt.Println(string(out), n)
	// Output: SHOUT LOUD 2
}

// ExampleNewBuilder demonstrates assembling a pattern from fragments.
func ExampleNewBuilder() {
	b := luapattern.NewBuilder().LiteralString("3.14").Raw(`%s*%a*`)
	fmt.Println(b.String())
	// Output: 3%.14%s*%a*
}
