package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kielo/internal/diag"
	"kielo/internal/types"
)

func TestPipelineStages(t *testing.T) {
	const src = "var x = 1; print_int(x + 2)"

	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) == 0 {
		t.Fatal("no tokens")
	}

	if _, err := Parse(src); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	checked, err := Check(src)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !types.Same(checked.Type, types.Unit) {
		t.Errorf("program type = %s, want Unit", checked.Type)
	}

	instrs, err := LowerIR(src)
	if err != nil {
		t.Fatalf("LowerIR: %v", err)
	}
	if len(instrs) == 0 {
		t.Fatal("no IR")
	}

	asm, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(asm, "main:") {
		t.Errorf("assembly lacks main:\n%s", asm)
	}
}

func TestErrorsPropagate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"lex", "1 $ 2", diag.LexUnknownChar},
		{"parse", "1 + 2 xd", diag.SynTrailingTokens},
		{"check", "var a = 1; var b = true; a + b", diag.TypeBadOperand},
		{"irgen", "var f(x) = { x }; f(1)", diag.GenUnsupportedShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.src)
			if err == nil {
				t.Fatalf("Compile(%q): expected error", tt.src)
			}
			if got := diag.CodeOf(err); got != tt.code {
				t.Errorf("Compile(%q) code = %v, want %v", tt.src, got, tt.code)
			}
		})
	}
}

func TestRunUsesInterpreter(t *testing.T) {
	var out strings.Builder
	_, err := Run("print_int(read_int() * 2)", strings.NewReader("21"), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "42\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("kielo-test")
	if err != nil {
		t.Fatal(err)
	}

	key := HashSource("1 + 2")
	var got DiskPayload
	ok, err := cache.Get(key, &got)
	if err != nil || ok {
		t.Fatalf("Get on empty cache = (%v, %v)", ok, err)
	}

	want := DiskPayload{Schema: diskCacheSchemaVersion, Assembly: "main:\n"}
	if err := cache.Put(key, &want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	ok, err = cache.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get after Put = (%v, %v)", ok, err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, _ := cache.Get(key, &got); ok {
		t.Error("entry survived DropAll")
	}
}

func TestCompilerBuildCaches(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("kielo-test")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCompiler(cache)

	first, err := c.Build("1 + 2")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := c.Build("1 + 2")
	if err != nil {
		t.Fatalf("cached Build: %v", err)
	}
	if first != second {
		t.Error("cached build differs from fresh build")
	}

	// A nil cache must still compile.
	uncached, err := NewCompiler(nil).Build("1 + 2")
	if err != nil {
		t.Fatalf("uncached Build: %v", err)
	}
	if uncached != first {
		t.Error("uncached build differs")
	}
}

func TestBuildDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeFile := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("a.ki", "print_int(1);")
	writeFile("b.ki", "print_int(2);")
	writeFile("broken.ki", "1 +")
	writeFile("notes.txt", "not a source file")

	results, err := NewCompiler(nil).BuildDir(context.Background(), dir, 2)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// Sorted order: a.ki, b.ki, broken.ki.
	if filepath.Base(results[0].Path) != "a.ki" || results[0].Err != nil {
		t.Errorf("a.ki: %+v", results[0])
	}
	if !strings.Contains(results[1].Assembly, "main:") {
		t.Errorf("b.ki produced no assembly")
	}
	if results[2].Err == nil {
		t.Error("broken.ki should fail")
	}
}

func TestBuildDirEmpty(t *testing.T) {
	results, err := NewCompiler(nil).BuildDir(context.Background(), t.TempDir(), 0)
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results, got %d", len(results))
	}
}
