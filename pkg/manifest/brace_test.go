package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand_NestedColonGroups(t *testing.T) {
	got := Expand("src:{main.rs, ecs:{components, light.rs}}")
	assert.Equal(t, []string{"src/main.rs", "src/ecs/components", "src/ecs/light.rs"}, got)
}

func TestExpand_UnmatchedBraceIsLiteral(t *testing.T) {
	assert.Equal(t, []string{"src/{foo"}, Expand("src/{foo"))
	assert.Equal(t, []string{"src/{{a,b}"}, Expand("src/{{a,b}"))
}

func TestExpand_NoBraces(t *testing.T) {
	assert.Equal(t, []string{"src/main.rs"}, Expand("  src/main.rs "))
}

func TestExpand_PrefixAndSuffix(t *testing.T) {
	got := Expand("pkg/{a,b}/mod.rs")
	assert.Equal(t, []string{"pkg/a/mod.rs", "pkg/b/mod.rs"}, got)
}

func TestExpand_LiteralConcatenation(t *testing.T) {
	got := Expand("lib{,_test}.py")
	assert.Equal(t, []string{"lib.py", "lib_test.py"}, got)
}

func TestExpand_SequentialGroups(t *testing.T) {
	got := Expand("{a,b}/{x,y}.rs")
	assert.Equal(t, []string{"a/x.rs", "a/y.rs", "b/x.rs", "b/y.rs"}, got)
}

func TestExpand_CleansSeparators(t *testing.T) {
	got := Expand("/src//{ a/ , b}")
	assert.Equal(t, []string{"src/a/", "src/b"}, got)
}

func TestExpand_DropsDuplicatesAndEmpties(t *testing.T) {
	got := Expand("{a,a, ,b}")
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestExpand_UnmatchedAfterGroupStaysLiteral(t *testing.T) {
	got := Expand("a{b,c}d{e")
	assert.Equal(t, []string{"abd{e", "acd{e"}, got)
}

func TestExpand_StrayClosingBrace(t *testing.T) {
	assert.Equal(t, []string{"a}b"}, Expand("a}b"))
}

func TestExpand_DeepNestingTerminates(t *testing.T) {
	expr := "x"
	for i := 0; i < 200; i++ {
		expr = "d:{" + expr + "}"
	}
	got := Expand(expr)
	assert.Len(t, got, 1)
}

func TestSplitAlternatives(t *testing.T) {
	assert.Equal(t, []string{"a", " b:{c,d}", "e"}, splitAlternatives("a, b:{c,d},e"))
	assert.Equal(t, []string{""}, splitAlternatives(""))
}
