package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleAliasTable_Pairs() {
	aliases := NewAliasTable()
	aliases.Set("ll", "ls -la")
	aliases.Set("g", "git")
	aliases.Set("ll", "ls -lah")

	for _, pair := range aliases.Pairs() {
		fmt.Printf("%s: %s\n", pair.Name, pair.Phrase)
	}

	// Output: g: git
	// ll: ls -lah
}

func TestAliasTable_roundTrip(t *testing.T) {
	aliases := NewAliasTable()

	_, ok := aliases.Get("ll")
	assert.False(t, ok)

	aliases.Set("ll", "ls -la")
	phrase, ok := aliases.Get("ll")
	assert.True(t, ok)
	assert.Equal(t, "ls -la", phrase)
	assert.Equal(t, 1, aliases.Len())

	aliases.Set("ll", "ls -lah")
	phrase, ok = aliases.Get("ll")
	assert.True(t, ok)
	assert.Equal(t, "ls -lah", phrase)
	assert.Equal(t, 1, aliases.Len())
}

func TestAliasTable_Get_exact(t *testing.T) {
	aliases := NewAliasTable()
	aliases.Set("ll", "ls -la")

	for _, name := range []string{"LL", "l", "ll ", "lll"} {
		_, ok := aliases.Get(name)
		assert.False(t, ok, "lookup of %q", name)
	}
}

func TestAliasTable_Pairs_stable(t *testing.T) {
	aliases := NewAliasTable()
	aliases.Set("a", "1")
	aliases.Set("b", "2")
	aliases.Set("c", "3")
	aliases.Set("a", "4")

	want := []AliasPair{{"c", "3"}, {"b", "2"}, {"a", "4"}}
	assert.Equal(t, want, aliases.Pairs())
	assert.Equal(t, want, aliases.Pairs())
}

func TestAliasTable_Expand(t *testing.T) {
	aliases := NewAliasTable()
	aliases.Set("g", "git status")
	aliases.Set("l", "ls")
	aliases.Set("q", `echo 'a b'`)
	aliases.Set("nl", `printf a\nb`)
	aliases.Set("wide", "ls   -l\t-a")

	cases := map[string]struct {
		name     string
		args     []string
		wantName string
		wantArgs []string
	}{
		"no-alias":        {"git", []string{"push"}, "git", []string{"push"}},
		"single-word":     {"l", []string{"-a"}, "ls", []string{"-a"}},
		"multi-word":      {"g", []string{"--short"}, "git", []string{"status", "--short"}},
		"multi-word-bare": {"g", nil, "git", []string{"status"}},
		"quotes-kept":     {"q", nil, "echo", []string{"'a", "b'"}},
		"backslash-kept":  {"nl", nil, "printf", []string{`a\nb`}},
		"any-whitespace":  {"wide", []string{"/"}, "ls", []string{"-l", "-a", "/"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			name, args := aliases.Expand(tc.name, tc.args)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}
