package shell

import (
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// AliasPair is a single alias definition.
type AliasPair struct {
	Name   string
	Phrase string
}

// AliasTable maps alias names to the phrases they expand to.
//
// Lookups are exact and case sensitive. Replacing the phrase of an existing
// alias keeps its position; new aliases are listed first.
type AliasTable struct {
	om *orderedmap.OrderedMap[string, string]
}

// NewAliasTable creates an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{
		om: orderedmap.NewOrderedMap[string, string](),
	}
}

// Set creates or replaces the alias name.
func (t *AliasTable) Set(name, phrase string) {
	t.om.Set(name, phrase)
}

// Get returns the phrase for name, if any.
func (t *AliasTable) Get(name string) (string, bool) {
	return t.om.Get(name)
}

// Len returns the number of aliases.
func (t *AliasTable) Len() int {
	return t.om.Len()
}

// Pairs lists the aliases for display, most recently created first.
func (t *AliasTable) Pairs() []AliasPair {
	out := make([]AliasPair, 0, t.om.Len())
	for name, phrase := range t.om.AllFromBack() {
		out = append(out, AliasPair{Name: name, Phrase: phrase})
	}
	return out
}

// Expand resolves the command name of a segment through the table.
//
// A multi-word phrase supplies the command name and leading arguments, which
// come before the words the user typed. Phrase words are split on whitespace
// only, quotes and backslashes are kept as typed.
func (t *AliasTable) Expand(name string, args []string) (string, []string) {
	phrase, ok := t.Get(name)
	if !ok {
		return name, args
	}

	if !strings.Contains(phrase, " ") {
		return phrase, args
	}

	words := strings.Fields(phrase)
	if len(words) == 0 {
		return name, args
	}

	expanded := make([]string, 0, len(words)-1+len(args))
	expanded = append(expanded, words[1:]...)
	expanded = append(expanded, args...)
	return words[0], expanded
}
