package shell

// Segment is one stage of a pipeline.
type Segment struct {
	// Words holds the tokenized segment as typed.
	Words []string

	// Builtin is set when the first word names a shell builtin, the segment
	// then runs in-process and never joins the chain of processes.
	Builtin Builtin

	// Name and Args hold the external command after alias expansion.
	Name string
	Args []string
}

// IsBuiltin returns true if the segment runs in-process.
func (s *Segment) IsBuiltin() bool {
	return s.Builtin != nil
}

// Pipeline is the ordered list of segments parsed from a single line.
type Pipeline struct {
	Segments []Segment
}

// BuildPipeline splits a substituted line into segments and decides how each
// one is dispatched: builtins first, then aliases, then the literal command.
//
// An empty segment ends the pipeline.
func BuildPipeline(line string, aliases *AliasTable) *Pipeline {
	pipeline := &Pipeline{}

	for _, raw := range SplitPipeline(line) {
		words := Tokenize(raw)
		if len(words) == 0 {
			break
		}

		segment := Segment{Words: words}
		if builtin, ok := LookupBuiltin(words[0]); ok {
			segment.Builtin = builtin
		} else {
			segment.Name, segment.Args = aliases.Expand(words[0], words[1:])
		}

		pipeline.Segments = append(pipeline.Segments, segment)
	}

	return pipeline
}

// Externals returns the number of segments that run as processes.
func (p *Pipeline) Externals() int {
	count := 0
	for i := range p.Segments {
		if !p.Segments[i].IsBuiltin() {
			count++
		}
	}
	return count
}

// feedsNext returns true if segment i has a later process to pipe into.
func (p *Pipeline) feedsNext(i int) bool {
	for j := i + 1; j < len(p.Segments); j++ {
		if !p.Segments[j].IsBuiltin() {
			return true
		}
	}
	return false
}
