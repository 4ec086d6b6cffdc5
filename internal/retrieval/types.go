package retrieval

// Exemplar is a retrieved grounding example with a [0,1] relevance score.
type Exemplar struct {
	Text       string
	Answer     string
	Score      float64
	Difficulty string // optional tag, empty when untagged
}

// Filters narrows the exemplar search.
type Filters struct {
	Topic      string
	GradeLevel int
	Difficulty string
}
