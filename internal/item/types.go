package item

// Difficulty is the requested difficulty tier, ordered easy < medium < hard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rank returns the ordinal position of the tier (0 = easy).
// Unknown tiers rank below easy.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return -1
	}
}

// Valid reports whether d is a recognized tier.
func (d Difficulty) Valid() bool { return d.Rank() >= 0 }

// Category identifies the operation family of an item. The category plus
// the operand list fully determine the correct answer; rendered text is
// always derived from them, never the other way around.
type Category string

const (
	CategoryAddition            Category = "addition"
	CategorySubtraction         Category = "subtraction"
	CategoryMultiplication      Category = "multiplication"
	CategoryDivision            Category = "division"
	CategoryFractionAddition    Category = "fraction_addition"
	CategoryFractionSubtraction Category = "fraction_subtraction"
	CategoryComparison          Category = "comparison"
)

// Categories lists every supported category in canonical order.
var Categories = []Category{
	CategoryAddition,
	CategorySubtraction,
	CategoryMultiplication,
	CategoryDivision,
	CategoryFractionAddition,
	CategoryFractionSubtraction,
	CategoryComparison,
}

// CategoryFromTopic maps a request topic to a supported category.
// Returns false for unsupported topics.
func CategoryFromTopic(topic string) (Category, bool) {
	c := Category(topic)
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	// Common aliases accepted at the request boundary.
	switch topic {
	case "add":
		return CategoryAddition, true
	case "subtract":
		return CategorySubtraction, true
	case "multiply":
		return CategoryMultiplication, true
	case "divide":
		return CategoryDivision, true
	}
	return "", false
}

// AnswerType describes the representation of the correct answer.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "-15"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "3.75", "0.5"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4", "7/2"
	AnswerTypeText     AnswerType = "text"     // multiple-choice only
)

// AnswerFormat describes how the learner provides their answer.
type AnswerFormat string

const (
	FormatNumeric        AnswerFormat = "numeric"
	FormatMultipleChoice AnswerFormat = "multiple_choice"
)

// Persona is an optional learner profile. Read-only input to calibration
// and enhancement; never mutated by the pipeline.
type Persona struct {
	Grade           int      `json:"grade" yaml:"grade"`
	LearningStyle   string   `json:"learning_style" yaml:"learning_style"`
	Interests       []string `json:"interests" yaml:"interests"`
	CulturalContext string   `json:"cultural_context" yaml:"cultural_context"`
	Strengths       []string `json:"strengths" yaml:"strengths"`
}

// Request describes one batch generation request. Immutable once accepted.
type Request struct {
	Subject    string     `json:"subject" yaml:"subject"`
	Topic      string     `json:"topic" yaml:"topic"`
	GradeLevel int        `json:"grade_level" yaml:"grade_level"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`

	// Format selects the delivery format for every item in the batch.
	// Empty means numeric.
	Format AnswerFormat `json:"format,omitempty" yaml:"format,omitempty"`

	Count   int      `json:"count" yaml:"count"`
	Persona *Persona `json:"persona,omitempty" yaml:"persona,omitempty"`
}

// MinGrade and MaxGrade bound the accepted grade range.
const (
	MinGrade = 1
	MaxGrade = 12
)

// Item is a generated content item. The structured fields (Category,
// Operands, Answer) are authoritative; Text and Explanation are derived
// renderings.
type Item struct {
	// ID is a UUID assigned at generation time.
	ID string

	// Category and Operands are the structured problem definition.
	// Operands are numeric literals: "345", "-12", "0.5", "3/4".
	Category Category
	Operands []string

	// Answer is the canonical correct answer, never empty and never a
	// placeholder token.
	Answer     string
	AnswerType AnswerType

	// Format selects numeric entry or multiple choice.
	Format AnswerFormat

	// Choices is populated only for multiple choice: unique values,
	// one of which matches Answer.
	Choices []string

	// Text is the rendered question prompt shown to the learner.
	Text string

	// Explanation is a brief worked solution.
	Explanation string

	GradeLevel int
	Difficulty Difficulty
}

// placeholderAnswers are tokens the reference defect class rendered in
// place of a real answer. An answer equal to any of these is a defect.
var placeholderAnswers = map[string]bool{
	"":          true,
	"null":      true,
	"nil":       true,
	"none":      true,
	"n/a":       true,
	"undefined": true,
	"answer":    true,
	"option a":  true,
	"option b":  true,
	"option c":  true,
	"option d":  true,
	"tbd":       true,
	"?":         true,
}

// IsPlaceholderAnswer reports whether s is empty or a known placeholder
// token rather than a real answer.
func IsPlaceholderAnswer(s string) bool {
	return placeholderAnswers[normalizeToken(s)]
}
