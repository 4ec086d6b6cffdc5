// Package fallback serves pre-authored items for when generation
// cannot produce an acceptable candidate within the retry budget. The
// answers are not stored: each template carries only structured
// operands and the answer is computed at lookup time, so a fallback
// item satisfies the same non-null answer guarantee as a generated one.
package fallback

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/item"
)

// template is one pre-authored problem. Text and Explanation embed the
// operands verbatim; %s placeholders hold the computed answer.
type template struct {
	operands    []string
	text        string
	explanation string
	minGrade    int
	maxGrade    int
}

// Library resolves a request to a pre-authored item. Picks rotate
// through each cell's templates so repeated fallbacks within one batch
// do not return textually identical items.
type Library struct {
	templates map[item.Category]map[item.Difficulty][]template

	mu   sync.Mutex
	next map[string]int
}

// NewLibrary returns the built-in template set.
func NewLibrary() *Library {
	return &Library{
		templates: builtinTemplates,
		next:      make(map[string]int),
	}
}

// Pick returns a fallback item for the request, or an error when no
// template covers the category at that grade. The returned item is
// fully populated and freshly identified.
func (l *Library) Pick(req item.Request) (*item.Item, error) {
	cat, ok := item.CategoryFromTopic(req.Topic)
	if !ok {
		return nil, fmt.Errorf("no fallback templates for topic %q", req.Topic)
	}
	byDiff, ok := l.templates[cat]
	if !ok {
		return nil, fmt.Errorf("no fallback templates for category %q", cat)
	}

	// fall back toward easier tiers rather than failing on a sparse cell
	for _, diff := range difficultyOrder(req.Difficulty) {
		var eligible []template
		for _, tpl := range byDiff[diff] {
			if req.GradeLevel >= tpl.minGrade && req.GradeLevel <= tpl.maxGrade {
				eligible = append(eligible, tpl)
			}
		}
		if len(eligible) == 0 {
			continue
		}
		return build(cat, diff, l.rotate(cat, diff, eligible), req)
	}
	return nil, fmt.Errorf("no fallback template for category %q at grade %d", cat, req.GradeLevel)
}

// rotate advances the cell's round-robin cursor and returns the next
// eligible template.
func (l *Library) rotate(cat item.Category, diff item.Difficulty, eligible []template) template {
	key := string(cat) + "/" + string(diff)
	l.mu.Lock()
	idx := l.next[key] % len(eligible)
	l.next[key]++
	l.mu.Unlock()
	return eligible[idx]
}

func difficultyOrder(d item.Difficulty) []item.Difficulty {
	switch d {
	case item.DifficultyHard:
		return []item.Difficulty{item.DifficultyHard, item.DifficultyMedium, item.DifficultyEasy}
	case item.DifficultyMedium:
		return []item.Difficulty{item.DifficultyMedium, item.DifficultyEasy}
	default:
		return []item.Difficulty{item.DifficultyEasy}
	}
}

func build(cat item.Category, diff item.Difficulty, tpl template, req item.Request) (*item.Item, error) {
	answer, answerType, err := item.Compute(cat, tpl.operands)
	if err != nil {
		return nil, fmt.Errorf("fallback template for %q: %w", cat, err)
	}
	if answer == "" || item.IsPlaceholderAnswer(answer) {
		return nil, fmt.Errorf("fallback template for %q computes unusable answer %q", cat, answer)
	}

	it := &item.Item{
		ID:          uuid.NewString(),
		Category:    cat,
		Operands:    tpl.operands,
		Answer:      answer,
		AnswerType:  answerType,
		Format:      item.FormatNumeric,
		Text:        tpl.text,
		Explanation: fmt.Sprintf(tpl.explanation, answer),
		GradeLevel:  req.GradeLevel,
		Difficulty:  diff,
	}

	if req.Format == item.FormatMultipleChoice {
		choices, err := staticChoices(it)
		if err != nil {
			return nil, err
		}
		it.Format = item.FormatMultipleChoice
		it.Choices = choices
	}

	return it, nil
}

// staticChoices derives three deterministic distractors from the
// computed answer.
func staticChoices(it *item.Item) ([]string, error) {
	if n, err := strconv.ParseInt(it.Answer, 10, 64); err == nil {
		return []string{
			it.Answer,
			strconv.FormatInt(n+1, 10),
			strconv.FormatInt(n-1, 10),
			strconv.FormatInt(n+10, 10),
		}, nil
	}
	if num, den, err := item.ParseFraction(it.Answer); err == nil {
		return []string{
			it.Answer,
			fmt.Sprintf("%d/%d", num+1, den),
			fmt.Sprintf("%d/%d", num, den+1),
			fmt.Sprintf("%d/%d", den, num),
		}, nil
	}
	return nil, fmt.Errorf("cannot derive choices for fallback answer %q", it.Answer)
}
