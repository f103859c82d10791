package quiz

import (
	"math/rand"
	"sync"
	"time"

	"country-quiz-game/internal/domain"
)

// optionCount is the option-set size for flag and capital questions.
const optionCount = 4

// Generator builds multiple-choice questions from the filtered country list.
// It fails soft: when the eligible pool cannot satisfy the distinctness
// constraints it returns fewer questions than requested, possibly none.
type Generator struct {
	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rnd *rand.Rand
}

func NewGenerator() *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWithRand allows deterministic draws in tests.
func NewGeneratorWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate produces up to n questions for the given mode. Callers must check
// the result length against n; a shortfall means the pool was too small.
func (g *Generator) Generate(mode domain.Mode, n int, countries []domain.Country) []domain.Question {
	if n <= 0 || len(countries) == 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	switch mode {
	case domain.ModeFlags:
		return g.choiceQuestions(domain.ModeFlags, n, countries)
	case domain.ModeCapitals:
		return g.choiceQuestions(domain.ModeCapitals, n, withCapitals(countries))
	case domain.ModePopulation:
		return g.populationQuestions(n, countries)
	}
	return nil
}

// choiceQuestions draws n distinct correct countries, then three distinct
// distractors for each, and shuffles the combined option set so the correct
// answer lands in a uniformly random position.
func (g *Generator) choiceQuestions(mode domain.Mode, n int, pool []domain.Country) []domain.Question {
	if len(pool) < optionCount {
		return nil
	}

	selected := g.sample(pool, n)
	questions := make([]domain.Question, 0, len(selected))
	for _, correct := range selected {
		distractors := g.sample(excluding(pool, correct.CCA3), optionCount-1)
		if len(distractors) < optionCount-1 {
			continue
		}

		options := make([]domain.Country, 0, optionCount)
		options = append(options, correct)
		options = append(options, distractors...)
		g.rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, domain.Question{
			Type:    mode,
			Correct: correct,
			Options: options,
		})
	}
	return questions
}

// populationQuestions draws 2n distinct countries and pairs them off. The
// strictly larger population wins; equal populations resolve to the first of
// the pair. An unpaired leftover country is dropped.
func (g *Generator) populationQuestions(n int, pool []domain.Country) []domain.Question {
	selected := g.sample(pool, n*2)
	questions := make([]domain.Question, 0, n)
	for i := 0; i+1 < len(selected); i += 2 {
		first, second := selected[i], selected[i+1]
		correct := first
		if second.Population > first.Population {
			correct = second
		}
		questions = append(questions, domain.Question{
			Type:    domain.ModePopulation,
			Correct: correct,
			Options: []domain.Country{first, second},
		})
	}
	return questions
}

// sample returns up to count countries drawn uniformly without replacement.
func (g *Generator) sample(pool []domain.Country, count int) []domain.Country {
	shuffled := make([]domain.Country, len(pool))
	copy(shuffled, pool)
	g.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func withCapitals(countries []domain.Country) []domain.Country {
	eligible := make([]domain.Country, 0, len(countries))
	for _, c := range countries {
		if c.HasCapital() {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

func excluding(countries []domain.Country, cca3 string) []domain.Country {
	rest := make([]domain.Country, 0, len(countries))
	for _, c := range countries {
		if c.CCA3 != cca3 {
			rest = append(rest, c)
		}
	}
	return rest
}
