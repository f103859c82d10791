package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"country-quiz-game/internal/domain"
	"country-quiz-game/internal/quiz"
)

// DefaultQuestionCount is used when a start request does not name a count.
const DefaultQuestionCount = 10

// CountryRepository provides the filtered, cached reference dataset.
type CountryRepository interface {
	GetCountries(ctx context.Context) ([]domain.Country, error)
}

// SessionRepository stores live quiz sessions by id (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
}

// QuizService contains the quiz use cases: starting a session, scoring
// answers, and reading profile stats.
type QuizService struct {
	countries CountryRepository
	sessions  SessionRepository
	generator *quiz.Generator
	ledger    *Ledger
}

func NewQuizService(countries CountryRepository, sessions SessionRepository, generator *quiz.Generator, ledger *Ledger) *QuizService {
	return &QuizService{
		countries: countries,
		sessions:  sessions,
		generator: generator,
		ledger:    ledger,
	}
}

// StartQuiz fetches the dataset, generates questions and registers a fresh
// session. A failed or empty fetch surfaces as ErrNoCountryData; a pool too
// small to produce a single question surfaces as ErrInsufficientData. A
// partial question list is served as-is.
func (s *QuizService) StartQuiz(ctx context.Context, profileID string, mode domain.Mode, count int) (*Session, error) {
	if !mode.Valid() {
		return nil, domain.ErrUnknownMode
	}
	if count <= 0 {
		count = DefaultQuestionCount
	}

	countries, err := s.countries.GetCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoCountryData, err)
	}
	if len(countries) == 0 {
		return nil, domain.ErrNoCountryData
	}

	questions := s.generator.Generate(mode, count, countries)
	if len(questions) == 0 {
		return nil, domain.ErrInsufficientData
	}

	session := NewSession(uuid.NewString(), profileID, mode, questions)
	s.sessions.Put(session)
	return session, nil
}

// AnswerResult pairs one answer outcome with the question it answered and,
// when the session just finished, the completion summary.
type AnswerResult struct {
	Outcome     AnswerOutcome
	Question    domain.Question
	CorrectCode string
	Completion  *Completion
}

// Completion summarizes a finished session for the presentation layer.
type Completion struct {
	Score         int
	Total         int
	Percentage    int
	Tier          domain.ResultTier
	Outcomes      []bool
	Stats         domain.GameStats
	NewlyUnlocked []domain.Achievement
}

// SubmitAnswer validates the submitted country code against the current
// question, advances the session, and on the transition into completion
// records the result with the ledger exactly once.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID, countryCode string) (AnswerResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return AnswerResult{}, domain.ErrSessionNotFound
	}

	question, err := session.Current()
	if err != nil {
		return AnswerResult{}, err
	}

	outcome, err := session.Answer(question.Correct.CCA3 == countryCode)
	if err != nil {
		return AnswerResult{}, err
	}

	result := AnswerResult{
		Outcome:     outcome,
		Question:    question,
		CorrectCode: question.Correct.CCA3,
	}
	if outcome.Complete {
		stats, unlocked := s.ledger.RecordSession(ctx, session.ProfileID(), session.Mode(), outcome.Score, session.Len(), outcome.BestStreak)
		percentage := session.Percentage()
		result.Completion = &Completion{
			Score:         outcome.Score,
			Total:         session.Len(),
			Percentage:    percentage,
			Tier:          domain.TierFor(percentage),
			Outcomes:      session.Outcomes(),
			Stats:         stats,
			NewlyUnlocked: unlocked,
		}
		s.sessions.Delete(sessionID)
	}
	return result, nil
}

// Abandon drops a live session without recording it (restart, disconnect).
func (s *QuizService) Abandon(sessionID string) {
	s.sessions.Delete(sessionID)
}

// Stats returns the profile's persisted lifetime stats.
func (s *QuizService) Stats(ctx context.Context, profileID string) domain.GameStats {
	return s.ledger.Stats(ctx, profileID)
}
