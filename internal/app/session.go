package app

import (
	"math"
	"sync"

	"country-quiz-game/internal/domain"
)

// Session drives one quiz through its questions. The question list is fixed
// at creation; everything else mutates exactly once per answer event. All
// mutable state is guarded by mu.
type Session struct {
	id        string
	profileID string
	mode      domain.Mode
	questions []domain.Question

	mu         sync.Mutex
	index      int
	score      int
	outcomes   []bool
	streak     int
	bestStreak int
	complete   bool
}

func NewSession(id, profileID string, mode domain.Mode, questions []domain.Question) *Session {
	return &Session{
		id:        id,
		profileID: profileID,
		mode:      mode,
		questions: questions,
	}
}

func (s *Session) ID() string        { return s.id }
func (s *Session) ProfileID() string { return s.profileID }
func (s *Session) Mode() domain.Mode { return s.mode }
func (s *Session) Len() int          { return len(s.questions) }

// Questions returns the full question list fixed at session start.
func (s *Session) Questions() []domain.Question {
	return s.questions
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.complete {
		return domain.Question{}, domain.ErrSessionComplete
	}
	return s.questions[s.index], nil
}

// AnswerOutcome is the session snapshot produced by one answer event.
type AnswerOutcome struct {
	Correct    bool
	Index      int // index of the question just answered
	Score      int
	Streak     int
	BestStreak int
	Complete   bool
}

// Answer applies one answer event: it appends the outcome, updates score and
// streak, and either advances to the next question or completes the session.
// Answering a complete session is a caller bug; committed history is left
// untouched and ErrSessionComplete is returned.
func (s *Session) Answer(correct bool) (AnswerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.complete {
		return AnswerOutcome{}, domain.ErrSessionComplete
	}

	s.outcomes = append(s.outcomes, correct)
	if correct {
		s.score++
		s.streak++
		if s.streak > s.bestStreak {
			s.bestStreak = s.streak
		}
	} else {
		s.streak = 0
	}

	answered := s.index
	if s.index+1 < len(s.questions) {
		s.index++
	} else {
		s.complete = true
	}

	return AnswerOutcome{
		Correct:    correct,
		Index:      answered,
		Score:      s.score,
		Streak:     s.streak,
		BestStreak: s.bestStreak,
		Complete:   s.complete,
	}, nil
}

// Outcomes returns a copy of the per-question results recorded so far.
func (s *Session) Outcomes() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.outcomes...)
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) BestStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestStreak
}

func (s *Session) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete
}

// Percentage is the rounded final score percentage that selects the
// encouragement tier.
func (s *Session) Percentage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.score) / float64(len(s.questions))))
}
