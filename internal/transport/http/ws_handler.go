package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"country-quiz-game/internal/app"
	"country-quiz-game/internal/domain"
)

type WSHandler struct {
	service          *app.QuizService
	defaultQuestions int
	upgrader         websocket.Upgrader
}

// NewWSHandler serves the quiz protocol. defaultQuestions fills start
// requests that do not name a count; zero falls through to the service
// default.
func NewWSHandler(service *app.QuizService, defaultQuestions int) *WSHandler {
	return &WSHandler{
		service:          service,
		defaultQuestions: defaultQuestions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Mode      domain.Mode `json:"mode"`
	Questions int         `json:"questions"`
}

type answerPayload struct {
	CountryCode string `json:"countryCode"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// optionView is one answer choice. The quiz-relevant detail (which option is
// correct, option populations) is withheld until the answer result.
type optionView struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	FlagURL string `json:"flagUrl,omitempty"`
}

type questionView struct {
	Index   int          `json:"index"`
	Type    domain.Mode  `json:"type"`
	FlagURL string       `json:"flagUrl,omitempty"` // flags mode: the flag to identify
	Country string       `json:"country,omitempty"` // capitals mode: the country being asked
	Options []optionView `json:"options"`
}

type sessionView struct {
	SessionID string         `json:"sessionId"`
	Mode      domain.Mode    `json:"mode"`
	Total     int            `json:"total"`
	Questions []questionView `json:"questions"`
}

type answerResultView struct {
	Index       int               `json:"index"`
	Correct     bool              `json:"correct"`
	CorrectCode string            `json:"correctCode"`
	Score       int               `json:"score"`
	Streak      int               `json:"streak"`
	Done        bool              `json:"done"`
	Populations map[string]string `json:"populations,omitempty"` // population mode reveal
}

type completionView struct {
	Score         int                  `json:"score"`
	Total         int                  `json:"total"`
	Percentage    int                  `json:"percentage"`
	Emoji         string               `json:"emoji"`
	Message       string               `json:"message"`
	Outcomes      []bool               `json:"outcomes"`
	Stats         domain.GameStats     `json:"stats"`
	NewlyUnlocked []domain.Achievement `json:"newlyUnlocked"`
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz screen:
// start, answer-by-answer feedback, completion with stats, profile stats on
// demand. One session is live per connection at a time.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profileId")
	if profileID == "" {
		http.Error(w, "missing profileId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	sessionID := ""
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid start payload"}}
				continue
			}
			if payload.Questions <= 0 {
				payload.Questions = h.defaultQuestions
			}
			// Restart while a quiz is live abandons it unrecorded.
			if sessionID != "" {
				h.service.Abandon(sessionID)
				sessionID = ""
			}
			session, err := h.service.StartQuiz(r.Context(), profileID, payload.Mode, payload.Questions)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: startErrorMessage(err)}}
				continue
			}
			sessionID = session.ID()
			send <- outboundMessage[any]{Type: "session", Payload: sessionViewOf(session)}
		case "answer":
			if sessionID == "" {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "no quiz in progress"}}
				continue
			}
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			result, err := h.service.SubmitAnswer(r.Context(), sessionID, payload.CountryCode)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: answerResultViewOf(result)}
			if result.Completion != nil {
				sessionID = ""
				send <- outboundMessage[any]{Type: "complete", Payload: completionViewOf(result.Completion)}
			}
		case "stats":
			send <- outboundMessage[any]{Type: "stats", Payload: h.service.Stats(r.Context(), profileID)}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	if sessionID != "" {
		h.service.Abandon(sessionID)
	}
	close(send)
	<-writerDone
}

func sessionViewOf(session *app.Session) sessionView {
	questions := session.Questions()
	views := make([]questionView, 0, len(questions))
	for i, q := range questions {
		views = append(views, questionViewOf(i, q))
	}
	return sessionView{
		SessionID: session.ID(),
		Mode:      session.Mode(),
		Total:     len(questions),
		Questions: views,
	}
}

func questionViewOf(index int, q domain.Question) questionView {
	view := questionView{Index: index, Type: q.Type, Options: make([]optionView, 0, len(q.Options))}
	switch q.Type {
	case domain.ModeFlags:
		view.FlagURL = q.Correct.Flags.PNG
		for _, c := range q.Options {
			view.Options = append(view.Options, optionView{Code: c.CCA3, Label: c.Name.Common})
		}
	case domain.ModeCapitals:
		view.Country = q.Correct.Name.Common
		for _, c := range q.Options {
			label := "No capital"
			if len(c.Capital) > 0 {
				label = c.Capital[0]
			}
			view.Options = append(view.Options, optionView{Code: c.CCA3, Label: label})
		}
	case domain.ModePopulation:
		for _, c := range q.Options {
			view.Options = append(view.Options, optionView{Code: c.CCA3, Label: c.Name.Common, FlagURL: c.Flags.PNG})
		}
	}
	return view
}

func answerResultViewOf(result app.AnswerResult) answerResultView {
	view := answerResultView{
		Index:       result.Outcome.Index,
		Correct:     result.Outcome.Correct,
		CorrectCode: result.CorrectCode,
		Score:       result.Outcome.Score,
		Streak:      result.Outcome.Streak,
		Done:        result.Outcome.Complete,
	}
	if result.Question.Type == domain.ModePopulation {
		view.Populations = make(map[string]string, len(result.Question.Options))
		for _, c := range result.Question.Options {
			view.Populations[c.CCA3] = domain.FormatPopulation(c.Population)
		}
	}
	return view
}

func completionViewOf(completion *app.Completion) completionView {
	unlocked := completion.NewlyUnlocked
	if unlocked == nil {
		unlocked = []domain.Achievement{}
	}
	return completionView{
		Score:         completion.Score,
		Total:         completion.Total,
		Percentage:    completion.Percentage,
		Emoji:         completion.Tier.Emoji,
		Message:       completion.Tier.Message,
		Outcomes:      completion.Outcomes,
		Stats:         completion.Stats,
		NewlyUnlocked: unlocked,
	}
}

func startErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownMode):
		return "unknown quiz mode"
	case errors.Is(err, domain.ErrNoCountryData), errors.Is(err, domain.ErrInsufficientData):
		return "We couldn't load the quiz questions. Please try again."
	}
	return err.Error()
}
