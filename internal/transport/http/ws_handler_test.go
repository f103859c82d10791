package http

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"country-quiz-game/internal/app"
	"country-quiz-game/internal/domain"
	"country-quiz-game/internal/infra/memory"
	"country-quiz-game/internal/quiz"
)

func TestWebSocketQuizFlow(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn := dial(t, server, "p1")
	defer conn.Close()

	// Start a flags quiz.
	writeJSON(t, conn, map[string]any{
		"type":    "start",
		"payload": map[string]any{"mode": "flags", "questions": 3},
	})

	var session sessionView
	readTyped(t, conn, "session", &session)
	if session.SessionID == "" || session.Total != 3 {
		t.Fatalf("expected 3-question session, got %+v", session)
	}
	for _, q := range session.Questions {
		if len(q.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(q.Options))
		}
		if q.FlagURL == "" {
			t.Fatalf("expected flag url on flags question")
		}
	}

	// Answer every question with the first option; the answer result names
	// the correct code either way.
	var result answerResultView
	for i := 0; i < session.Total; i++ {
		writeJSON(t, conn, map[string]any{
			"type":    "answer",
			"payload": map[string]any{"countryCode": session.Questions[i].Options[0].Code},
		})
		readTyped(t, conn, "answerResult", &result)
		if result.Index != i {
			t.Fatalf("expected answer index %d, got %d", i, result.Index)
		}
		if result.CorrectCode == "" {
			t.Fatalf("expected correct code in result")
		}
	}
	if !result.Done {
		t.Fatalf("expected last answer to finish the quiz")
	}

	var completion completionView
	readTyped(t, conn, "complete", &completion)
	if completion.Total != 3 {
		t.Fatalf("expected total 3, got %d", completion.Total)
	}
	if completion.Stats.TotalGames != 1 {
		t.Fatalf("expected recorded game, got %d", completion.Stats.TotalGames)
	}
	if len(completion.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(completion.Outcomes))
	}
	if completion.Message == "" || completion.Emoji == "" {
		t.Fatalf("expected encouragement tier, got %+v", completion)
	}
}

func TestWebSocketAnswerWithoutSession(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn := dial(t, server, "p1")
	defer conn.Close()

	writeJSON(t, conn, map[string]any{
		"type":    "answer",
		"payload": map[string]any{"countryCode": "FRA"},
	})

	var errPayload errorPayload
	readTyped(t, conn, "error", &errPayload)
	if errPayload.Message == "" {
		t.Fatalf("expected error message")
	}
}

func TestWebSocketStatsOnDemand(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	conn := dial(t, server, "p1")
	defer conn.Close()

	writeJSON(t, conn, map[string]any{"type": "stats"})

	var stats domain.GameStats
	readTyped(t, conn, "stats", &stats)
	if stats.TotalGames != 0 {
		t.Fatalf("expected fresh profile, got %+v", stats)
	}
}

func TestWebSocketRequiresProfileID(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial to fail without profileId")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %+v", resp)
	}
}

func newTestServer() *httptest.Server {
	sessions := memory.NewSessionStore()
	countries := memory.NewCountryRepository(memory.NewStaticCountrySource(testCountries(20)), time.Minute)
	generator := quiz.NewGeneratorWithRand(rand.New(rand.NewSource(11)))
	service := app.NewQuizService(countries, sessions, generator, app.NewLedger(memory.NewStatsStore()))
	handler := NewWSHandler(service, 10)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)
	return httptest.NewServer(mux)
}

func dial(t *testing.T, server *httptest.Server, profileID string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws?profileId=" + profileID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func writeJSON(t *testing.T, conn *websocket.Conn, msg any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readTyped(t *testing.T, conn *websocket.Conn, expect string, into any) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%s)", expect, msg.Type, msg.Payload)
	}
	if err := json.Unmarshal(msg.Payload, into); err != nil {
		t.Fatalf("decode %s payload: %v", expect, err)
	}
}

func testCountries(n int) []domain.Country {
	countries := make([]domain.Country, 0, n)
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("C%02d", i)
		countries = append(countries, domain.Country{
			Name:       domain.CountryName{Common: "Country " + code},
			Capital:    []string{"Capital " + code},
			Population: int64(1_000_000 * (i + 1)),
			Flags:      domain.CountryFlags{PNG: "https://flags.test/" + code + ".png"},
			CCA3:       code,
		})
	}
	return countries
}
