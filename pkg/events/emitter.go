package events

import (
	"encoding/json"
	"time"
)

const (
	TypeGameStarted = "game_started"
	TypeBallCalled  = "ball_called"
	TypeBallUndone  = "ball_undone"
	TypeWinners     = "winners"
	TypeGameReset   = "game_reset"
)

type LiveEvent struct {
	Type      string `json:"type"`
	GameID    string `json:"game_id"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher is the subset of *nats.Conn the emitter needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type Emitter interface {
	EmitGameStarted(gameID string, totalCards int) error
	EmitBallCalled(gameID string, ball int, totalCalled int) error
	EmitBallUndone(gameID string, ball int, totalCalled int) error
	EmitWinners(gameID string, ball int, winners []string) error
	EmitGameReset(gameID string) error
	Emit(event LiveEvent) error
}

type emitter struct {
	pub     Publisher
	subject string
}

func NewEmitter(pub Publisher, subject string) Emitter {
	return &emitter{
		pub:     pub,
		subject: subject,
	}
}

func (e *emitter) EmitGameStarted(gameID string, totalCards int) error {
	return e.Emit(LiveEvent{
		Type:   TypeGameStarted,
		GameID: gameID,
		Data:   map[string]int{"total_cards": totalCards},
	})
}

func (e *emitter) EmitBallCalled(gameID string, ball int, totalCalled int) error {
	return e.Emit(LiveEvent{
		Type:   TypeBallCalled,
		GameID: gameID,
		Data:   map[string]int{"ball": ball, "total_called": totalCalled},
	})
}

func (e *emitter) EmitBallUndone(gameID string, ball int, totalCalled int) error {
	return e.Emit(LiveEvent{
		Type:   TypeBallUndone,
		GameID: gameID,
		Data:   map[string]int{"ball": ball, "total_called": totalCalled},
	})
}

func (e *emitter) EmitWinners(gameID string, ball int, winners []string) error {
	return e.Emit(LiveEvent{
		Type:   TypeWinners,
		GameID: gameID,
		Data: map[string]any{
			"ball":    ball,
			"winners": winners,
		},
	})
}

func (e *emitter) EmitGameReset(gameID string) error {
	return e.Emit(LiveEvent{
		Type:   TypeGameReset,
		GameID: gameID,
	})
}

func (e *emitter) Emit(event LiveEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UTC().Unix()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	// All games emit to the same subject
	return e.pub.Publish(e.subject, data)
}

// NopEmitter discards every event. Used when no NATS URL is configured;
// emission is advisory and must never change game outcomes.
type NopEmitter struct{}

func (NopEmitter) EmitGameStarted(string, int) error       { return nil }
func (NopEmitter) EmitBallCalled(string, int, int) error   { return nil }
func (NopEmitter) EmitBallUndone(string, int, int) error   { return nil }
func (NopEmitter) EmitWinners(string, int, []string) error { return nil }
func (NopEmitter) EmitGameReset(string) error              { return nil }
func (NopEmitter) Emit(LiveEvent) error                    { return nil }
