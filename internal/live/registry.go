package live

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diogomix/bingopress/internal/bingo"
	"github.com/diogomix/bingopress/internal/engine"
	"github.com/diogomix/bingopress/pkg/events"
	"github.com/diogomix/bingopress/pkg/logger"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game id already in use")
)

// Session wraps one live game. The game itself is single-threaded; the
// session's mutex serializes call/undo against the same game id, which is
// the hosting layer's job.
type Session struct {
	ID        string
	Source    string
	CreatedAt time.Time

	mu      sync.Mutex
	game    *engine.Game
	emitter events.Emitter
}

func (s *Session) Call(number int) (*engine.CallResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.game.Call(number)
	if err != nil {
		return nil, err
	}

	s.emit(s.emitter.EmitBallCalled(s.ID, result.Ball, result.TotalCalled))
	if len(result.NewWinners) > 0 {
		s.emit(s.emitter.EmitWinners(s.ID, result.Ball, result.NewWinners))
	}
	return result, nil
}

func (s *Session) Undo() (*engine.UndoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.game.Undo()
	if err != nil {
		return nil, err
	}

	s.emit(s.emitter.EmitBallUndone(s.ID, result.Ball, result.TotalCalled))
	return result, nil
}

func (s *Session) Ranking(topN int) []engine.RankEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Ranking(topN)
}

func (s *Session) State() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

func (s *Session) Reset() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Reset()
	s.emit(s.emitter.EmitGameReset(s.ID))
	return s.game.State()
}

// emit logs failed event publishes; emission never affects game state.
func (s *Session) emit(err error) {
	if err != nil {
		logger.Warn("Live event publish failed", "game", s.ID, "err", err)
	}
}

// Registry owns the live sessions, keyed by game id. It replaces the
// module-global map of the original design with an explicitly owned store
// whose lifetime is bound to the hosting server.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	emitter  events.Emitter
	seq      atomic.Uint64
}

func NewRegistry(emitter events.Emitter) *Registry {
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	return &Registry{
		sessions: make(map[string]*Session),
		emitter:  emitter,
	}
}

// Create starts a session over the given card population. An empty id gets
// a generated timestamp-based one.
func (r *Registry) Create(id, source string, cards []bingo.PlayedCard, maxNumber int) (*Session, error) {
	if id == "" {
		id = r.newGameID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, id)
	}

	session := &Session{
		ID:        id,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		game:      engine.NewGame(cards, maxNumber),
		emitter:   r.emitter,
	}
	r.sessions[id] = session

	if err := r.emitter.EmitGameStarted(id, len(cards)); err != nil {
		logger.Warn("Live event publish failed", "game", id, "err", err)
	}
	return session, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return session, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// List returns every active game id, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) newGameID() string {
	return fmt.Sprintf("%s-%04d",
		time.Now().UTC().Format("20060102150405"),
		r.seq.Add(1)%10000)
}
