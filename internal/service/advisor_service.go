package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/repository"
	"seyone-academy-go/pkg/log"
)

// AdvisorGreeting is the first turn of every conversation.
const AdvisorGreeting = "Welcome to Seyone Academy! I am your SmartPath Career Advisor. I can help you find the perfect certification for your goals. What is your background in healthcare?"

// starterPromptTurnLimit: starters are offered while the conversation is shorter than this.
const starterPromptTurnLimit = 5

var starterPrompts = []string{
	"How do I start as a beginner?",
	"What's the difference between CPC and CCS?",
	"Tell me about job placements.",
	"Which course is best for nursing background?",
}

var (
	ErrEmptyMessage       = errors.New("message is empty")
	ErrAdvisorBusy        = errors.New("advisor is still answering the previous message")
	ErrSessionClosed      = errors.New("advisor session is closed")
	ErrSessionNotFound    = errors.New("advisor session not found")
	ErrStarterUnavailable = errors.New("starter prompt is not available")
)

// StarterPrompts returns the fixed starter prompts.
func StarterPrompts() []string {
	out := make([]string, len(starterPrompts))
	copy(out, starterPrompts)
	return out
}

// SessionUpdate is pushed to watchers when a session changes.
type SessionUpdate struct {
	Type    string             `json:"type"` // turn or state
	Message *model.ChatMessage `json:"message,omitempty"`
	State   model.AdvisorState `json:"state"`
	Starter []string           `json:"starterPrompts,omitempty"`
}

// AdvisorSession is one mounted chat widget. Turns are append-only. Closing
// cancels any pending advisor call and its late reply is dropped.
type AdvisorSession struct {
	id       string
	clientID string
	advisor  Replier
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     model.AdvisorState
	messages  []model.ChatMessage
	createdAt time.Time
	updatedAt time.Time
	nextWatch int
	watchers  map[int]func(SessionUpdate)
}

func newAdvisorSession(clientID string, advisor Replier, now func() time.Time) *AdvisorSession {
	ctx, cancel := context.WithCancel(context.Background())
	t := now()
	return &AdvisorSession{
		id:        uuid.NewString(),
		clientID:  clientID,
		advisor:   advisor,
		now:       now,
		ctx:       ctx,
		cancel:    cancel,
		state:     model.StateIdle,
		messages:  []model.ChatMessage{{Role: model.RoleModel, Content: AdvisorGreeting, Timestamp: t}},
		createdAt: t,
		updatedAt: t,
		watchers:  make(map[int]func(SessionUpdate)),
	}
}

func (s *AdvisorSession) ID() string       { return s.id }
func (s *AdvisorSession) ClientID() string { return s.clientID }

func (s *AdvisorSession) State() model.AdvisorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AdvisorSession) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Send appends text as a user turn, waits for the advisor and appends its
// reply. It returns the reply turn.
func (s *AdvisorSession) Send(text string) (model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	switch s.state {
	case model.StateClosed:
		s.mu.Unlock()
		return model.ChatMessage{}, ErrSessionClosed
	case model.StateAwaitingResponse:
		s.mu.Unlock()
		return model.ChatMessage{}, ErrAdvisorBusy
	}
	history := make([]model.ChatMessage, len(s.messages))
	copy(history, s.messages)
	userTurn := model.ChatMessage{Role: model.RoleUser, Content: text, Timestamp: s.now()}
	s.messages = append(s.messages, userTurn)
	s.state = model.StateAwaitingResponse
	s.updatedAt = userTurn.Timestamp
	watchers := s.watcherList()
	s.mu.Unlock()

	notify(watchers, SessionUpdate{Type: "turn", Message: &userTurn, State: model.StateAwaitingResponse})
	notify(watchers, SessionUpdate{Type: "state", State: model.StateAwaitingResponse})

	reply := s.advisor.Reply(s.ctx, history, text)

	s.mu.Lock()
	if s.state == model.StateClosed {
		s.mu.Unlock()
		return model.ChatMessage{}, ErrSessionClosed
	}
	modelTurn := model.ChatMessage{Role: model.RoleModel, Content: reply, Timestamp: s.now()}
	s.messages = append(s.messages, modelTurn)
	s.state = model.StateIdle
	s.updatedAt = modelTurn.Timestamp
	starters := s.starterPromptsLocked()
	watchers = s.watcherList()
	s.mu.Unlock()

	notify(watchers, SessionUpdate{Type: "turn", Message: &modelTurn, State: model.StateIdle})
	notify(watchers, SessionUpdate{Type: "state", State: model.StateIdle, Starter: starters})
	return modelTurn, nil
}

// SendStarter sends starter prompt i. It fails when starters are not on offer.
func (s *AdvisorSession) SendStarter(i int) (model.ChatMessage, error) {
	if i < 0 || i >= len(starterPrompts) {
		return model.ChatMessage{}, ErrStarterUnavailable
	}
	s.mu.Lock()
	closed := s.state == model.StateClosed
	offered := len(s.starterPromptsLocked()) > 0
	s.mu.Unlock()
	if closed {
		return model.ChatMessage{}, ErrSessionClosed
	}
	if !offered {
		return model.ChatMessage{}, ErrStarterUnavailable
	}
	return s.Send(starterPrompts[i])
}

// StarterPrompts returns the prompts on offer right now, or nil.
func (s *AdvisorSession) StarterPrompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starterPromptsLocked()
}

func (s *AdvisorSession) starterPromptsLocked() []string {
	if s.state != model.StateIdle || len(s.messages) >= starterPromptTurnLimit {
		return nil
	}
	return StarterPrompts()
}

// Close unmounts the widget. It is idempotent.
func (s *AdvisorSession) Close() {
	s.mu.Lock()
	if s.state == model.StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = model.StateClosed
	s.updatedAt = s.now()
	s.cancel()
	watchers := s.watcherList()
	s.watchers = make(map[int]func(SessionUpdate))
	s.mu.Unlock()

	notify(watchers, SessionUpdate{Type: "state", State: model.StateClosed})
}

// Watch registers fn for updates until the returned function is called or the session closes.
func (s *AdvisorSession) Watch(fn func(SessionUpdate)) (unwatch func()) {
	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

func (s *AdvisorSession) watcherList() []func(SessionUpdate) {
	out := make([]func(SessionUpdate), 0, len(s.watchers))
	for i := 0; i < s.nextWatch; i++ {
		if fn, ok := s.watchers[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(watchers []func(SessionUpdate), u SessionUpdate) {
	for _, fn := range watchers {
		fn(u)
	}
}

// View returns a snapshot for clients.
func (s *AdvisorSession) View() model.AdvisorSessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]model.ChatMessage, len(s.messages))
	copy(msgs, s.messages)
	starters := s.starterPromptsLocked()
	if starters == nil {
		starters = []string{}
	}
	return model.AdvisorSessionView{
		ID:             s.id,
		State:          s.state,
		Messages:       msgs,
		StarterPrompts: starters,
		CreatedAt:      s.createdAt,
		UpdatedAt:      s.updatedAt,
	}
}

// AdvisorService manages the mounted chat widgets of all clients.
type AdvisorService interface {
	Open(clientID string) *AdvisorSession
	Get(clientID, sessionID string) (*AdvisorSession, error)
	Send(clientID, sessionID, text string) (model.AdvisorSessionView, error)
	SendStarter(clientID, sessionID string, index int) (model.AdvisorSessionView, error)
	Close(clientID, sessionID string) error
	Stats() map[model.AdvisorState]int
	// RunSweeper closes idle sessions every interval until ctx is done.
	RunSweeper(ctx context.Context, interval, ttl time.Duration)
	Shutdown()
}

type advisorService struct {
	advisor  Replier
	sessions *repository.AdvisorSessionRepository[*AdvisorSession]
	now      func() time.Time
}

func NewAdvisorService(advisor Replier, sessions *repository.AdvisorSessionRepository[*AdvisorSession]) AdvisorService {
	return &advisorService{advisor: advisor, sessions: sessions, now: time.Now}
}

func (s *advisorService) Open(clientID string) *AdvisorSession {
	session := newAdvisorSession(clientID, s.advisor, s.now)
	s.sessions.Save(session)
	log.Infow("advisor session opened", "sessionId", session.ID(), "clientId", clientID)
	return session
}

func (s *advisorService) Get(clientID, sessionID string) (*AdvisorSession, error) {
	session, ok := s.sessions.Find(clientID, sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *advisorService) Send(clientID, sessionID, text string) (model.AdvisorSessionView, error) {
	session, err := s.Get(clientID, sessionID)
	if err != nil {
		return model.AdvisorSessionView{}, err
	}
	if _, err := session.Send(text); err != nil {
		return model.AdvisorSessionView{}, err
	}
	return session.View(), nil
}

func (s *advisorService) SendStarter(clientID, sessionID string, index int) (model.AdvisorSessionView, error) {
	session, err := s.Get(clientID, sessionID)
	if err != nil {
		return model.AdvisorSessionView{}, err
	}
	if _, err := session.SendStarter(index); err != nil {
		return model.AdvisorSessionView{}, err
	}
	return session.View(), nil
}

func (s *advisorService) Close(clientID, sessionID string) error {
	if _, err := s.Get(clientID, sessionID); err != nil {
		return err
	}
	if session, ok := s.sessions.Remove(sessionID); ok {
		session.Close()
		log.Infow("advisor session closed", "sessionId", sessionID, "clientId", clientID)
	}
	return nil
}

func (s *advisorService) Stats() map[model.AdvisorState]int {
	return s.sessions.CountByState()
}

func (s *advisorService) RunSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(s.now(), ttl); n > 0 {
				log.Infow("swept idle advisor sessions", "count", n)
			}
		}
	}
}

func (s *advisorService) Shutdown() {
	s.sessions.CloseAll()
}
