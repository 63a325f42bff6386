package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seyone-academy-go/internal/model"
)

type fakeSession struct {
	id, client string
	state      model.AdvisorState
	last       time.Time
	closed     bool
}

func (f *fakeSession) ID() string                { return f.id }
func (f *fakeSession) ClientID() string          { return f.client }
func (f *fakeSession) State() model.AdvisorState { return f.state }
func (f *fakeSession) LastActive() time.Time     { return f.last }
func (f *fakeSession) Close()                    { f.closed = true; f.state = model.StateClosed }

func TestAdvisorSessionRepository_FindChecksOwner(t *testing.T) {
	repo := NewAdvisorSessionRepository[*fakeSession]()
	repo.Save(&fakeSession{id: "s1", client: "c1", state: model.StateIdle})

	_, ok := repo.Find("c1", "s1")
	assert.True(t, ok)
	_, ok = repo.Find("c2", "s1")
	assert.False(t, ok)
	_, ok = repo.Find("c1", "missing")
	assert.False(t, ok)
}

func TestAdvisorSessionRepository_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	stale := &fakeSession{id: "stale", client: "c", state: model.StateIdle, last: now.Add(-time.Hour)}
	fresh := &fakeSession{id: "fresh", client: "c", state: model.StateIdle, last: now.Add(-time.Minute)}
	busy := &fakeSession{id: "busy", client: "c", state: model.StateAwaitingResponse, last: now.Add(-time.Hour)}

	repo := NewAdvisorSessionRepository[*fakeSession]()
	for _, s := range []*fakeSession{stale, fresh, busy} {
		repo.Save(s)
	}

	assert.Equal(t, 1, repo.Sweep(now, 30*time.Minute))
	assert.True(t, stale.closed)
	assert.False(t, fresh.closed)
	assert.False(t, busy.closed)
	assert.Equal(t, map[model.AdvisorState]int{
		model.StateIdle:             1,
		model.StateAwaitingResponse: 1,
	}, repo.CountByState())

	repo.CloseAll()
	assert.True(t, fresh.closed)
	assert.True(t, busy.closed)
	assert.Equal(t, 0, repo.CountByState()[model.StateIdle])
}
