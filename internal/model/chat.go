package model

import "time"

// ChatRole is the author of a conversation turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of an advisor conversation. Conversations live in
// memory only and are lost when the widget closes.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AdvisorState is the chat widget's request state.
type AdvisorState string

const (
	StateIdle             AdvisorState = "idle"
	StateAwaitingResponse AdvisorState = "awaiting-response"
	StateClosed           AdvisorState = "closed"
)

// AdvisorSessionView is the widget snapshot returned to clients.
type AdvisorSessionView struct {
	ID             string        `json:"id"`
	State          AdvisorState  `json:"state"`
	Messages       []ChatMessage `json:"messages"`
	StarterPrompts []string      `json:"starterPrompts"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
