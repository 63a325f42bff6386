package service

import (
	"context"
	"errors"
	"strings"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/llm"
	"seyone-academy-go/pkg/log"
)

const (
	// FallbackReply is shown when the advisor cannot be reached or is not configured.
	FallbackReply = "I'm having trouble connecting to my knowledge base. Please try again in a moment."
	// RephraseReply is shown when the model answers without usable text.
	RephraseReply = "I'm sorry, I couldn't process that. Could you try rephrasing?"
)

// DefaultAdvisorInstruction describes the academy's programmes and how to
// recommend one. It is guidance for the model only.
const DefaultAdvisorInstruction = `You are the "Seyone Career Path AI Advisor". You are a world-class expert in medical coding career transitions.

Your primary mission: Help prospective students at Seyone Medical Coding Academy find their ideal career path.

Seyone Academy Programs:
1. CPC (Certified Professional Coder): Best for beginners. Focused on physician offices. 6 months.
2. CCS (Certified Coding Specialist): Advanced. Focused on hospital/inpatient coding. 4 months.
3. ICD-10-CM Masterclass: Intermediate. Deep dive into diagnosis codes and HCC. 8 weeks.
4. Medical Auditing: Advanced. For those wanting to move into compliance/verification. 12 weeks.

Career Guidance Logic:
- If they have NO experience: Recommend starting with CPC.
- If they have a medical background (Nurse, Lab Tech): They can fast-track but CPC is still the base.
- If they want to work in Hospitals: Aim for CCS.
- If they want to work in Physician Offices: Aim for CPC.
- If they are already a Coder: Recommend Auditing or ICD-10 Masterclass.

Guidelines:
- Be professional, empathetic, and encouraging.
- Ask clarifying questions like "Do you have any prior experience in healthcare?" or "What are your long-term career goals (hospitals vs. private clinics)?"
- Keep responses concise and use bullet points for clarity.
- Mention Seyone's job placement rate (98%) and expert mentors.`

// Replier produces the model's answer to one user turn. It never fails.
type Replier interface {
	Reply(ctx context.Context, history []model.ChatMessage, message string) string
}

// Advisor forwards chat turns to the generative-language API.
type Advisor struct {
	client      llm.Client
	instruction string
}

// NewAdvisor creates an Advisor. An empty instruction uses DefaultAdvisorInstruction.
func NewAdvisor(client llm.Client, instruction string) *Advisor {
	if strings.TrimSpace(instruction) == "" {
		instruction = DefaultAdvisorInstruction
	}
	return &Advisor{client: client, instruction: instruction}
}

// Reply returns the model's text or one of the fixed fallback strings.
// Missing configuration and request failures are logged separately.
func (a *Advisor) Reply(ctx context.Context, history []model.ChatMessage, message string) string {
	msgs := make([]llm.Message, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, llm.Message{Role: string(m.Role), Content: m.Content})
	}

	text, err := a.client.GenerateReply(ctx, llm.GenerateRequest{
		SystemInstruction: a.instruction,
		History:           msgs,
		Message:           message,
	})
	switch {
	case err == nil:
		return text
	case errors.Is(err, llm.ErrMissingCredential):
		log.Warnw("advisor is not configured, returning fallback", "error", err)
		return FallbackReply
	case errors.Is(err, llm.ErrEmptyReply):
		log.Warnw("advisor returned no text")
		return RephraseReply
	case ctx.Err() != nil:
		return FallbackReply
	default:
		log.Errorw("advisor request failed", "error", err)
		return FallbackReply
	}
}
