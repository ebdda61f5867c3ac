package chat

import (
	"time"

	"github.com/josinaldojr/finwise-advisor/internal/advisor"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Type mirrors Role for clients reading
// either field. Model is "user" for user turns, "system" for the welcome
// message and the answering model otherwise.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Type      Role      `json:"type"`
	Content   string    `json:"content"`
	Model     string    `json:"model,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Actionable  bool   `json:"actionable"`
	Action      string `json:"action,omitempty"`
}

// Session is the public view of a conversation.
type Session struct {
	ID        string           `json:"id"`
	Compact   bool             `json:"compact"`
	Language  string           `json:"language"`
	Model     advisor.ModelTag `json:"model"`
	CreatedAt time.Time        `json:"createdAt"`
	Messages  []Message        `json:"messages"`
	Insights  []Insight        `json:"insights"`
}

type SendRequest struct {
	Content string `json:"content"`
	// Model overrides the session model when set.
	Model advisor.ModelTag `json:"model,omitempty"`
	// Language is a supported code, "auto" to detect from Content, or empty
	// to keep the session language.
	Language  string            `json:"language,omitempty"`
	Portfolio advisor.Portfolio `json:"userInvestments,omitempty"`
}

type Reply struct {
	Message  Message   `json:"message"`
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
	Language string    `json:"language"`
	Insights []Insight `json:"insights"`
}
