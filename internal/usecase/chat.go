package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"genki-chat/internal/domain"
)

const defaultAgentTimeout = 60 * time.Second

// HistoryAppender records conversation turns.
type HistoryAppender interface {
	Append(ctx context.Context, userID, sessionID string, role domain.Role, content string) error
}

// ProfileReader fetches a stored profile; absent is not an error.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (domain.UserProfile, bool, error)
}

// AgentInvoker exchanges a message for the agent's reply under a
// session token.
type AgentInvoker interface {
	Invoke(ctx context.Context, message, sessionID string) (string, error)
}

// ChatService runs one chat turn end to end: resolve the session,
// record the user turn, condition the message with the profile, invoke
// the agent, record the reply.
type ChatService struct {
	history      HistoryAppender
	profiles     ProfileReader
	agent        AgentInvoker
	agentTimeout time.Duration
}

type ChatInput struct {
	UserID    string
	Message   string
	SessionID string
}

type ChatOutput struct {
	Reply     string
	SessionID string
	Timestamp string
}

func NewChatService(history HistoryAppender, profiles ProfileReader, agent AgentInvoker, agentTimeout time.Duration) (*ChatService, error) {
	if history == nil {
		return nil, errors.New("usecase: history store must not be nil")
	}
	if profiles == nil {
		return nil, errors.New("usecase: profile reader must not be nil")
	}
	if agent == nil {
		return nil, errors.New("usecase: agent invoker must not be nil")
	}
	if agentTimeout <= 0 {
		agentTimeout = defaultAgentTimeout
	}
	return &ChatService{
		history:      history,
		profiles:     profiles,
		agent:        agent,
		agentTimeout: agentTimeout,
	}, nil
}

func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if strings.TrimSpace(in.UserID) == "" {
		return ChatOutput{}, newError(ErrorUnauthenticated, "missing_user_id", nil)
	}

	sessionID := resolveSession(in.SessionID)

	// The user turn is written before the agent call so it survives an
	// agent failure. A failed write never blocks the reply.
	if err := s.history.Append(ctx, in.UserID, sessionID, domain.RoleUser, message); err != nil {
		slog.Error("failed to save user turn", "userId", in.UserID, "sessionId", sessionID, "err", err)
	}

	prompt := message
	profile, found, err := s.profiles.Get(ctx, in.UserID)
	if err != nil {
		// A profile read hiccup degrades to an unconditioned message.
		slog.Error("failed to load profile", "userId", in.UserID, "err", err)
	} else if found {
		prompt = buildProfileContext(message, &profile)
	}

	agentCtx, cancel := context.WithTimeout(ctx, s.agentTimeout)
	defer cancel()
	reply, err := s.agent.Invoke(agentCtx, prompt, sessionID)
	if err != nil {
		return ChatOutput{}, newError(ErrorUpstream, "agent_error", err)
	}

	if err := s.history.Append(ctx, in.UserID, sessionID, domain.RoleAssistant, reply); err != nil {
		slog.Error("failed to save assistant turn", "userId", in.UserID, "sessionId", sessionID, "err", err)
	}

	return ChatOutput{
		Reply:     reply,
		SessionID: sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// resolveSession continues an existing session untouched or mints a new
// identifier for a fresh conversation.
func resolveSession(existing string) string {
	if id := strings.TrimSpace(existing); id != "" {
		return id
	}
	return newSessionID()
}

var newSessionID = func() string {
	return uuid.NewString()
}
