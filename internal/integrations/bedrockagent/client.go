// Package bedrockagent invokes a Bedrock agent and decodes its chunked
// streaming completion into a single reply string.
package bedrockagent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
)

// FallbackReply is returned when the agent streams an effectively empty
// completion. Clients always receive a non-empty reply on success.
const FallbackReply = "Sorry, I could not generate a response. Please try again."

// agentAPI is the minimal Bedrock Agent Runtime interface required by
// Client. *bedrockagentruntime.Client satisfies it.
type agentAPI interface {
	InvokeAgent(ctx context.Context, in *bedrockagentruntime.InvokeAgentInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.InvokeAgentOutput, error)
}

// Client wraps one configured agent (id + alias).
type Client struct {
	api     agentAPI
	agentID string
	aliasID string
}

// New creates a Client for the given agent id and alias id.
func New(api agentAPI, agentID, aliasID string) (*Client, error) {
	if api == nil {
		return nil, errors.New("bedrockagent: api must not be nil")
	}
	if strings.TrimSpace(agentID) == "" || strings.TrimSpace(aliasID) == "" {
		return nil, errors.New("bedrockagent: agent id and alias id must not be empty")
	}
	return &Client{api: api, agentID: agentID, aliasID: aliasID}, nil
}

// completionStream is a seam so tests can substitute a fake stream
// reader for the one the SDK attaches during deserialization.
var completionStream = func(out *bedrockagentruntime.InvokeAgentOutput) *bedrockagentruntime.InvokeAgentEventStream {
	return out.GetStream()
}

// Invoke sends message to the agent under the given session token and
// returns the concatenated completion. Transport and stream faults are
// propagated wrapped; the caller decides the user-facing message.
func (c *Client) Invoke(ctx context.Context, message, sessionID string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.New("bedrockagent: message must not be empty")
	}
	if strings.TrimSpace(sessionID) == "" {
		return "", errors.New("bedrockagent: session id must not be empty")
	}

	out, err := c.api.InvokeAgent(ctx, &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(c.agentID),
		AgentAliasId: aws.String(c.aliasID),
		SessionId:    aws.String(sessionID),
		InputText:    aws.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("bedrockagent: invoke agent: %w", err)
	}

	stream := completionStream(out)
	defer func() { _ = stream.Close() }()

	reply := decodeCompletion(stream.Events())
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("bedrockagent: completion stream: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		slog.Warn("empty completion from agent", "agentId", c.agentID)
		return FallbackReply, nil
	}
	return reply, nil
}

// decodeCompletion concatenates chunk payloads in delivery order. Bytes
// are joined before conversion so multibyte runes split across chunks
// survive. Trace and other non-chunk events carry no reply text.
func decodeCompletion(events <-chan types.ResponseStream) string {
	var buf []byte
	for ev := range events {
		switch v := ev.(type) {
		case *types.ResponseStreamMemberChunk:
			buf = append(buf, v.Value.Bytes...)
		case *types.ResponseStreamMemberTrace:
			slog.Debug("agent trace event")
		default:
			slog.Debug("ignoring completion event", "type", fmt.Sprintf("%T", ev))
		}
	}
	return string(buf)
}
