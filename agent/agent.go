package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
)

var _ adk.Agent = (*Agent)(nil)

// Agent exposes the engine as an adk.Agent. The session key and form are
// read from the run context (WithSessionKey, WithFormID); only the last
// input message is used because the session already holds the history.
type Agent struct {
	name        string
	description string
	engine      *Engine
}

func NewAgent(name, description string, engine *Engine) *Agent {
	return &Agent{
		name:        name,
		description: description,
		engine:      engine,
	}
}

func (a *Agent) Name(ctx context.Context) string {
	return a.name
}

func (a *Agent) Description(ctx context.Context) string {
	return a.description
}

func (a *Agent) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			e := recover()
			if e != nil {
				gen.Send(&adk.AgentEvent{
					Err: fmt.Errorf("recover from panic: %v", e),
				})
			}
			gen.Close()
		}()
		if input == nil || len(input.Messages) == 0 {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("no messages in input"),
			})
			return
		}
		formID, _ := FormIDFromContext(ctx)
		result, err := a.engine.HandleTurn(ctx, sessionKeyOrDefault(ctx), formID, input.Messages[len(input.Messages)-1].Content)
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("turn failed: %w", err),
			})
			return
		}
		gen.Send(&adk.AgentEvent{
			AgentName: a.name,
			Output: &adk.AgentOutput{
				MessageOutput: &adk.MessageVariant{
					IsStreaming: false,
					Message: &schema.Message{
						Role:    schema.Assistant,
						Content: result.Reply,
					},
					Role: schema.Assistant,
				},
				CustomizedOutput: result,
			},
		})
	}()
	return iter
}
