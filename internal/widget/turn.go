package widget

import (
	"context"

	"github.com/iafluence/chatwidget/internal/domain"
)

// TurnResult is the outcome of one turn. On failure Reply holds the apology
// message shown to the user and Err the underlying cause.
type TurnResult struct {
	User  domain.Message
	Reply domain.Message
	Err   error
}

// Turn is an in-flight exchange started by Send.
type Turn struct {
	LoadingID string

	user   domain.Message
	req    domain.ChatRequest
	done   chan struct{}
	result TurnResult
}

func newTurn(user domain.Message, loadingID string, req domain.ChatRequest) *Turn {
	return &Turn{
		LoadingID: loadingID,
		user:      user,
		req:       req,
		done:      make(chan struct{}),
	}
}

// Request returns the payload posted for this turn.
func (t *Turn) Request() domain.ChatRequest {
	return t.req
}

// Done is closed once the reply or apology has been rendered.
func (t *Turn) Done() <-chan struct{} {
	return t.done
}

// Result blocks until the turn completes.
func (t *Turn) Result() TurnResult {
	<-t.done
	return t.result
}

// Wait is Result bounded by ctx.
func (t *Turn) Wait(ctx context.Context) (TurnResult, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return TurnResult{}, ctx.Err()
	}
}

func (t *Turn) finish(res TurnResult) {
	t.result = res
	close(t.done)
}
