package widget

import (
	"context"
	"strings"
	"sync"

	"github.com/iafluence/chatwidget/internal/domain"
	"go.uber.org/zap"
)

// view is what the pipeline needs from the UI. Methods are called with the
// widget lock held.
type view interface {
	InputValue() string
	ClearInput()
	AppendMessage(msg domain.Message)
	AddLoading() string
	RemoveLoading(id string)
}

// Pipeline runs turns: user message, loading placeholder, request, reply or apology.
// Turns may overlap; each owns its placeholder and completes independently.
type Pipeline struct {
	st        *state
	view      view
	transport Transport
	inflight  sync.WaitGroup
}

func newPipeline(st *state, v view, transport Transport) *Pipeline {
	return &Pipeline{st: st, view: v, transport: transport}
}

// Send starts a turn for raw. Blank input starts nothing and returns false.
func (p *Pipeline) Send(raw string) (*Turn, bool) {
	p.st.mu.Lock()
	turn, ok := p.beginLocked(raw)
	p.st.mu.Unlock()
	return p.start(turn, ok)
}

// Submit starts a turn from the current content of the input field.
func (p *Pipeline) Submit() (*Turn, bool) {
	p.st.mu.Lock()
	turn, ok := p.beginLocked(p.view.InputValue())
	p.st.mu.Unlock()
	return p.start(turn, ok)
}

// Wait blocks until every started turn has completed.
func (p *Pipeline) Wait() {
	p.inflight.Wait()
}

func (p *Pipeline) beginLocked(raw string) (*Turn, bool) {
	text := strings.TrimSpace(raw)
	if text == "" || p.st.destroyed {
		return nil, false
	}

	user := p.st.store.Append(domain.SenderUser, text)
	p.view.AppendMessage(user)
	p.view.ClearInput()
	loadingID := p.view.AddLoading()

	req := domain.ChatRequest{
		ClientID:            p.st.cfg.ClientID,
		SessionID:           p.st.sessionID,
		Message:             text,
		ConversationHistory: p.st.store.Snapshot(),
	}
	return newTurn(user, loadingID, req), true
}

func (p *Pipeline) start(turn *Turn, ok bool) (*Turn, bool) {
	if !ok {
		return nil, false
	}
	p.inflight.Add(1)
	go p.run(turn)
	return turn, true
}

func (p *Pipeline) run(turn *Turn) {
	defer p.inflight.Done()

	// No deadline and no cancellation: closing the panel or tearing the
	// widget down leaves the request running.
	reply, err := p.transport.Chat(context.Background(), turn.req)

	p.st.mu.Lock()
	p.view.RemoveLoading(turn.LoadingID)
	var msg domain.Message
	if err != nil {
		p.st.logger.Error("chat turn failed",
			zap.Error(err),
			zap.String("client_id", p.st.cfg.ClientID),
			zap.String("session_id", p.st.sessionID),
			zap.String("loading_id", turn.LoadingID),
		)
		msg = p.st.store.Append(domain.SenderBot, domain.ApologyMessage)
	} else {
		msg = p.st.store.Append(domain.SenderBot, reply)
	}
	p.view.AppendMessage(msg)
	p.st.mu.Unlock()

	turn.finish(TurnResult{User: turn.user, Reply: msg, Err: err})
}
