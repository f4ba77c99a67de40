package router

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/wagateway/pkg/entities"
)

// Sender delivers one outbound message. Satisfied by the session manager so
// every reply goes through its connected-phase check.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// MessageStore persists the message history the router writes.
type MessageStore interface {
	CreateReceived(ctx context.Context, msg *entities.ReceivedMessage) error
	CreateSent(ctx context.Context, msg *entities.SentMessage) error
}

// RuleStore looks up auto-reply rules by their normalized keyword. A miss is
// (nil, nil), not an error.
type RuleStore interface {
	FindByKeyword(ctx context.Context, keyword string) (*entities.AutoReply, error)
}

// Router is the single consumer of inbound messages: persist, then optionally
// evaluate the auto-reply ruleset and answer through the sender. It runs
// inside the session dispatcher loop, so one message is fully handled before
// the next one starts.
type Router struct {
	sender   Sender
	messages MessageStore
	rules    RuleStore
	enabled  atomic.Bool
}

func New(sender Sender, messages MessageStore, rules RuleStore) *Router {
	return &Router{
		sender:   sender,
		messages: messages,
		rules:    rules,
	}
}

// Enabled reports whether the chatbot currently answers inbound messages.
func (r *Router) Enabled() bool {
	return r.enabled.Load()
}

// Toggle flips the chatbot switch and returns the new value.
func (r *Router) Toggle() bool {
	for {
		old := r.enabled.Load()
		if r.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// HandleInbound implements session.MessageHandler.
func (r *Router) HandleInbound(ctx context.Context, sender, body string, receivedAt time.Time) {
	if body == "" {
		// Media and other non-text payloads are filtered, not errors.
		return
	}

	inbound := &entities.ReceivedMessage{From: sender, Message: body, Timestamp: receivedAt}
	if err := r.messages.CreateReceived(ctx, inbound); err != nil {
		log.Printf("[error] failed to persist inbound message from %s: %v", sender, err)
		return
	}

	if !r.enabled.Load() {
		return
	}

	keyword := strings.ToLower(strings.TrimSpace(body))
	rule, err := r.rules.FindByKeyword(ctx, keyword)
	if err != nil {
		log.Printf("[error] auto-reply lookup failed for %q: %v", keyword, err)
		return
	}
	if rule == nil {
		return
	}

	if err := r.sender.Send(ctx, sender, rule.Reply); err != nil {
		// The reply is dropped; the inbound message is already durable.
		log.Printf("[warn] auto-reply to %s failed: %v", sender, err)
		return
	}

	outbound := &entities.SentMessage{To: sender, Message: rule.Reply, Timestamp: time.Now()}
	if err := r.messages.CreateSent(ctx, outbound); err != nil {
		log.Printf("[error] failed to persist auto-reply to %s: %v", sender, err)
	}
}
