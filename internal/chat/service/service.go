// Package service routes classified messages: create intents go to the
// multi-step controller, everything else is answered statelessly.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"boekhoud_backend/internal/chat/draft"
	"boekhoud_backend/internal/chat/engine"
	"boekhoud_backend/internal/chat/extract"
	"boekhoud_backend/internal/chat/intent"
	"boekhoud_backend/internal/chat/knowledge"
	"boekhoud_backend/internal/chat/ports"
	"boekhoud_backend/platform/apperr"
	"boekhoud_backend/platform/logger"
)

// MessageInput is one inbound chat message with its caller identity.
type MessageInput struct {
	UserID    string
	TenantID  string
	UserEmail string
	RequestID string
	Message   string
}

// Service is the top-level entry point for chat messages.
type Service struct {
	store      *draft.Store
	controller *engine.Controller
	knowledge  *knowledge.Service
	documents  ports.DocumentSearcher
	log        *logger.Logger
}

func NewService(store *draft.Store, controller *engine.Controller, kb *knowledge.Service, documents ports.DocumentSearcher, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		controller: controller,
		knowledge:  kb,
		documents:  documents,
		log:        log,
	}
}

var createIntents = []intent.Intent{intent.CreateOfferte, intent.CreateFactuur, intent.CreateClient}

// HandleMessage classifies the message and routes it. A message that
// does not classify as a create intent still continues an active draft
// when the user has exactly one, so short answers to follow-up
// questions land in the right conversation.
func (s *Service) HandleMessage(ctx context.Context, in MessageInput) (engine.Reply, error) {
	result := intent.Classify(in.Message)
	s.log.ChatStep("classified", in.RequestID, string(result.Intent), "")

	if result.MultiStep {
		return s.controller.HandleMessage(ctx, s.inbound(in, result.Intent))
	}

	if it, ok := s.activeDraftIntent(ctx, in.UserID); ok {
		return s.controller.HandleMessage(ctx, s.inbound(in, it))
	}

	switch result.Intent {
	case intent.QueryVAT:
		return s.answerVAT(in)
	case intent.Query:
		return s.answerListing(ctx, in)
	default:
		return engine.Reply{
			Intent:  string(intent.Question),
			Message: s.knowledge.Answer(in.Message),
			Done:    true,
		}, nil
	}
}

// Cancel terminates the draft behind a conversation ID.
func (s *Service) Cancel(ctx context.Context, userID, requestID, conversationID string) (engine.Reply, error) {
	return s.controller.Cancel(ctx, userID, requestID, conversationID)
}

func (s *Service) inbound(in MessageInput, it intent.Intent) engine.Inbound {
	return engine.Inbound{
		UserID:    in.UserID,
		TenantID:  in.TenantID,
		UserEmail: in.UserEmail,
		RequestID: in.RequestID,
		Message:   in.Message,
		Intent:    it,
	}
}

// activeDraftIntent reports the intent of the user's single active
// draft. With zero or multiple active drafts there is no unambiguous
// continuation and the message is answered statelessly.
func (s *Service) activeDraftIntent(ctx context.Context, userID string) (intent.Intent, bool) {
	var found []intent.Intent
	for _, it := range createIntents {
		if _, err := s.store.Get(ctx, userID, it); err == nil {
			found = append(found, it)
		} else if !apperr.Is(err, apperr.KindNotFound) {
			s.log.Error("active draft lookup failed", "error", err)
			return "", false
		}
	}
	if len(found) == 1 {
		return found[0], true
	}
	return "", false
}

func (s *Service) answerVAT(in MessageInput) (engine.Reply, error) {
	amount, ok := extract.FirstDecimal(in.Message)
	if !ok {
		return engine.Reply{
			Intent:  string(intent.QueryVAT),
			Message: "Over welk bedrag wil je de btw weten? Bijvoorbeeld: hoeveel btw over 500.",
			Done:    true,
		}, nil
	}

	rate := extract.VATHigh
	if explicit, ok := extract.ExplicitVATRate(in.Message); ok {
		rate = explicit
	}
	ratePct := int64(21)
	switch rate {
	case extract.VATLow:
		ratePct = 9
	case extract.VATZero:
		ratePct = 0
	}

	amountCents := int64(math.Round(amount * 100))
	vatCents := int64(math.Round(float64(amountCents) * float64(ratePct) / 100))

	return engine.Reply{
		Intent: string(intent.QueryVAT),
		Message: fmt.Sprintf("Over %s is de btw (%d%%) %s; inclusief btw is dat %s.",
			euro(amountCents), ratePct, euro(vatCents), euro(amountCents+vatCents)),
		Done: true,
	}, nil
}

func (s *Service) answerListing(ctx context.Context, in MessageInput) (engine.Reply, error) {
	kind := ""
	text := strings.ToLower(in.Message)
	if strings.Contains(text, "offerte") {
		kind = ports.KindQuotation
	}

	summaries, err := s.documents.RecentDocuments(ctx, in.TenantID, kind, 10)
	if err != nil {
		return engine.Reply{}, err
	}
	if len(summaries) == 0 {
		return engine.Reply{
			Intent:  string(intent.Query),
			Message: "Ik heb nog geen documenten gevonden.",
			Done:    true,
		}, nil
	}

	var b strings.Builder
	b.WriteString("Dit zijn je meest recente documenten:\n")
	for _, doc := range summaries {
		fmt.Fprintf(&b, "- %s | %s | %s | %s\n",
			doc.Number, doc.ClientName, euro(doc.TotalCents), doc.IssueDate.Format("02-01-2006"))
	}

	return engine.Reply{
		Intent:  string(intent.Query),
		Message: strings.TrimRight(b.String(), "\n"),
		Done:    true,
	}, nil
}

func euro(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s€ %d,%02d", sign, cents/100, cents%100)
}

