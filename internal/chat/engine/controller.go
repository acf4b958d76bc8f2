package engine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	appevents "boekhoud_backend/internal/events"

	"boekhoud_backend/internal/chat/draft"
	"boekhoud_backend/internal/chat/extract"
	"boekhoud_backend/internal/chat/intent"
	"boekhoud_backend/platform/apperr"
	"boekhoud_backend/platform/events"
	"boekhoud_backend/platform/logger"
)

// Inbound is one user message routed to the multi-step controller.
type Inbound struct {
	UserID    string
	TenantID  string
	UserEmail string
	RequestID string
	Message   string
	Intent    intent.Intent
}

// RecordRef points at a record created by a confirmed draft.
type RecordRef struct {
	ID     string `json:"id"`
	Number string `json:"number,omitempty"`
	Kind   string `json:"kind"`
}

// Reply is the controller's answer to one message.
type Reply struct {
	ConversationID string     `json:"conversationId"`
	Intent         string     `json:"intent"`
	Status         string     `json:"status"`
	Message        string     `json:"message"`
	Done           bool       `json:"done"`
	Record         *RecordRef `json:"record,omitempty"`
}

// Controller drives the multi-turn drafting conversation: it loads or
// starts the draft for (user, intent), merges newly extracted fields,
// and either asks the next question, shows a preview, or executes a
// confirmed draft. A draft is executed successfully at most once; after
// that its active slot is freed.
type Controller struct {
	store    *draft.Store
	executor *Executor
	catalog  *Catalog
	bus      events.Bus
	log      *logger.Logger
	now      func() time.Time
}

func NewController(store *draft.Store, executor *Executor, catalog *Catalog, bus events.Bus, log *logger.Logger) *Controller {
	return &Controller{
		store:    store,
		executor: executor,
		catalog:  catalog,
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
}

// HandleMessage runs one turn of the conversation.
func (c *Controller) HandleMessage(ctx context.Context, in Inbound) (Reply, error) {
	d, err := c.store.Get(ctx, in.UserID, in.Intent)
	fresh := false
	switch {
	case apperr.Is(err, apperr.KindNotFound):
		d = draft.New(in.UserID, in.TenantID, in.Intent, c.now())
		fresh = true
	case err != nil:
		return Reply{}, err
	}

	if isCancellation(in.Message) {
		return c.cancel(ctx, d, in, fresh)
	}

	if !fresh && d.Status == draft.StatusPreviewing {
		if isConfirmation(in.Message) {
			return c.execute(ctx, d, in)
		}
		if isRejection(in.Message) {
			return c.cancel(ctx, d, in, false)
		}
	}

	update := extractUpdate(in.Intent, in.Message, c.now())
	d.Merge(update, c.now())
	c.publish(ctx, appevents.ChatDraftUpdated{
		BaseEvent:   events.NewBaseEvent(),
		ChatContext: c.chatContext(d, in),
		Status:      string(d.Status),
	})

	v := Validate(d)
	if !v.OK() {
		return c.ask(ctx, d, in, v)
	}

	d.Status = draft.StatusPreviewing
	if err := c.store.Save(ctx, d); err != nil {
		return Reply{}, err
	}
	c.log.ChatStep("preview", in.RequestID, string(d.Intent), d.ConversationID)

	return Reply{
		ConversationID: d.ConversationID,
		Intent:         string(d.Intent),
		Status:         string(d.Status),
		Message:        preview(d),
	}, nil
}

// Cancel terminates the draft behind a conversation ID, for the
// explicit cancel endpoint.
func (c *Controller) Cancel(ctx context.Context, userID, requestID, conversationID string) (Reply, error) {
	d, err := c.store.GetByConversation(ctx, conversationID)
	if err != nil {
		return Reply{}, err
	}
	if d.UserID != userID {
		return Reply{}, apperr.NotFound("draft not found")
	}
	if d.Status.Terminal() {
		return Reply{
			ConversationID: d.ConversationID,
			Intent:         string(d.Intent),
			Status:         string(d.Status),
			Message:        "Deze aanvraag is al afgerond.",
			Done:           true,
		}, nil
	}

	in := Inbound{UserID: d.UserID, TenantID: d.TenantID, RequestID: requestID, Intent: d.Intent}
	return c.cancel(ctx, d, in, false)
}

func (c *Controller) cancel(ctx context.Context, d *draft.Draft, in Inbound, fresh bool) (Reply, error) {
	if fresh {
		return Reply{
			Intent:  string(in.Intent),
			Status:  string(draft.StatusCancelled),
			Message: "Er staat geen aanvraag open om te annuleren.",
			Done:    true,
		}, nil
	}

	if err := c.store.Finish(ctx, d, draft.StatusCancelled); err != nil {
		return Reply{}, err
	}
	c.publish(ctx, appevents.ChatDraftCancelled{
		BaseEvent:   events.NewBaseEvent(),
		ChatContext: c.chatContext(d, in),
	})
	c.log.ChatStep("cancelled", in.RequestID, string(d.Intent), d.ConversationID)

	return Reply{
		ConversationID: d.ConversationID,
		Intent:         string(d.Intent),
		Status:         string(d.Status),
		Message:        "Oké, ik heb de aanvraag geannuleerd.",
		Done:           true,
	}, nil
}

func (c *Controller) ask(ctx context.Context, d *draft.Draft, in Inbound, v Validation) (Reply, error) {
	d.Status = draft.StatusCollecting
	if err := c.store.Save(ctx, d); err != nil {
		return Reply{}, err
	}

	field, question := c.catalog.Next(d.Intent, v)

	invalidFields := make([]string, len(v.Invalid))
	for i, issue := range v.Invalid {
		invalidFields[i] = issue.Field
	}
	c.publish(ctx, appevents.ChatValidationFailed{
		BaseEvent:     events.NewBaseEvent(),
		ChatContext:   c.chatContext(d, in),
		MissingFields: v.Missing,
		InvalidFields: invalidFields,
		AskedField:    field,
	})
	c.log.ChatStep("question", in.RequestID, string(d.Intent), d.ConversationID)

	return Reply{
		ConversationID: d.ConversationID,
		Intent:         string(d.Intent),
		Status:         string(d.Status),
		Message:        question,
	}, nil
}

func (c *Controller) execute(ctx context.Context, d *draft.Draft, in Inbound) (Reply, error) {
	c.publish(ctx, appevents.ChatCreateStarted{
		BaseEvent:   events.NewBaseEvent(),
		ChatContext: c.chatContext(d, in),
	})
	c.log.ChatStep("execute", in.RequestID, string(d.Intent), d.ConversationID)

	res, err := c.executor.Execute(ctx, d)
	if err != nil {
		c.log.Error("draft execution failed", "error", err, "conversation_id", d.ConversationID)
		c.publish(ctx, appevents.ChatCreateFailed{
			BaseEvent:   events.NewBaseEvent(),
			ChatContext: c.chatContext(d, in),
			Reason:      err.Error(),
		})
		if saveErr := c.store.Save(ctx, d); saveErr != nil {
			return Reply{}, saveErr
		}
		return Reply{
			ConversationID: d.ConversationID,
			Intent:         string(d.Intent),
			Status:         string(d.Status),
			Message:        "Het aanmaken is helaas niet gelukt. Probeer het zo nog eens met 'ja'.",
		}, nil
	}

	if res.NeedsClientCreation {
		d.PendingClientCreation = true
		if err := c.store.Save(ctx, d); err != nil {
			return Reply{}, err
		}
		return Reply{
			ConversationID: d.ConversationID,
			Intent:         string(d.Intent),
			Status:         string(d.Status),
			Message:        res.Message,
		}, nil
	}

	if err := c.store.Finish(ctx, d, draft.StatusConfirmed); err != nil {
		return Reply{}, err
	}
	c.publish(ctx, appevents.ChatCreateSucceeded{
		BaseEvent:    events.NewBaseEvent(),
		ChatContext:  c.chatContext(d, in),
		RecordID:     res.RecordID,
		RecordNumber: res.RecordNumber,
		RecordKind:   res.RecordKind,
		ClientName:   res.ClientName,
		TotalCents:   res.TotalCents,
		UserEmail:    in.UserEmail,
	})
	c.log.ChatStep("confirmed", in.RequestID, string(d.Intent), d.ConversationID)

	return Reply{
		ConversationID: d.ConversationID,
		Intent:         string(d.Intent),
		Status:         string(d.Status),
		Message:        res.Message,
		Done:           true,
		Record: &RecordRef{
			ID:     res.RecordID,
			Number: res.RecordNumber,
			Kind:   res.RecordKind,
		},
	}, nil
}

func (c *Controller) chatContext(d *draft.Draft, in Inbound) appevents.ChatContext {
	return appevents.ChatContext{
		RequestID:      in.RequestID,
		UserID:         d.UserID,
		TenantID:       d.TenantID,
		ConversationID: d.ConversationID,
		Intent:         string(d.Intent),
	}
}

func (c *Controller) publish(ctx context.Context, event events.Event) {
	if c.bus != nil {
		c.bus.Publish(ctx, event)
	}
}

// extractUpdate builds a field update from one message. The merge keeps
// earlier answers, so over-extraction here is harmless for filled
// fields.
func extractUpdate(it intent.Intent, message string, now time.Time) *draft.Draft {
	update := &draft.Draft{}

	bareAnswer := intent.Classify(message).Intent == intent.Question &&
		!isConfirmation(message) && !isRejection(message)

	if it == intent.CreateClient {
		fields := &draft.ClientFields{}
		if name, ok := extract.ClientName(message); ok {
			fields.Name = name
		} else if bareAnswer && extract.LooksLikeBareName(message) {
			fields.Name = strings.TrimSpace(message)
		}
		if email, ok := extract.Email(message); ok {
			fields.Email = email
		}
		if phone, ok := extract.Phone(message); ok {
			fields.Phone = phone
		}
		if code, ok := extract.PostalCode(message); ok {
			fields.PostalCode = code
		}
		if kvk, ok := extract.KvkNumber(message); ok {
			fields.KvkNumber = kvk
		}
		if btwID, ok := extract.BtwID(message); ok {
			fields.BtwID = btwID
		}
		update.Client = fields
		return update
	}

	fields := &draft.DocumentFields{}
	if name, ok := extract.ClientName(message); ok {
		fields.ClientName = name
	} else if bareAnswer && extract.LooksLikeBareName(message) {
		fields.ClientName = strings.TrimSpace(message)
	}

	fields.Items = extract.LineItems(message)
	if len(fields.Items) == 0 {
		if amount, ok := extract.Amount(message); ok {
			fields.Amount = &amount
		} else if amount, ok := extract.Decimal(strings.TrimSpace(message)); ok {
			// A bare numeric reply answers the amount question.
			fields.Amount = &amount
		}
	}

	if rate, ok := extract.ExplicitVATRate(message); ok {
		fields.VATRate = rate
	}
	if date, ok := extract.DateIn(message, now); ok {
		fields.IssueDate = &date
	}
	if days, ok := extract.DayCount(message); ok {
		if it == intent.CreateOfferte {
			fields.ValidForDays = &days
		} else {
			fields.DueInDays = &days
		}
	}

	update.Document = fields
	return update
}

func preview(d *draft.Draft) string {
	if d.Intent == intent.CreateClient {
		return previewClient(d.Client)
	}
	return previewDocument(d)
}

func previewClient(c *draft.ClientFields) string {
	var b strings.Builder
	b.WriteString("Ik heb de volgende klant klaarstaan:\n")
	b.WriteString("- Naam: " + c.Name + "\n")
	if c.Email != "" {
		b.WriteString("- E-mail: " + c.Email + "\n")
	}
	if c.Phone != "" {
		b.WriteString("- Telefoon: " + c.Phone + "\n")
	}
	if c.PostalCode != "" {
		b.WriteString("- Postcode: " + c.PostalCode + "\n")
	}
	if c.KvkNumber != "" {
		b.WriteString("- KvK: " + c.KvkNumber + "\n")
	}
	b.WriteString("Zal ik de klant aanmaken? (ja/nee)")
	return b.String()
}

func previewDocument(d *draft.Draft) string {
	doc := d.Document
	noun := "factuur"
	if d.Intent == intent.CreateOfferte {
		noun = "offerte"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ik heb de volgende %s klaarstaan voor %s:\n", noun, doc.ClientName)
	for _, item := range doc.Items {
		fmt.Fprintf(&b, "- %s x %s à %s (btw %s%%)\n",
			formatQuantity(item.Quantity), item.Description, euro(toCents(item.Price)), item.VATRate)
	}
	if len(doc.Items) == 0 && doc.Amount != nil {
		rate := doc.VATRate
		if rate == "" {
			rate = extract.VATHigh
		}
		fmt.Fprintf(&b, "- Totaalbedrag %s (btw %s%%)\n", euro(toCents(*doc.Amount)), rate)
	}
	subtotal, vat, total := draftTotals(doc)
	fmt.Fprintf(&b, "Subtotaal %s, btw %s, totaal %s.\n", euro(subtotal), euro(vat), euro(total))
	b.WriteString("Klopt dit? (ja/nee)")
	return b.String()
}

// draftTotals computes the preview totals with the same cents math the
// documents module uses: line subtotals rounded to whole cents first,
// VAT per rate over the summed base.
func draftTotals(doc *draft.DocumentFields) (subtotal, vat, total int64) {
	basePerRate := make(map[string]int64)
	for _, item := range doc.Items {
		lineCents := toCents(item.Quantity * item.Price)
		subtotal += lineCents
		basePerRate[item.VATRate] += lineCents
	}
	if len(doc.Items) == 0 && doc.Amount != nil {
		rate := doc.VATRate
		if rate == "" {
			rate = extract.VATHigh
		}
		amountCents := toCents(*doc.Amount)
		subtotal += amountCents
		basePerRate[rate] += amountCents
	}

	for rate, base := range basePerRate {
		pct, err := strconv.Atoi(rate)
		if err != nil {
			pct = 21
		}
		vat += int64(math.Round(float64(base) * float64(pct) / 100))
	}

	return subtotal, vat, subtotal + vat
}

func formatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return fmt.Sprintf("%d", int64(q))
	}
	return strings.ReplaceAll(fmt.Sprintf("%.2f", q), ".", ",")
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

var cancellationPhrases = []string{"annuleer", "annuleren", "cancel", "laat maar", "vergeet het", "toch niet"}

func isCancellation(message string) bool {
	text := strings.ToLower(message)
	for _, phrase := range cancellationPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

var confirmations = map[string]bool{
	"ja": true, "ja graag": true, "ja doe maar": true, "yes": true,
	"klopt": true, "akkoord": true, "prima": true, "ok": true,
	"oké": true, "okay": true, "doe maar": true, "graag": true,
}

func isConfirmation(message string) bool {
	return confirmations[normalizeAnswer(message)]
}

func isRejection(message string) bool {
	answer := normalizeAnswer(message)
	return answer == "nee" || answer == "no" || strings.HasPrefix(answer, "nee ")
}

func normalizeAnswer(message string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(message)), ".,!?")
}
