package scheduler

import (
	"context"
	"fmt"

	"boekhoud_backend/internal/chat/draft"
	appevents "boekhoud_backend/internal/events"
	"boekhoud_backend/platform/config"
	"boekhoud_backend/platform/events"
	"boekhoud_backend/platform/logger"

	"github.com/hibiken/asynq"
)

const defaultConcurrency = 10

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	store  *draft.Store
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, store *draft.Store, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: defaultConcurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		store:  store,
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskDraftExpiry, w.handleDraftExpiry)

	return w, nil
}

// handleDraftExpiry cancels drafts whose TTL elapsed and announces each
// cancellation on the bus so the audit log records it.
func (w *Worker) handleDraftExpiry(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDraftExpiryPayload(task)
	if err != nil {
		return err
	}

	expired, err := w.store.ExpireStale(ctx)
	if err != nil {
		return err
	}

	for _, d := range expired {
		if w.bus != nil {
			w.bus.Publish(ctx, appevents.ChatDraftCancelled{
				BaseEvent: events.NewBaseEvent(),
				ChatContext: appevents.ChatContext{
					UserID:         d.UserID,
					TenantID:       d.TenantID,
					ConversationID: d.ConversationID,
					Intent:         string(d.Intent),
				},
				Expired: true,
			})
		}
	}

	if len(expired) > 0 {
		w.log.Info("draft expiry sweep cancelled drafts",
			"cancelled", len(expired),
			"triggeredAt", payload.TriggeredAt,
		)
	}
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
