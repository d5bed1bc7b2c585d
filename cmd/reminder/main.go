package main

import (
	"context"
	"log"
	"log/slog"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/smartstay/navigator/internal/adapters/nats"
	"github.com/smartstay/navigator/internal/adapters/postgres"
	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/pkg/config"
	"github.com/smartstay/navigator/internal/pkg/logging"
	"github.com/smartstay/navigator/internal/workflows"
)

func main() {
	cfg, err := config.Load("smartstay-reminder")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup("smartstay-reminder", cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer pub.Close()

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.EventReminderWorkflow)
	w.RegisterActivity(&workflows.ReminderActivities{
		Events:    postgres.NewEventRepo(db),
		Publisher: pub,
	})

	// Start one reminder workflow per freshly created event. The workflow ID
	// is derived from the event ID so redeliveries are deduplicated.
	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	err = sub.SubscribeEventCreated(ctx, func(ctx context.Context, event *domain.Event) error {
		_, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
			ID:                    "reminder-" + event.ID,
			TaskQueue:             cfg.Temporal.TaskQueue,
			WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		}, workflows.EventReminderWorkflow, workflows.ReminderInput{
			EventID:   event.ID,
			Title:     event.Title,
			EventDate: event.Date,
		})
		if err != nil {
			slog.Warn("start reminder workflow", "event_id", event.ID, "error", err)
		}
		// Duplicate starts are expected on redelivery; ack regardless.
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe event created: %v", err)
	}

	slog.Info("reminder worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
