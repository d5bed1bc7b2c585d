package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// ReminderInput is the input for the event reminder workflow.
type ReminderInput struct {
	EventID   string
	Title     string
	EventDate time.Time
	// LeadTime is how long before the event the reminder fires.
	// Zero means the default of one hour.
	LeadTime time.Duration
}

// EventReminderWorkflow sleeps until shortly before an event starts, then
// publishes a reminder for every traveler who marked interest. Events that
// were deleted or already started are skipped silently.
func EventReminderWorkflow(ctx workflow.Context, input ReminderInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting reminder workflow", "eventID", input.EventID, "eventDate", input.EventDate)

	lead := input.LeadTime
	if lead <= 0 {
		lead = time.Hour
	}

	fireAt := input.EventDate.Add(-lead)
	if delay := fireAt.Sub(workflow.Now(ctx)); delay > 0 {
		if err := workflow.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: confirm the event still exists and is still upcoming
	var stillOn bool
	if err := workflow.ExecuteActivity(ctx, "CheckEventUpcoming", input.EventID).Get(ctx, &stillOn); err != nil {
		return err
	}
	if !stillOn {
		logger.Info("event gone or already started, skipping reminder", "eventID", input.EventID)
		return nil
	}

	// Step 2: publish the reminder to the bus
	if err := workflow.ExecuteActivity(ctx, "PublishReminder", input.EventID).Get(ctx, nil); err != nil {
		return err
	}

	logger.Info("Reminder published", "eventID", input.EventID)
	return nil
}
