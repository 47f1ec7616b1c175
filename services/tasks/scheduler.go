package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"superclinic/config"
	"superclinic/utils"
)

// Scheduler enqueues reminder tasks onto the redis-backed queue.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler connects an asynq client using the configured redis instance.
func NewScheduler() *Scheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &Scheduler{client: client}
}

// ScheduleReminder enqueues an appointment reminder to run at fireAt.
func (s *Scheduler) ScheduleReminder(ctx context.Context, payload ReminderPayload, fireAt time.Time) error {
	task, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	utils.GetLogger().Info("Scheduled appointment reminder",
		zap.String("taskId", info.ID),
		zap.String("bookingId", payload.BookingID),
		zap.Time("fireAt", fireAt))
	return nil
}

// Close releases the underlying asynq client.
func (s *Scheduler) Close() error {
	return s.client.Close()
}
