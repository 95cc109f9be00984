package tasks

import (
	"encoding/json"
	"time"

	"skillswap/models"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "reminder:session"

// ReminderScheduler schedules session reminders for later delivery.
type ReminderScheduler interface {
	ScheduleSessionReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// NewSessionReminderTask builds the asynq task for one reminder.
func NewSessionReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqScheduler implements ReminderScheduler on an asynq client.
type AsynqScheduler struct {
	Client *asynq.Client
}

func (s *AsynqScheduler) ScheduleSessionReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewSessionReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
