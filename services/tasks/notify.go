package tasks

import (
	"encoding/json"

	"shootday/config"
	"shootday/models"

	"github.com/hibiken/asynq"
)

const TypeAttendanceNotify = "attendance:notify"

// NewAttendanceNotifyTask wraps an attendance change for the queue.
// MaxRetry(0) keeps the webhook strictly fire-and-forget: one delivery
// attempt, failure logged by the worker and dropped.
func NewAttendanceNotifyTask(payload models.AttendanceChangePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAttendanceNotify, b)
	opts := []asynq.Option{asynq.MaxRetry(0)}
	return task, opts, nil
}

// AsynqNotifier enqueues attendance-change notifications. It satisfies
// the attendance service's Notifier interface.
type AsynqNotifier struct {
	Client *asynq.Client
}

func NewAsynqNotifier() *AsynqNotifier {
	return &AsynqNotifier{
		Client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (n *AsynqNotifier) EnqueueAttendanceChange(payload models.AttendanceChangePayload) error {
	task, opts, err := NewAttendanceNotifyTask(payload)
	if err != nil {
		return err
	}
	_, err = n.Client.Enqueue(task, opts...)
	return err
}
