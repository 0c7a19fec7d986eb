package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"shootday/config"
	"shootday/models"
	"shootday/services/tasks"
	"shootday/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotifyWorker runs the async notification worker in background.
// It drains attendance-change tasks and POSTs them to the configured
// n8n webhook. Delivery is best-effort: a failed POST is logged and
// dropped, never retried against the already-persisted write.
func InitNotifyWorker() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAttendanceNotify, handleAttendanceNotify)

	go func() {
		logger := utils.GetLogger()
		logger.Info("notify worker starting")
		if err := srv.Run(mux); err != nil {
			logger.Error("notify worker stopped", zap.Error(err))
		}
	}()
}

func handleAttendanceNotify(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.AttendanceChangePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Warn("attendance notify task had invalid payload", zap.Error(err))
		return nil
	}

	webhook := config.AppConfig.NotifyWebhookURL
	if webhook == "" {
		logger.Debug("no notify webhook configured, dropping attendance change")
		return nil
	}

	body, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook, bytes.NewReader(body))
	if err != nil {
		logger.Warn("attendance notify request build failed", zap.Error(err))
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Warn("attendance notify webhook unreachable",
			zap.String("employee", p.Employee), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("attendance notify webhook rejected",
			zap.Int("status", resp.StatusCode), zap.String("employee", p.Employee))
	}
	return nil
}
