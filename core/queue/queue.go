package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"work-exchange-api/core/config"
	"work-exchange-api/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer is what services depend on; tests substitute an in-memory one.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any) error
}

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(redisCfg config.RedisConfig, queueCfg config.QueueConfig) *Client {
	return &Client{
		client: asynq.NewClient(redisOpt(redisCfg)),
		queue:  queueCfg.Queue,
	}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	task := asynq.NewTask(taskType, body,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.Queue(c.queue),
	)
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	logger.Debug("Queue:Enqueue", "type", taskType, "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Worker wraps the asynq server and its mux. Modules register handlers on
// Mux before Start is called.
type Worker struct {
	server *asynq.Server
	Mux    *asynq.ServeMux
}

func NewWorker(redisCfg config.RedisConfig, queueCfg config.QueueConfig) *Worker {
	concurrency := queueCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	server := asynq.NewServer(redisOpt(redisCfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queueCfg.Queue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", "type", task.Type(), "error", err)
		}),
	})
	return &Worker{server: server, Mux: asynq.NewServeMux()}
}

func (w *Worker) Start() error {
	return w.server.Start(w.Mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// Decode unmarshals a task payload, marking malformed payloads as
// non-retryable.
func Decode(task *asynq.Task, dest any) error {
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		return fmt.Errorf("decode %s: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	return nil
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
