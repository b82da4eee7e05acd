package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Task - периодическая фоновая задача.
type Task interface {
	// TTL - интервал между запусками.
	TTL() time.Duration
	Do(context.Context) error
	// Info - имя задачи для логов и метрик.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

// Worker запускает набор фоновых задач до отмены контекста.
type Worker struct {
	log   handlerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New сначала выполняет каждую задачу один раз синхронно: ошибка или паника
// на этом шаге возвращается вызывающему, и Worker не создается. Затем задачи
// запускаются по тикеру до отмены ctx.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			log.Info("Initializing", logger.NewField("task", task.Info()))
			if err := worker.run(initCtx, task); err != nil {
				return fmt.Errorf("task %s: %w", task.Info(), err)
			}
			return nil
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.runBackgroundTask(ctx, task)
		}()
	}

	return worker, nil
}

// Wait блокирует, пока все задачи не остановятся после отмены ctx.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, skipping periodic execution",
			logger.NewField("task", task.Info()),
			logger.NewField("TTL", ttl),
		)
		return
	}
	w.log.Info("Starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("TTL", ttl),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping task (context cancelled)", logger.NewField("task", task.Info()))
			return
		case <-ticker.C:
			if err := w.run(ctx, task); err != nil {
				w.log.Error("Background task failed",
					logger.NewField("task", task.Info()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

// run выполняет задачу один раз, превращая панику в ошибку.
func (w *Worker) run(ctx context.Context, task Task) (err error) {
	start := time.Now()
	result := "ok"

	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
			err = fmt.Errorf("panic: %v", r)
			result = "panic"
		}
		taskRunsTotal.WithLabelValues(task.Info(), result).Inc()
		taskDuration.WithLabelValues(task.Info()).Observe(time.Since(start).Seconds())
	}()

	if err := task.Do(ctx); err != nil {
		result = "error"
		return err
	}
	return nil
}
