package jobs

import (
	"context"
	"time"
)

// Job — одна итерация фоновой задачи. Ошибка уходит в метрики, не наружу.
type Job func(ctx context.Context) error

// Runner гоняет фоновые задачи по расписанию, пока жив его контекст.
type Runner struct {
	ctx context.Context
}

func New(ctx context.Context) *Runner { return &Runner{ctx: ctx} }

// Every запускает fn сразу же и далее каждые interval. Первый запуск не ждёт
// тика: иначе db_ping полминуты не даёт сигнала после старта.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		r.run(name, fn)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

func (r *Runner) run(name string, fn Job) {
	start := time.Now()
	if err := fn(r.ctx); err != nil {
		jobErrors.WithLabelValues(name).Inc()
	}
	jobRuns.WithLabelValues(name).Inc()
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
