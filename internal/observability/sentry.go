package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry включает отправку ошибок, если задан DSN. Пустой DSN — штатный
// режим без Sentry, возвращается no-op flush.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          release,
		AttachStacktrace: true,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr шлёт ошибку в Sentry; nil и работа без DSN — no-op.
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}
