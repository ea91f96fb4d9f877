package notify

import (
	"context"
	"errors"
	"log/slog"
)

type Level string

const (
	LevelInfo     Level = "info"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// Event описывает всплывающее уведомление или алерт.
type Event struct {
	Level Level
	Title string
	Text  string
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Log пишет уведомления в лог.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log { return &Log{log: log} }

func (l *Log) Notify(_ context.Context, e Event) error {
	switch e.Level {
	case LevelError, LevelCritical:
		l.log.Warn(e.Title, "level", string(e.Level), "text", e.Text)
	default:
		l.log.Info(e.Title, "text", e.Text)
	}
	return nil
}

// Multi рассылает событие всем получателям и собирает ошибки.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
