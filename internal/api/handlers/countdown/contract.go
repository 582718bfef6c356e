package countdown

import (
	"context"

	countdownUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/countdown"
)

type CountdownUseCase interface {
	Snapshot(ctx context.Context) (*countdownUC.Snapshot, error)
	Run(ctx context.Context, emit func(countdownUC.Snapshot) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
