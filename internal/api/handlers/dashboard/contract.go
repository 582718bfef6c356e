package dashboard

import (
	"context"

	dashboardUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/dashboard"
)

type DashboardUseCase interface {
	Execute(ctx context.Context) (*dashboardUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
