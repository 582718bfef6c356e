package feedback

import (
	"context"

	feedbackUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/feedback"
)

type FeedbackUseCase interface {
	Overview(ctx context.Context) (*feedbackUC.Overview, error)
	Submit(ctx context.Context, req *feedbackUC.SubmitRequest) (*feedbackUC.SubmitResult, error)
	PayPending(ctx context.Context, requestID int64) (*feedbackUC.PayResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
