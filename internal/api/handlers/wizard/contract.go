package wizard

import (
	"context"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	bookingWizard "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/booking_wizard"
)

type WizardUseCase interface {
	Open(ctx context.Context, sess bookingWizard.WizardSession) (*bookingWizard.View, error)
	SelectTest(ctx context.Context, sess bookingWizard.WizardSession, productID int64) (*bookingWizard.View, error)
	SelectSession(ctx context.Context, sess bookingWizard.WizardSession, sessionID int64) (*bookingWizard.View, error)
	Continue(ctx context.Context, sess bookingWizard.WizardSession) (*bookingWizard.View, error)
	Back(ctx context.Context, sess bookingWizard.WizardSession) (*bookingWizard.View, error)
	Close(ctx context.Context, sess bookingWizard.WizardSession) error
	ApplyPromocode(ctx context.Context, sess bookingWizard.WizardSession, code string) (*bookingWizard.View, error)
	ClearPromocode(ctx context.Context, sess bookingWizard.WizardSession) (*bookingWizard.View, error)
	Submit(ctx context.Context, sess bookingWizard.WizardSession, req *bookingWizard.SubmitRequest) (*bookingWizard.SubmitResult, error)
	SaveDraft(ctx context.Context, sess bookingWizard.WizardSession, req *bookingWizard.DraftRequest) (*domain.PendingBooking, error)
	PayPending(ctx context.Context, bookingID int64) (*bookingWizard.PayPendingResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
