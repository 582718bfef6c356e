package booking_wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// ApplyPromocode проверяет промокод для выбранной сессии и применяет скидку к цене
// При любой ошибке ранее применённый промокод снимается
func (uc *UseCase) ApplyPromocode(ctx context.Context, sess WizardSession, code string) (*View, error) {
	code = normalizePromoCode(code)
	if code == "" {
		return nil, ErrPromoCodeEmpty
	}

	state, err := uc.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := state.CanApplyPromo(); err != nil {
		uc.logger.Warn("ApplyPromocode: code=%s rejected at step=%s: %v", code, state.Step, err)
		return nil, err
	}

	uc.logger.Info("ApplyPromocode: code=%s, session=%d", code, state.Session.ID)

	validation, err := uc.client.ValidatePromocode(ctx, pretestapi.ValidatePromocodeRequest{
		Code:      code,
		SessionID: state.Session.ID,
	})
	if err != nil {
		promoErr := uc.promoError(code, err)
		state.ClearPromo()
		if saveErr := uc.saveState(ctx, sess, state); saveErr != nil {
			return nil, saveErr
		}
		return nil, promoErr
	}

	if validation.Code == "" {
		validation.Code = code
	}

	if err := state.ApplyPromo(*validation); err != nil {
		uc.logger.Warn("ApplyPromocode: code=%s is not valid: %v", code, err)
		state.ClearPromo()
		if saveErr := uc.saveState(ctx, sess, state); saveErr != nil {
			return nil, saveErr
		}
		if errors.Is(err, domain.ErrPromoCodeNotUsable) {
			return nil, ErrPromoInvalid
		}
		return nil, err
	}

	if err := uc.saveState(ctx, sess, state); err != nil {
		return nil, err
	}

	uc.logger.Info("ApplyPromocode: code=%s applied, final price=%s", code, state.DisplayPrice().StringFixed(2))
	return uc.view(ctx, state)
}

// ClearPromocode снимает промокод, цена возвращается к цене теста
func (uc *UseCase) ClearPromocode(ctx context.Context, sess WizardSession) (*View, error) {
	state, err := uc.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}

	state.ClearPromo()

	if err := uc.saveState(ctx, sess, state); err != nil {
		return nil, err
	}
	return uc.view(ctx, state)
}

func (uc *UseCase) promoError(code string, err error) error {
	if errors.Is(err, pretestapi.ErrNetwork) || errors.Is(err, pretestapi.ErrSessionExpired) {
		uc.logger.Error("ApplyPromocode: failed to validate code=%s: %v", code, err)
		return upstreamError("validate promocode", err)
	}

	if _, ok := pretestapi.AsAPIError(err); ok {
		classified := classifyPromoMessage(pretestapi.MessageOf(err))
		uc.logger.Warn("ApplyPromocode: code=%s rejected: %v", code, err)
		return fmt.Errorf("%w: %w", classified, err)
	}

	uc.logger.Error("ApplyPromocode: failed to validate code=%s: %v", code, err)
	return fmt.Errorf("%w: failed to validate promocode: %v", ErrInternal, err)
}
