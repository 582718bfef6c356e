package feedback

import (
	"fmt"
	"strings"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// buildCreateRequest проверяет заявку по виду фидбека
// Для speaking прикреплённые данные отбрасываются, бэкенду нужен только feedback_type
func buildCreateRequest(option domain.FeedbackOption, req *SubmitRequest) (*pretestapi.CreateFeedbackRequest, error) {
	out := &pretestapi.CreateFeedbackRequest{FeedbackType: option.ID}
	if option.Kind() == domain.FeedbackKindSpeaking {
		return out, nil
	}

	writing := strings.TrimSpace(req.Writing)
	provided := 0
	if writing != "" {
		provided++
	}
	if req.File != nil {
		if req.File.Filename == "" || len(req.File.Content) == 0 {
			return nil, fmt.Errorf("%w: uploaded file is empty", ErrInvalidInput)
		}
		provided++
	}
	if req.RelatedBooking != nil {
		if *req.RelatedBooking <= 0 {
			return nil, fmt.Errorf("%w: related booking must be positive", ErrInvalidInput)
		}
		provided++
	}

	switch provided {
	case 0:
		return nil, ErrSubmissionRequired
	case 1:
	default:
		return nil, fmt.Errorf("%w: choose one of text, file or test", ErrInvalidInput)
	}

	out.Writing = writing
	out.File = req.File
	out.RelatedBooking = req.RelatedBooking
	return out, nil
}
