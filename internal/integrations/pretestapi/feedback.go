package pretestapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// FeedbackOptions возвращает виды видео-фидбека
func (c *Client) FeedbackOptions(ctx context.Context) ([]domain.FeedbackOption, error) {
	var options []domain.FeedbackOption
	if err := c.doJSON(ctx, http.MethodGet, "/feedback-options/", nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// FeedbackRequests возвращает заявки пользователя
func (c *Client) FeedbackRequests(ctx context.Context) ([]domain.FeedbackRequest, error) {
	var requests []domain.FeedbackRequest
	if err := c.doJSON(ctx, http.MethodGet, "/feedbacks/list/", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// FeedbackStatistics возвращает статистику заявок
func (c *Client) FeedbackStatistics(ctx context.Context) (*domain.FeedbackStatistics, error) {
	var stats domain.FeedbackStatistics
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/statistics/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateFeedback создает заявку; с файлом отправляется multipart/form-data, иначе JSON
func (c *Client) CreateFeedback(ctx context.Context, req CreateFeedbackRequest) (*domain.FeedbackRequest, error) {
	var created domain.FeedbackRequest

	if req.File == nil {
		if err := c.doJSON(ctx, http.MethodPost, "/feedbacks/create/", req, &created); err != nil {
			return nil, err
		}
		return &created, nil
	}

	httpReq, err := newMultipartFeedback(req)
	if err != nil {
		return nil, err
	}
	if err := c.send(ctx, httpReq, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func newMultipartFeedback(req CreateFeedbackRequest) (*request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"feedback_type", strconv.FormatInt(req.FeedbackType, 10)},
	}
	if req.RelatedBooking != nil {
		fields = append(fields, [2]string{"related_booking", strconv.FormatInt(*req.RelatedBooking, 10)})
	}
	if req.Writing != "" {
		fields = append(fields, [2]string{"writing", req.Writing})
	}

	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, fmt.Errorf("%w: failed to write form field %s: %v", ErrInternal, field[0], err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="uploaded_file"; filename=%q`, req.File.Filename))
	contentType := req.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create file part: %v", ErrInternal, err)
	}
	if _, err := part.Write(req.File.Content); err != nil {
		return nil, fmt.Errorf("%w: failed to write file part: %v", ErrInternal, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to close multipart writer: %v", ErrInternal, err)
	}

	return &request{
		method:      http.MethodPost,
		path:        "/feedbacks/create/",
		body:        buf.Bytes(),
		contentType: w.FormDataContentType(),
	}, nil
}
