package feedback

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("feedback: invalid input data")

	// ErrOptionNotFound вид фидбека не найден
	ErrOptionNotFound = errors.New("feedback: option not found")

	// ErrSubmissionRequired для writing нужен текст, файл или пройденный тест
	ErrSubmissionRequired = errors.New("feedback: writing submission is required")

	// ErrRequestNotFound заявка не найдена среди заявок пользователя
	ErrRequestNotFound = errors.New("feedback: request not found")

	// ErrAlreadyPaid заявка уже оплачена
	ErrAlreadyPaid = errors.New("feedback: request already paid")

	// ErrRedirectUnavailable платёжный шлюз не вернул ссылку на оплату
	ErrRedirectUnavailable = errors.New("feedback: payment redirect url is not available")

	// ErrRejected бэкенд отказал, исходное сообщение доступно через pretestapi.MessageOf
	ErrRejected = errors.New("feedback: request rejected")

	// ErrUpstream ошибка обращения к PreTest API (цепочка содержит исходную ошибку клиента)
	ErrUpstream = errors.New("feedback: upstream error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("feedback: internal error")
)
