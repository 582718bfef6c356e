package auth

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auth: invalid input data")

	// ErrNoAccount аккаунт с такими данными не найден или не активирован
	ErrNoAccount = errors.New("auth: no active account")

	// ErrInvalidCredentials бэкенд отклонил вход без пояснений
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrPhoneAlreadyRegistered номер телефона уже зарегистрирован
	ErrPhoneAlreadyRegistered = errors.New("auth: phone already registered")

	// ErrRejected бэкенд отказал, исходное сообщение доступно через pretestapi.MessageOf
	ErrRejected = errors.New("auth: request rejected")

	// ErrUpstream ошибка обращения к PreTest API (цепочка содержит исходную ошибку клиента)
	ErrUpstream = errors.New("auth: upstream error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("auth: internal error")
)
