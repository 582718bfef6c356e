package booking_wizard

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking_wizard: invalid input data")

	// ErrProductNotFound возвращается, когда теста нет в каталоге
	ErrProductNotFound = errors.New("booking_wizard: product not found")

	// ErrSessionFull бэкенд отказал: в сессии нет мест
	ErrSessionFull = errors.New("booking_wizard: session is full")

	// ErrAlreadyBooked бэкенд отказал: пользователь уже забронировал эту сессию
	ErrAlreadyBooked = errors.New("booking_wizard: session already booked")

	// ErrBookingRejected бэкенд отказал с сообщением, которое не удалось сопоставить
	// Исходное сообщение доступно через pretestapi.MessageOf
	ErrBookingRejected = errors.New("booking_wizard: booking rejected")

	// ErrBookingFailed бэкенд отказал без разбираемого сообщения
	ErrBookingFailed = errors.New("booking_wizard: booking failed")

	// ErrPromoCodeEmpty возвращается при пустом промокоде
	ErrPromoCodeEmpty = errors.New("booking_wizard: promocode is empty")

	// ErrPromoExpired срок действия промокода истёк
	ErrPromoExpired = errors.New("booking_wizard: promocode expired")

	// ErrPromoAlreadyUsed промокод уже использован пользователем
	ErrPromoAlreadyUsed = errors.New("booking_wizard: promocode already used")

	// ErrPromoMaxUsed исчерпан лимит использований промокода
	ErrPromoMaxUsed = errors.New("booking_wizard: promocode usage limit reached")

	// ErrPromoInvalid промокод недействителен
	ErrPromoInvalid = errors.New("booking_wizard: promocode is invalid")

	// ErrBookingNotFound бронирование не найдено среди будущих бронирований пользователя
	ErrBookingNotFound = errors.New("booking_wizard: booking not found")

	// ErrBookingNotPending бронирование уже оплачено, отменено или истекло
	ErrBookingNotPending = errors.New("booking_wizard: booking is not pending")

	// ErrPaymentIDMissing у бронирования нет связанного платежа
	ErrPaymentIDMissing = errors.New("booking_wizard: payment id is missing")

	// ErrRedirectUnavailable платёжный шлюз не вернул ссылку на оплату
	ErrRedirectUnavailable = errors.New("booking_wizard: payment redirect url is not available")

	// ErrUpstream ошибка обращения к PreTest API (цепочка содержит исходную ошибку клиента)
	ErrUpstream = errors.New("booking_wizard: upstream error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("booking_wizard: internal error")
)
