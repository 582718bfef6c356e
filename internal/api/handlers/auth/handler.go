package auth

import (
	"errors"
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers"
	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	authUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/auth"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "проверьте правильность заполнения формы"
	msgInvalidPhone          = "некорректный номер телефона, ожидается +998 XX XXX XX XX"
	msgInvalidPassportSerial = "серия паспорта должна состоять из двух латинских букв"
	msgInvalidPassportNumber = "номер паспорта должен состоять из семи цифр"
	msgNoAccount             = "аккаунт не найден или не подтверждён"
	msgInvalidCredentials    = "неверный телефон или пароль"
	msgPhoneTaken            = "этот номер телефона уже зарегистрирован"
	msgRejected              = "запрос отклонён"
)

// Коды ошибок авторизации
const (
	CodeInvalidPhone          = "invalid_phone"
	CodeInvalidPassportSerial = "invalid_passport_serial"
	CodeInvalidPassportNumber = "invalid_passport_number"
	CodeNoAccount             = "no_account"
	CodeInvalidCredentials    = "invalid_credentials"
	CodePhoneTaken            = "phone_taken"
	CodeRejected              = "rejected"
)

type Handler struct {
	useCase AuthUseCase
	logger  Logger
}

func NewHandler(useCase AuthUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Register POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, "POST /auth/register", &req) {
		return
	}

	resp, err := h.useCase.Register(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.respondError(w, "POST /auth/register", err)
		return
	}

	h.logger.Info("POST /auth/register - Registration accepted, OTP sent: phone=%s", resp.PhoneNumber)
	handlers.RespondJSON(w, http.StatusCreated, PhoneResponse{PhoneNumber: resp.PhoneNumber})
}

// Verify POST /api/v1/auth/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	var req VerifyRequest
	if !h.decode(w, r, "POST /auth/verify", &req) {
		return
	}

	user, err := h.useCase.Verify(r.Context(), sess, req.PhoneNumber, req.Code)
	if err != nil {
		h.respondError(w, "POST /auth/verify", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromUser(user))
}

// ResendOTP POST /api/v1/auth/resend-otp
func (h *Handler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req PhoneRequest
	if !h.decode(w, r, "POST /auth/resend-otp", &req) {
		return
	}

	if err := h.useCase.ResendOTP(r.Context(), req.PhoneNumber); err != nil {
		h.respondError(w, "POST /auth/resend-otp", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Login POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	var req LoginRequest
	if !h.decode(w, r, "POST /auth/login", &req) {
		return
	}

	result, err := h.useCase.Login(r.Context(), sess, req.PhoneNumber, req.Password)
	if err != nil {
		h.respondError(w, "POST /auth/login", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		User:              FromUser(result.User),
		HasPendingBooking: result.HasPendingBooking,
	})
}

// Logout POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	if err := h.useCase.Logout(r.Context(), sess); err != nil {
		h.respondError(w, "POST /auth/logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me GET /api/v1/profile
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	user, err := h.useCase.Me(r.Context(), sess)
	if err != nil {
		h.respondError(w, "GET /profile", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromUser(user))
}

// UpdateProfile PUT /api/v1/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !h.decode(w, r, "PUT /profile", &req) {
		return
	}

	user, err := h.useCase.UpdateProfile(r.Context(), sess, &authUC.UpdateProfileRequest{
		FullName:       req.FullName,
		PassportSerial: req.PassportSerial,
		PassportNumber: req.PassportNumber,
	})
	if err != nil {
		h.respondError(w, "PUT /profile", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromUser(user))
}

// UpdatePassword PUT /api/v1/profile/password
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req UpdatePasswordRequest
	if !h.decode(w, r, "PUT /profile/password", &req) {
		return
	}

	if err := h.useCase.UpdatePassword(r.Context(), req.OldPassword, req.NewPassword); err != nil {
		h.respondError(w, "PUT /profile/password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequestPasswordReset POST /api/v1/auth/password-reset
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req PhoneRequest
	if !h.decode(w, r, "POST /auth/password-reset", &req) {
		return
	}

	phone, err := h.useCase.RequestPasswordReset(r.Context(), req.PhoneNumber)
	if err != nil {
		h.respondError(w, "POST /auth/password-reset", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, PhoneResponse{PhoneNumber: phone})
}

// ResetPassword POST /api/v1/auth/password-reset/confirm
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.decode(w, r, "POST /auth/password-reset/confirm", &req) {
		return
	}

	err := h.useCase.ResetPassword(r.Context(), &authUC.ResetPasswordRequest{
		PhoneNumber: req.PhoneNumber,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.respondError(w, "POST /auth/password-reset/confirm", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, op string, v interface{}) bool {
	if err := handlers.DecodeJSON(r, v); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPhone):
		handlers.RespondBadRequest(w, CodeInvalidPhone, msgInvalidPhone)

	case errors.Is(err, domain.ErrInvalidPassportSerial):
		handlers.RespondBadRequest(w, CodeInvalidPassportSerial, msgInvalidPassportSerial)

	case errors.Is(err, domain.ErrInvalidPassportNumber):
		handlers.RespondBadRequest(w, CodeInvalidPassportNumber, msgInvalidPassportNumber)

	case errors.Is(err, authUC.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidInput)

	case errors.Is(err, authUC.ErrNoAccount):
		h.logger.Warn("%s - No active account", op)
		handlers.RespondError(w, http.StatusUnauthorized, CodeNoAccount, msgNoAccount)

	case errors.Is(err, authUC.ErrInvalidCredentials):
		h.logger.Warn("%s - Invalid credentials", op)
		handlers.RespondError(w, http.StatusUnauthorized, CodeInvalidCredentials, msgInvalidCredentials)

	case errors.Is(err, authUC.ErrPhoneAlreadyRegistered):
		handlers.RespondConflict(w, CodePhoneTaken, msgPhoneTaken)

	case errors.Is(err, authUC.ErrRejected):
		h.logger.Warn("%s - Rejected by backend: %v", op, err)
		handlers.RespondBadRequest(w, CodeRejected, handlers.RejectionMessage(err, msgRejected))

	case errors.Is(err, authUC.ErrUpstream):
		h.logger.Error("%s - Upstream error: %v", op, err)
		handlers.RespondUpstream(w, err)

	default:
		h.logger.Error("%s - Internal error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
