package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"bitebook/relay-svc/internal/domain"
	"bitebook/relay-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	OTP    service.OTPServiceInterface
	Email  service.EmailServiceInterface
	Logger *zap.Logger
}

func NewHandler(otp service.OTPServiceInterface, email service.EmailServiceInterface, logger *zap.Logger) *Handler {
	return &Handler{OTP: otp, Email: email, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/sms/send-otp", h.sendOTP).Methods("POST")
	r.HandleFunc("/api/sms/verify-otp", h.verifyOTP).Methods("POST")
	// Method is checked in the handler so other verbs get a JSON 405.
	r.HandleFunc("/api/send-email", h.sendEmail)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeOTP(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, domain.OTPResponse{
		Success: status < 400,
		Message: message,
		Data:    data,
	})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOTP(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	sent, err := h.OTP.Send(r.Context(), req)
	if err != nil {
		var cooldown *domain.CooldownError
		switch {
		case errors.Is(err, domain.ErrInvalidPhone):
			writeOTP(w, http.StatusBadRequest, "Please enter a valid 10-digit mobile number", nil)
		case errors.As(err, &cooldown):
			seconds := int(math.Ceil(cooldown.Remaining.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeOTP(w, http.StatusTooManyRequests, "Please wait before requesting another OTP",
				map[string]int{"retryAfter": seconds})
		case errors.Is(err, domain.ErrProvider):
			writeOTP(w, http.StatusBadGateway, "Could not send OTP, please try again", nil)
		default:
			h.Logger.Error("send otp failed", zap.Error(err))
			writeOTP(w, http.StatusInternalServerError, "Internal server error", nil)
		}
		return
	}

	writeOTP(w, http.StatusOK, "OTP sent successfully", sent)
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOTP(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	session, err := h.OTP.Verify(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPhone):
			writeOTP(w, http.StatusBadRequest, "Please enter a valid 10-digit mobile number", nil)
		case errors.Is(err, domain.ErrInvalidOTP):
			writeOTP(w, http.StatusBadRequest, "Please enter the 6-digit OTP", nil)
		case errors.Is(err, domain.ErrOTPRejected):
			writeOTP(w, http.StatusUnauthorized, "Invalid or expired OTP", nil)
		case errors.Is(err, domain.ErrProvider):
			writeOTP(w, http.StatusBadGateway, "Could not verify OTP, please try again", nil)
		default:
			h.Logger.Error("verify otp failed", zap.Error(err))
			writeOTP(w, http.StatusInternalServerError, "Internal server error", nil)
		}
		return
	}

	writeOTP(w, http.StatusOK, "Phone number verified", session)
}

func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, domain.EmailResponse{Error: "Method not allowed"})
		return
	}

	var req domain.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.EmailResponse{Error: "Invalid request body"})
		return
	}

	if err := h.Email.Send(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidEmail):
			writeJSON(w, http.StatusBadRequest, domain.EmailResponse{Error: err.Error()})
		default:
			h.Logger.Error("send email failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, domain.EmailResponse{Error: "Failed to send email"})
		}
		return
	}

	writeJSON(w, http.StatusOK, domain.EmailResponse{OK: true})
}
