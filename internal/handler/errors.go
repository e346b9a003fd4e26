package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/norphel/odin-blogAPI/internal/apperrors"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteDomainError сопоставляет типизированные ошибки доменного слоя со статусами.
// Неожиданные ошибки логируются и наружу уходят без подробностей.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		WriteError(w, "Не найдено", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrUnauthorized):
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
	case errors.Is(err, apperrors.ErrForbidden):
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
	case errors.Is(err, apperrors.ErrConflict):
		WriteError(w, "Конфликт уникальных данных", http.StatusConflict)
	case errors.Is(err, apperrors.ErrUpstream):
		WriteError(w, "Ошибка внешнего сервиса", http.StatusBadGateway)
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

// writeValidationErrors переводит ошибки validator в список ошибок по полям.
func writeValidationErrors(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: fieldErrors})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Поле %s обязательно", fe.Field())
	case "email":
		return "Неверный формат email"
	case "min":
		return fmt.Sprintf("Поле %s должно содержать не менее %s символов", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Поле %s должно содержать не более %s символов", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Поле %s не прошло проверку %s", fe.Field(), fe.Tag())
	}
}
