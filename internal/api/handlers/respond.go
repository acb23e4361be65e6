package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/St1cky1/taskr-service/internal/entity"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeServiceError транслирует ошибки ядра в HTTP статусы:
// ошибки валидации - 400 с картой поле -> сообщения, not found - 404,
// no-op - 204 с пустым телом, занятая категория - 409
func writeServiceError(w http.ResponseWriter, err error) {
	var verrs *entity.ValidationError

	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, verrs.Fields)
	case errors.Is(err, entity.ErrNoChange):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, entity.ErrTaskNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrCategoryNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrCategoryInUse):
		writeDetail(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrEmailTaken):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrInvalidCredentials),
		errors.Is(err, entity.ErrUserInactive):
		writeDetail(w, http.StatusUnauthorized, err.Error())
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
