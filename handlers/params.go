package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// urlID parses the {id} route parameter, answering 400 itself when it is not a positive integer.
func urlID(w http.ResponseWriter, r *http.Request, entity string) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		WriteAPIError(w, r, http.StatusBadRequest, "Invalid "+entity+" ID format")
		return 0, false
	}
	return uint(id), true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
