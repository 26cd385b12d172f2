package handlers

import (
	"net/http"

	"github.com/camden-git/articlesbackend/models"
	"github.com/camden-git/articlesbackend/repository"
)

const authorNotFound = "Author not found"

type AuthorHandler struct {
	Repo repository.AuthorRepository
}

func NewAuthorHandler(repo repository.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{Repo: repo}
}

// ListAuthors handles GET /api/authors
func (h *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Repo.ListAll()
	if err != nil {
		writeServiceError(w, r, authorNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toAuthorListResponse(authors))
}

// GetAuthor handles GET /api/authors/{id}
func (h *AuthorHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "author")
	if !ok {
		return
	}
	author, err := h.Repo.GetByID(id)
	if err != nil {
		writeServiceError(w, r, authorNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toAuthorResponse(author))
}

// CreateAuthor handles POST /api/authors
func (h *AuthorHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var payload AuthorPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeServiceError(w, r, authorNotFound, err)
		return
	}

	author := &models.Author{FirstName: *payload.FirstName, LastName: *payload.LastName}
	if err := h.Repo.Create(author); err != nil {
		writeServiceError(w, r, authorNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, toAuthorResponse(author))
}

// UpdateAuthor handles PUT /api/authors/{id}
func (h *AuthorHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "author")
	if !ok {
		return
	}
	author, err := h.Repo.GetByID(id)
	if err != nil {
		writeServiceError(w, r, authorNotFound, err)
		return
	}

	var payload AuthorPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeServiceError(w, r, authorNotFound, err)
		return
	}

	author.FirstName = *payload.FirstName
	author.LastName = *payload.LastName
	if err := h.Repo.Update(author); err != nil {
		writeServiceError(w, r, authorNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toAuthorResponse(author))
}

// DeleteAuthor handles DELETE /api/authors/{id}. Articles by the author are kept and lose their author.
func (h *AuthorHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "author")
	if !ok {
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeServiceError(w, r, authorNotFound, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
