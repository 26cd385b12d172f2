package handlers

import (
	"net/http"
	"strconv"

	"github.com/camden-git/articlesbackend/repository"
	"github.com/camden-git/articlesbackend/services"
)

const articleNotFound = "Article not found"

type ArticleHandler struct {
	Repo   repository.ArticleRepository
	Writer *services.ArticleWriter
}

func NewArticleHandler(repo repository.ArticleRepository, writer *services.ArticleWriter) *ArticleHandler {
	return &ArticleHandler{Repo: repo, Writer: writer}
}

// ListArticles handles GET /api/articles?author=<id>&region=<code>
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	filter := repository.ArticleFilter{RegionCode: r.URL.Query().Get("region")}
	if raw := r.URL.Query().Get("author"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			WriteFieldErrors(w, r, services.FieldErrors{"author": {"Not a valid integer."}})
			return
		}
		id := uint(authorID)
		filter.AuthorID = &id
	}

	articles, err := h.Repo.List(filter)
	if err != nil {
		writeServiceError(w, r, articleNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toArticleListResponse(articles))
}

// GetArticle handles GET /api/articles/{id}
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "article")
	if !ok {
		return
	}
	article, err := h.Repo.GetByID(id)
	if err != nil {
		writeServiceError(w, r, articleNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toArticleResponse(article))
}

// CreateArticle handles POST /api/articles. A body id naming an existing article updates it in place.
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var payload ArticlePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeServiceError(w, r, articleNotFound, err)
		return
	}

	article, _, err := h.Writer.Write(r.Context(), payload.toInput())
	if err != nil {
		writeServiceError(w, r, articleNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, toArticleResponse(article))
}

// UpdateArticle handles PUT /api/articles/{id}. The path id wins over any id in the body.
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "article")
	if !ok {
		return
	}
	if _, err := h.Repo.GetByID(id); err != nil {
		writeServiceError(w, r, articleNotFound, err)
		return
	}

	var payload ArticlePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeServiceError(w, r, articleNotFound, err)
		return
	}
	payload.ID = &id

	article, _, err := h.Writer.Write(r.Context(), payload.toInput())
	if err != nil {
		writeServiceError(w, r, articleNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toArticleResponse(article))
}

// DeleteArticle handles DELETE /api/articles/{id}. Its author and regions are left alone.
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "article")
	if !ok {
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeServiceError(w, r, articleNotFound, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
