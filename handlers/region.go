package handlers

import (
	"net/http"

	"github.com/camden-git/articlesbackend/database"
	"github.com/camden-git/articlesbackend/models"
	"github.com/camden-git/articlesbackend/repository"
	"github.com/camden-git/articlesbackend/services"
)

const regionNotFound = "Region not found"

type RegionHandler struct {
	Repo repository.RegionRepository
}

func NewRegionHandler(repo repository.RegionRepository) *RegionHandler {
	return &RegionHandler{Repo: repo}
}

// ListRegions handles GET /api/regions?code=US&sort=name
func (h *RegionHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	filter := repository.RegionFilter{
		Code: r.URL.Query().Get("code"),
		Sort: r.URL.Query().Get("sort"),
	}
	if !database.IsValidRegionSort(filter.Sort) {
		WriteFieldErrors(w, r, services.FieldErrors{"sort": {"Must be one of: id, name."}})
		return
	}

	regions, err := h.Repo.ListAll(filter)
	if err != nil {
		writeServiceError(w, r, regionNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toRegionListResponse(regions))
}

// GetRegion handles GET /api/regions/{id}
func (h *RegionHandler) GetRegion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "region")
	if !ok {
		return
	}
	region, err := h.Repo.GetByID(id)
	if err != nil {
		writeServiceError(w, r, regionNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toRegionResponse(region))
}

// CreateRegion handles POST /api/regions
func (h *RegionHandler) CreateRegion(w http.ResponseWriter, r *http.Request) {
	var payload RegionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeServiceError(w, r, regionNotFound, err)
		return
	}

	region := &models.Region{Code: *payload.Code, Name: *payload.Name}
	if err := h.Repo.Create(region); err != nil {
		writeServiceError(w, r, regionNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, toRegionResponse(region))
}

// UpdateRegion handles PUT /api/regions/{id}
func (h *RegionHandler) UpdateRegion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "region")
	if !ok {
		return
	}
	region, err := h.Repo.GetByID(id)
	if err != nil {
		writeServiceError(w, r, regionNotFound, err)
		return
	}

	var payload RegionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeServiceError(w, r, regionNotFound, err)
		return
	}

	region.Code = *payload.Code
	region.Name = *payload.Name
	if err := h.Repo.Update(region); err != nil {
		writeServiceError(w, r, regionNotFound, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, toRegionResponse(region))
}

// DeleteRegion handles DELETE /api/regions/{id}. Articles keep existing without the region.
func (h *RegionHandler) DeleteRegion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "region")
	if !ok {
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeServiceError(w, r, regionNotFound, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
