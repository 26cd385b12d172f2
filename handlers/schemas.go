package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/camden-git/articlesbackend/models"
	"github.com/camden-git/articlesbackend/services"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// --- Request payloads ---

// OptionalID is a nullable id field that remembers whether it was sent at all.
type OptionalID struct {
	Set bool
	ID  *uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.ID = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}

type AuthorPayload struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (p AuthorPayload) Validate() error {
	return services.ValidateAuthorFields(p.FirstName, p.LastName)
}

type RegionPayload struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

func (p RegionPayload) Validate() error {
	return services.ValidateRegionFields(p.Code, p.Name)
}

// ArticleRegionPayload is one entry of an article's regions list; either side may be omitted.
type ArticleRegionPayload struct {
	ID   *uint   `json:"id"`
	Code *string `json:"code"`
	Name *string `json:"name"`
}

// ArticleRegionList decodes entry by entry so a wrongly typed field is reported
// under its position, the same way validation errors are keyed (regions.0.id).
type ArticleRegionList []ArticleRegionPayload

func (l *ArticleRegionList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return typeFieldError("regions", err)
	}
	entries := make(ArticleRegionList, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal(item, &entries[i]); err != nil {
			return typeFieldError("regions."+strconv.Itoa(i), err)
		}
	}
	*l = entries
	return nil
}

type ArticlePayload struct {
	ID      *uint              `json:"id"`
	Title   *string            `json:"title"`
	Content *string            `json:"content"`
	Author  OptionalID         `json:"author"`
	Regions *ArticleRegionList `json:"regions"`
}

// Validate checks field bounds only; presence on create and references are the writer's job.
func (p ArticlePayload) Validate() error {
	errs := validation.Errors{
		"title": validation.Validate(p.Title, services.OptionalNameRules(p.Title)...),
	}
	if p.Regions != nil {
		entries := validation.Errors{}
		for i, entry := range *p.Regions {
			entries[strconv.Itoa(i)] = validation.Errors{
				"code": validation.Validate(entry.Code, services.OptionalNameRules(entry.Code)...),
				"name": validation.Validate(entry.Name, services.OptionalNameRules(entry.Name)...),
			}.Filter()
		}
		errs["regions"] = entries.Filter()
	}
	return services.FromValidation(errs.Filter())
}

func (p ArticlePayload) toInput() services.ArticleInput {
	in := services.ArticleInput{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  services.AuthorRef{Set: p.Author.Set, ID: p.Author.ID},
	}
	if p.Regions != nil {
		regions := make([]services.RegionInput, len(*p.Regions))
		for i, entry := range *p.Regions {
			regions[i] = services.RegionInput{ID: entry.ID, Code: entry.Code, Name: entry.Name}
		}
		in.Regions = &regions
	}
	return in
}

// --- Response DTOs ---

type AuthorResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegionResponse struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// ArticleResponse always carries regions as a list and author as an object or null.
type ArticleResponse struct {
	ID      uint             `json:"id"`
	Title   string           `json:"title"`
	Content string           `json:"content"`
	Regions []RegionResponse `json:"regions"`
	Author  *AuthorResponse  `json:"author"`
}

func toAuthorResponse(author *models.Author) AuthorResponse {
	return AuthorResponse{
		ID:        author.ID,
		FirstName: author.FirstName,
		LastName:  author.LastName,
	}
}

func toAuthorListResponse(authors []models.Author) []AuthorResponse {
	dtos := make([]AuthorResponse, len(authors))
	for i := range authors {
		dtos[i] = toAuthorResponse(&authors[i])
	}
	return dtos
}

func toRegionResponse(region *models.Region) RegionResponse {
	return RegionResponse{ID: region.ID, Code: region.Code, Name: region.Name}
}

func toRegionListResponse(regions []models.Region) []RegionResponse {
	dtos := make([]RegionResponse, len(regions))
	for i := range regions {
		dtos[i] = toRegionResponse(&regions[i])
	}
	return dtos
}

func toArticleResponse(article *models.Article) ArticleResponse {
	resp := ArticleResponse{
		ID:      article.ID,
		Title:   article.Title,
		Content: article.Content,
		Regions: toRegionListResponse(article.Regions),
	}
	if article.Author != nil {
		author := toAuthorResponse(article.Author)
		resp.Author = &author
	}
	return resp
}

func toArticleListResponse(articles []models.Article) []ArticleResponse {
	dtos := make([]ArticleResponse, len(articles))
	for i := range articles {
		dtos[i] = toArticleResponse(&articles[i])
	}
	return dtos
}
