package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

type SearchHandler struct {
	searchService ports.SearchService
}

func NewSearchHandler(searchService ports.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

type suggestionsResponse struct {
	Success  bool                  `json:"success"`
	Users    []domain.Profile      `json:"users"`
	Hashtags []domain.HashtagCount `json:"hashtags"`
}

type trendingResponse struct {
	Success  bool                  `json:"success"`
	Trending []domain.HashtagCount `json:"trending"`
}

// Suggestions returns username and hashtag matches for the search bar.
//
// @Summary      Search suggestions
// @Tags         search
// @Produce      json
// @Param        query  query  string  true  "Search text"
// @Success      200  {object}  suggestionsResponse
// @Failure      400  {object}  errorResponse
// @Security     ApiKeyAuth
// @Router       /search/suggestions [get]
func (h *SearchHandler) Suggestions(c echo.Context) error {
	result, err := h.searchService.Suggestions(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, suggestionsResponse{
		Success:  true,
		Users:    result.Users,
		Hashtags: result.Hashtags,
	})
}

// Trending returns the most used hashtags of the last 24 hours.
//
// @Summary      Trending hashtags
// @Tags         search
// @Produce      json
// @Success      200  {object}  trendingResponse
// @Security     ApiKeyAuth
// @Router       /tweets/trending-hashtags [get]
func (h *SearchHandler) Trending(c echo.Context) error {
	trending, err := h.searchService.Trending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trendingResponse{Success: true, Trending: trending})
}
