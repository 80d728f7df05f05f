// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-shelf/internal/platform/request"
	"github.com/taibuivan/yomira-shelf/internal/platform/respond"
)

// Handler exposes the catalog to clients. Routes are public.
type Handler struct {
	searcher Searcher
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(searcher Searcher) *Handler {
	return &Handler{searcher: searcher}
}

// Routes returns the router mounted at /catalog.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/search", handler.search)
	router.Get("/top", handler.top)
	router.Get("/manga/{catalogID}", handler.details)

	return router
}

/*
GET /api/v1/catalog/search?q=&page=.

Response:
  - 200: []Candidate with cursor pagination meta
  - 503: SEARCH_UNAVAILABLE
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	page, err := requestutil.IntQuery(request, "page", 1)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.searcher.Search(request.Context(), request.URL.Query().Get("q"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Items, result.Meta)
}

// GET /api/v1/catalog/top.
func (handler *Handler) top(writer http.ResponseWriter, request *http.Request) {
	candidates, err := handler.searcher.Top(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, candidates)
}

/*
GET /api/v1/catalog/manga/{catalogID}.

Response:
  - 200: Candidate
  - 400: VALIDATION_ERROR (non-numeric id)
  - 404: NOT_FOUND
*/
func (handler *Handler) details(writer http.ResponseWriter, request *http.Request) {
	catalogID, err := requestutil.IntParam(request, "catalogID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	candidate, err := handler.searcher.Details(request.Context(), catalogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, candidate)
}
