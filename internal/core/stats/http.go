// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-shelf/internal/platform/request"
	"github.com/taibuivan/yomira-shelf/internal/platform/respond"
)

// Handler serves the read side of /collections and the dashboard.
type Handler struct {
	service *Service
}

// NewHandler constructs a new stats [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the aggregate views to a router mounted at /collections.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/", handler.listCollections)
	router.Get("/{id}", handler.getCollection)
	router.Get("/{id}/stats", handler.getStats)
}

/*
GET /api/v1/collections.

Response:
  - 200: []CollectionStats
*/
func (handler *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collections, err := handler.service.ListCollectionsWithStats(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, collections)
}

/*
GET /api/v1/collections/{id}.

Response:
  - 200: CollectionStats
  - 404: NOT_FOUND (missing or foreign)
*/
func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ComputeStats(request.Context(), ownerID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// GET /api/v1/collections/{id}/stats.
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ComputeStats(request.Context(), ownerID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result.Stats)
}

/*
Dashboard serves GET /api/v1/dashboard.

Response:
  - 200: Dashboard
*/
func (handler *Handler) Dashboard(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dashboard, err := handler.service.Dashboard(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, dashboard)
}
