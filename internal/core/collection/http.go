// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-shelf/internal/platform/request"
	"github.com/taibuivan/yomira-shelf/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the write side of /collections. Read views that carry
// aggregate statistics are served by the stats package on the same router.
type Handler struct {
	service *Service
}

// NewHandler constructs a new collection [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the collection mutation endpoints to a router mounted at /collections.
func (handler *Handler) Register(router chi.Router) {
	router.Post("/", handler.createCollection)
	router.Patch("/{id}", handler.updateCollection)
	router.Delete("/{id}", handler.deleteCollection)
}

/*
POST /api/v1/collections.

Request (Body):
  - name: string (required, max 120)
  - description: string (optional, max 1000)

Response:
  - 201: Collection
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) createCollection(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.Create(request.Context(), ownerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, collection)
}

/*
PATCH /api/v1/collections/{id}.

Response:
  - 200: Collection
  - 404: NOT_FOUND (missing or foreign)
*/
func (handler *Handler) updateCollection(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.Update(request.Context(), ownerID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, collection)
}

/*
DELETE /api/v1/collections/{id}.

Description: Cascades to every manga record in the collection.

Response:
  - 204: No Content
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteCollection(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
