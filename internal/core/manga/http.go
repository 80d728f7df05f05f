// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-shelf/internal/platform/request"
	"github.com/taibuivan/yomira-shelf/internal/platform/respond"
	"github.com/taibuivan/yomira-shelf/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for manga records and volume ledgers.
// Every route requires an authenticated owner.
type Handler struct {
	service *Service
}

// NewHandler constructs a new manga [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// volumeRequest is the body of volume writes: the version last read plus the volume fields.
type volumeRequest struct {
	Version int `json:"version"`
	VolumeInput
}

// Routes returns the router mounted at /manga.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMine)

	router.Route("/{id}", func(record chi.Router) {
		record.Get("/", handler.getManga)
		record.Patch("/", handler.updateDetails)
		record.Delete("/", handler.deleteManga)

		record.Post("/volumes", handler.addVolume)
		record.Put("/volumes/{number}", handler.editVolume)
		record.Delete("/volumes/{number}", handler.removeVolume)
	})

	return router
}

// RegisterCollectionRoutes attaches the collection-scoped endpoints to a router mounted at /collections.
func (handler *Handler) RegisterCollectionRoutes(router chi.Router) {
	router.Get("/{id}/manga", handler.listByCollection)
	router.Post("/{id}/manga", handler.addToCollection)
}

// # Record Endpoints

/*
GET /api/v1/manga.

Description: Every record the caller has shelved, newest first, paginated.

Response:
  - 200: []RecordView
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.ListByOwner(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	respond.Paginated(writer,
		PresentAll(pagination.Window(records, params)),
		pagination.NewMeta(params.Page, params.Limit, len(records)),
	)
}

/*
GET /api/v1/collections/{id}/manga.

Response:
  - 200: []RecordView
  - 404: NOT_FOUND (collection missing or foreign)
*/
func (handler *Handler) listByCollection(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.ListByCollection(request.Context(), ownerID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, PresentAll(records))
}

/*
POST /api/v1/collections/{id}/manga.

Request (Body):
  - AddInput JSON object; {"catalog_id": N} alone is hydrated from the catalog

Response:
  - 201: RecordView
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND
*/
func (handler *Handler) addToCollection(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AddInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.AddToCollection(request.Context(), ownerID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, Present(record))
}

// GET /api/v1/manga/{id}.
func (handler *Handler) getManga(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Get(request.Context(), ownerID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Present(record))
}

/*
PATCH /api/v1/manga/{id}.

Request (Body):
  - version: int (required)
  - rating: number, clear_rating: bool, notes: string, total_volumes: int

Response:
  - 200: RecordView
  - 409: VERSION_CONFLICT
*/
func (handler *Handler) updateDetails(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DetailsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.UpdateDetails(request.Context(), ownerID, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Present(record))
}

// DELETE /api/v1/manga/{id}.
func (handler *Handler) deleteManga(writer http.ResponseWriter, request *http.Request) {
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

// # Volume Endpoints

/*
POST /api/v1/manga/{id}/volumes.

Response:
  - 201: RecordView
  - 409: DUPLICATE_VOLUME or VERSION_CONFLICT
*/
func (handler *Handler) addVolume(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body volumeRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.AddVolume(request.Context(), ownerID, requestutil.Param(request, "id"), body.Version, body.VolumeInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, Present(record))
}

// PUT /api/v1/manga/{id}/volumes/{number}.
func (handler *Handler) editVolume(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body volumeRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.EditVolume(request.Context(), ownerID, requestutil.Param(request, "id"), body.Version, number, body.VolumeInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Present(record))
}

// DELETE /api/v1/manga/{id}/volumes/{number}?version=N.
func (handler *Handler) removeVolume(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	version, err := requestutil.IntQuery(request, FieldVersion, 0)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.RemoveVolume(request.Context(), ownerID, requestutil.Param(request, "id"), version, number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, Present(record))
}
