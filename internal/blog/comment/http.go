// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lethanhan/inkpress/internal/platform/middleware"
	requestutil "github.com/lethanhan/inkpress/internal/platform/request"
	"github.com/lethanhan/inkpress/internal/platform/respond"
	"github.com/lethanhan/inkpress/pkg/pagination"
)

// Handler implements the comment domain's HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the standalone comment routes.
//
// # Endpoints
//   - GET    /{id} : Read one comment (public).
//   - PUT    /{id} : Update a comment (owner or admin).
//   - DELETE /{id} : Delete a comment (owner or admin).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}", handler.getComment)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Put("/{id}", handler.updateComment)
		r.Delete("/{id}", handler.deleteComment)
	})
}

// RegisterPostRoutes mounts the comment routes that live under a post.
//
// # Endpoints
//   - GET  /{postID}/comments : List a post's comments (public).
//   - POST /{postID}/comments : Add a comment (authenticated).
func (handler *Handler) RegisterPostRoutes(router chi.Router) {
	router.Get("/{postID}/comments", handler.listByPost)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{postID}/comments", handler.createComment)
	})
}

// # Request Payloads

type commentRequest struct {
	Content string `json:"content"`
}

// # Endpoints

func (handler *Handler) listByPost(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	comments, total, err := handler.service.ListByPost(request.Context(), requestutil.ID(request, "postID"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.service.GetComment(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), principal, requestutil.ID(request, "postID"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), principal, requestutil.ID(request, "id"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), principal, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
