// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lethanhan/inkpress/internal/platform/middleware"
	requestutil "github.com/lethanhan/inkpress/internal/platform/request"
	"github.com/lethanhan/inkpress/internal/platform/respond"
	"github.com/lethanhan/inkpress/pkg/pagination"
)

// Handler implements the post domain's HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the post routes onto the given router.
//
// # Endpoints
//   - GET    /               : List posts (public, newest first, ?category= filter).
//   - GET    /{id}           : Read one post (public).
//   - GET    /user/{userID}  : List one author's posts (public).
//   - POST   /               : Create a post (authenticated).
//   - PUT    /{id}           : Update a post (owner or admin).
//   - DELETE /{id}           : Delete a post and its comments (owner or admin).
//   - PUT    /{id}/like      : Toggle the caller's like (authenticated).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public endpoints
	router.Get("/", handler.listPosts)
	router.Get("/user/{userID}", handler.listPostsByAuthor)
	router.Get("/{id}", handler.getPost)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createPost)
		r.Put("/{id}", handler.updatePost)
		r.Delete("/{id}", handler.deletePost)
		r.Put("/{id}/like", handler.toggleLike)
	})
}

// # Request Payloads

type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Image    *string `json:"image"`
}

// # Endpoints

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{CategoryID: request.URL.Query().Get("category")}

	posts, total, err := handler.service.ListPosts(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listPostsByAuthor(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, total, err := handler.service.ListByAuthor(request.Context(), requestutil.ID(request, "userID"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.GetPost(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input createPostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), principal, CreateInput{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.Category,
		ImageURL:   input.Image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.UpdatePost(request.Context(), principal, requestutil.ID(request, "id"), UpdateInput{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: input.Category,
		ImageURL:   input.Image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePost(request.Context(), principal, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	likes, err := handler.service.ToggleLike(request.Context(), principal, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{"likes": likes})
}
