// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package category

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lethanhan/inkpress/internal/blog/post"
	"github.com/lethanhan/inkpress/internal/platform/middleware"
	requestutil "github.com/lethanhan/inkpress/internal/platform/request"
	"github.com/lethanhan/inkpress/internal/platform/respond"
	"github.com/lethanhan/inkpress/internal/platform/sec"
	"github.com/lethanhan/inkpress/pkg/pagination"
)

// PostCatalog is the narrow post-domain collaborator used for the
// /{id}/posts listing. Satisfied by the post service.
type PostCatalog interface {
	ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*post.Post, int, error)
}

// Handler implements the category domain's HTTP endpoints.
type Handler struct {
	service *Service
	posts   PostCatalog
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, posts PostCatalog) *Handler {
	return &Handler{service: service, posts: posts}
}

// RegisterRoutes mounts the category routes onto the given router.
//
// # Endpoints
//   - GET    /             : List all categories (public).
//   - GET    /{id}         : Read one category (public).
//   - GET    /slug/{slug}  : Read one category by slug (public).
//   - GET    /{id}/posts   : List a category's posts (public).
//   - POST   /             : Create a category (admin).
//   - PUT    /{id}         : Update a category (admin).
//   - DELETE /{id}         : Delete a category (admin).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public endpoints
	router.Get("/", handler.listCategories)
	router.Get("/{id}", handler.getCategory)
	router.Get("/slug/{slug}", handler.getCategoryBySlug)
	router.Get("/{id}/posts", handler.listCategoryPosts)

	// Admin endpoints. RequireRole gates route access; the policy engine
	// re-checks the action inside the service.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.createCategory)
		r.Put("/{id}", handler.updateCategory)
		r.Delete("/{id}", handler.deleteCategory)
	})
}

// # Request Payloads

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// # Endpoints

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetCategory(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) getCategoryBySlug(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetCategoryBySlug(request.Context(), requestutil.ID(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) listCategoryPosts(writer http.ResponseWriter, request *http.Request) {
	// Resolve the category first so a bad id is a 404, not an empty page.
	category, err := handler.service.GetCategory(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	posts, total, err := handler.posts.ListByCategory(request.Context(), category.ID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), principal, input.Name, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input updateCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), principal, requestutil.ID(request, "id"), UpdateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), principal, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
