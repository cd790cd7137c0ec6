// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/lethanhan/inkpress/internal/platform/request"
	"github.com/lethanhan/inkpress/internal/platform/respond"
	"github.com/lethanhan/inkpress/pkg/pagination"
)

// Handler implements the administrative HTTP endpoints.
// The whole subtree is mounted behind RequireRole(admin).
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin routes onto the given router.
//
// # Endpoints
//   - GET    /check              : Role probe for admin frontends.
//   - GET    /stats              : Dashboard counts and recent activity.
//   - GET    /users              : List all users.
//   - GET    /users/{id}         : Read one user.
//   - PUT    /users/{id}         : Update any user (name, bio, role).
//   - DELETE /users/{id}         : Delete any user (not oneself).
//   - POST   /users/create-admin : Create an admin account.
//   - GET    /posts              : Moderation listing of all posts.
//   - DELETE /posts/{id}         : Delete any post (cascade included).
//   - GET    /comments           : Moderation listing of all comments.
//   - DELETE /comments/{id}      : Delete any comment.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/check", handler.check)
	router.Get("/stats", handler.stats)

	router.Get("/users", handler.listUsers)
	router.Get("/users/{id}", handler.getUser)
	router.Put("/users/{id}", handler.updateUser)
	router.Delete("/users/{id}", handler.deleteUser)
	router.Post("/users/create-admin", handler.createAdmin)

	router.Get("/posts", handler.listPosts)
	router.Delete("/posts/{id}", handler.deletePost)

	router.Get("/comments", handler.listComments)
	router.Delete("/comments/{id}", handler.deleteComment)
}

// # Request Payloads

type updateUserRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
	Role *string `json:"role"`
}

type createAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// # Endpoints

// check exists so admin frontends can probe role access cheaply; reaching
// it at all means the role middleware let the caller through.
func (handler *Handler) check(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]bool{"admin": true})
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	users, total, err := handler.service.ListUsers(request.Context(), principal, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), principal, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUser(request.Context(), principal, requestutil.ID(request, "id"), UpdateUserInput{
		Name: input.Name,
		Bio:  input.Bio,
		Role: input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteUser(request.Context(), principal, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) createAdmin(writer http.ResponseWriter, request *http.Request) {
	var input createAdminRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateAdmin(request.Context(), principal, CreateAdminInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, total, err := handler.service.ListPosts(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
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

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
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
