/*
Package blog implements the blog post resource: the stored model and its
wire projection, the persistence gateway with its Mongo, PostgreSQL and
Badger variants, the service holding validation rules, and the HTTP layer.

# Routing

	GET    /posts        list every post
	GET    /posts/{id}   fetch one post
	POST   /posts        create a post
	PUT    /posts/{id}   partially update a post
	DELETE /posts/{id}   delete a post

Handlers keep no state between requests and call the service exactly once.
*/
package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/blogapi/internal/platform/request"
	"github.com/taibuivan/blogapi/internal/platform/respond"
	"github.com/taibuivan/blogapi/pkg/slice"
)

// ListResponse is the body of GET /posts.
type ListResponse struct {
	Posts []PostView `json:"posts"`
}

// Handler implements the HTTP layer for blog posts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the post endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPosts)
	router.Post("/", handler.createPost)

	router.Route("/{id}", func(item chi.Router) {
		item.Get("/", handler.getPost)
		item.Put("/", handler.updatePost)
		item.Delete("/", handler.deletePost)
	})

	return router
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.service.ListPosts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ListResponse{Posts: slice.Map(posts, (*Post).Serialize)})
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.GetPost(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post.Serialize())
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input CreatePostRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post.Serialize())
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	var input UpdatePostRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePost(request.Context(), requestutil.ID(request, "id"), input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePost(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
