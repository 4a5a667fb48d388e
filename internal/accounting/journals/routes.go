package journals

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/journal-entries", h.List)
	r.Post("/journal-entries", h.Create)
	r.Get("/journal-entries/{id}", h.Get)
	r.Post("/journal-entries/{id}/post", h.Post)
}
