package costcenters

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/cost-centers", h.List)
	r.Post("/cost-centers", h.Create)
	r.Put("/cost-centers/{id}", h.Update)
	r.Delete("/cost-centers/{id}", h.Delete)
}
