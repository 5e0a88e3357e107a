package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"inmo_backend/internal/config"
)

// Server — HTTP-поверхность API. Все маршруты живут под /api,
// защищённые — за JWT-мидлварью.
type Server struct {
	mux *chi.Mux
	log *slog.Logger
}

func New(log *slog.Logger, cfg config.HTTPConfig) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(30 * time.Second))
	m.Use(Logger(log))
	m.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	return &Server{mux: m, log: log}
}

func (s *Server) Mux() http.Handler { return s.mux }

// MountRoutes — собирает карту маршрутов из обработчиков.
func (s *Server) MountRoutes(h *Handlers, auth func(http.Handler) http.Handler) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.mux.Route("/api", func(r chi.Router) {
		// Справочники
		r.Get("/paises", h.listCountries)
		r.Get("/paises/{id}", h.getCountry)
		r.Get("/departamentos", h.listDepartments)
		r.Get("/departamentos/{id}", h.getDepartment)
		r.Get("/ciudades", h.listCities)
		r.Get("/ciudades/{id}", h.getCity)
		r.Get("/tipos-propiedad", h.listPropertyTypes)
		r.Get("/tipos-propiedad/{id}", h.getPropertyType)
		r.Get("/categorias-audio", h.listAudioCategories)
		r.Get("/categorias-audio/{id}", h.getAudioCategory)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/paises", h.createCountry)
			r.Put("/paises/{id}", h.updateCountry)
			r.Delete("/paises/{id}", h.deleteCountry)
			r.Post("/departamentos", h.createDepartment)
			r.Put("/departamentos/{id}", h.updateDepartment)
			r.Delete("/departamentos/{id}", h.deleteDepartment)
			r.Post("/ciudades", h.createCity)
			r.Put("/ciudades/{id}", h.updateCity)
			r.Delete("/ciudades/{id}", h.deleteCity)
			r.Post("/tipos-propiedad", h.createPropertyType)
			r.Put("/tipos-propiedad/{id}", h.updatePropertyType)
			r.Delete("/tipos-propiedad/{id}", h.deletePropertyType)
			r.Post("/categorias-audio", h.createAudioCategory)
			r.Put("/categorias-audio/{id}", h.updateAudioCategory)
			r.Delete("/categorias-audio/{id}", h.deleteAudioCategory)
		})

		// Пользователи
		r.Post("/usuarios", h.register)
		r.Post("/usuarios/login", h.login)
		r.Post("/usuarios/refresh", h.refresh)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/usuarios/perfil", h.profile)
			r.Get("/usuarios/contadores", h.counters)
		})

		// Объявления
		r.Get("/propiedades", h.listProperties)
		r.Get("/propiedades/{id}", h.getProperty)
		r.Get("/propiedades/{id}/imagenes", h.listImages)
		r.Get("/propiedades/{id}/contactos", h.listContacts)
		r.Get("/propiedades/{id}/detalles", h.getDetails)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/propiedades", h.createProperty)
			r.Get("/propiedades/mis-propiedades", h.listOwned)
			r.Put("/propiedades/{id}", h.updateProperty)
			r.Delete("/propiedades/{id}", h.deleteProperty)
			r.Patch("/propiedades/{id}/estado", h.updateStatus)
			r.Get("/propiedades/{id}/estadisticas", h.getStats)
			r.Post("/propiedades/{id}/imagenes", h.uploadImage)
			r.Put("/propiedades/{id}/imagenes/{imageID}", h.updateImage)
			r.Delete("/propiedades/{id}/imagenes/{imageID}", h.deleteImage)
			r.Post("/propiedades/{id}/contactos", h.addContact)
			r.Put("/propiedades/{id}/contactos/{contactID}", h.updateContact)
			r.Delete("/propiedades/{id}/contactos/{contactID}", h.removeContact)
			r.Put("/propiedades/{id}/detalles", h.saveDetails)
		})

		// Избранное
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/favoritos", h.listFavorites)
			r.Post("/favoritos", h.addFavorite)
			r.Get("/favoritos/{propertyID}", h.checkFavorite)
			r.Delete("/favoritos/{propertyID}", h.removeFavorite)
		})

		// Локации
		r.Get("/ubicaciones/{id}", h.getLocation)
		r.With(auth).Post("/ubicaciones", h.registerLocation)

		// AI
		r.Post("/ai-search", h.aiSearch)
		r.Post("/ai-search/explain", h.aiSearchExplain)
		r.With(auth).Post("/ai/generate", h.aiGenerate)
		r.Get("/ai/metrics", h.aiMetricsStats)

		// Обработка аудио
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/procesamientos-audio", h.listAudioJobs)
			r.Post("/procesamientos-audio", h.createAudioJob)
			r.Get("/procesamientos-audio/{id}", h.getAudioJob)
			r.Put("/procesamientos-audio/{id}", h.updateAudioJob)
			r.Delete("/procesamientos-audio/{id}", h.deleteAudioJob)
		})
	})
}
