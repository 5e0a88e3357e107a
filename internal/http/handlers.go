package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/lib/metrics"
	"inmo_backend/internal/services/audio"
	"inmo_backend/internal/services/catalog"
	"inmo_backend/internal/services/favorite"
	"inmo_backend/internal/services/generate"
	"inmo_backend/internal/services/location"
	"inmo_backend/internal/services/property"
	"inmo_backend/internal/services/search"
	"inmo_backend/internal/services/user"
)

// Handlers — набор HTTP-обработчиков API поверх сервисного слоя.
type Handlers struct {
	log        *slog.Logger
	catalog    *catalog.Service
	users      *user.Service
	properties *property.Service
	favorites  *favorite.Service
	search     *search.Service
	generate   *generate.Service
	audio      *audio.Service
	locations  *location.Resolver
	aiMetrics  *metrics.AIMetrics
}

func NewHandlers(
	log *slog.Logger,
	catalogSvc *catalog.Service,
	userSvc *user.Service,
	propertySvc *property.Service,
	favoriteSvc *favorite.Service,
	searchSvc *search.Service,
	generateSvc *generate.Service,
	audioSvc *audio.Service,
	resolver *location.Resolver,
	aiMetrics *metrics.AIMetrics,
) *Handlers {
	return &Handlers{
		log:        log,
		catalog:    catalogSvc,
		users:      userSvc,
		properties: propertySvc,
		favorites:  favoriteSvc,
		search:     searchSvc,
		generate:   generateSvc,
		audio:      audioSvc,
		locations:  resolver,
		aiMetrics:  aiMetrics,
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func queryPager(r *http.Request) *domain.Pager {
	page, _ := strconv.ParseInt(r.URL.Query().Get("pagina"), 10, 32)
	perPage, _ := strconv.ParseInt(r.URL.Query().Get("por_pagina"), 10, 32)
	return domain.NewPager(int32(page), int32(perPage))
}

func mustUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no autorizado")
	}
	return id, ok
}

// ---- справочники ----

func (h *Handlers) listCountries(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Countries(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(items, func(c domain.Country, _ int) countryDTO {
		return toCountryDTO(c)
	}))
}

func (h *Handlers) getCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	c, err := h.catalog.Country(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCountryDTO(c))
}

func (h *Handlers) listDepartments(w http.ResponseWriter, r *http.Request) {
	var countryID *int64
	if raw := r.URL.Query().Get("pais_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "pais_id inválido")
			return
		}
		countryID = &id
	}
	items, err := h.catalog.Departments(r.Context(), countryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(items, func(d domain.Department, _ int) departmentDTO {
		return toDepartmentDTO(d)
	}))
}

func (h *Handlers) getDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	d, err := h.catalog.Department(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDepartmentDTO(d))
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	var departmentID *int64
	if raw := r.URL.Query().Get("departamento_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "departamento_id inválido")
			return
		}
		departmentID = &id
	}
	items, err := h.catalog.Cities(r.Context(), departmentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(items, func(c domain.City, _ int) cityDTO {
		return toCityDTO(c)
	}))
}

func (h *Handlers) getCity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	c, err := h.catalog.City(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCityDTO(c))
}

func (h *Handlers) listPropertyTypes(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.PropertyTypes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(items, func(t domain.PropertyTypeEntry, _ int) propertyTypeDTO {
		return toPropertyTypeDTO(t)
	}))
}

func (h *Handlers) getPropertyType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	t, err := h.catalog.PropertyType(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPropertyTypeDTO(t))
}

func (h *Handlers) listAudioCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.AudioCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(items, func(c domain.AudioCategory, _ int) audioCategoryDTO {
		return toAudioCategoryDTO(c)
	}))
}

func (h *Handlers) getAudioCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	c, err := h.catalog.AudioCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAudioCategoryDTO(c))
}

// createNamed обслуживает создание записи справочника с единственным
// полем nombre.
func (h *Handlers) createNamed(w http.ResponseWriter, r *http.Request, create func(context.Context, string) (int64, error)) {
	var req catalogNameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := create(r.Context(), req.Nombre)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handlers) updateNamed(w http.ResponseWriter, r *http.Request, update func(context.Context, int64, string) error) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req catalogNameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := update(r.Context(), id, req.Nombre); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteByID(w http.ResponseWriter, r *http.Request, del func(context.Context, int64) error) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) createCountry(w http.ResponseWriter, r *http.Request) {
	h.createNamed(w, r, h.catalog.CreateCountry)
}

func (h *Handlers) updateCountry(w http.ResponseWriter, r *http.Request) {
	h.updateNamed(w, r, h.catalog.UpdateCountry)
}

func (h *Handlers) deleteCountry(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteCountry)
}

func (h *Handlers) createDepartment(w http.ResponseWriter, r *http.Request) {
	var req createDepartmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.catalog.CreateDepartment(r.Context(), req.Nombre, req.PaisID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handlers) updateDepartment(w http.ResponseWriter, r *http.Request) {
	h.updateNamed(w, r, h.catalog.UpdateDepartment)
}

func (h *Handlers) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteDepartment)
}

func (h *Handlers) createCity(w http.ResponseWriter, r *http.Request) {
	var req createCityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.catalog.CreateCity(r.Context(), req.Nombre, req.DepartamentoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handlers) updateCity(w http.ResponseWriter, r *http.Request) {
	h.updateNamed(w, r, h.catalog.UpdateCity)
}

func (h *Handlers) deleteCity(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteCity)
}

func (h *Handlers) createPropertyType(w http.ResponseWriter, r *http.Request) {
	h.createNamed(w, r, h.catalog.CreatePropertyType)
}

func (h *Handlers) updatePropertyType(w http.ResponseWriter, r *http.Request) {
	h.updateNamed(w, r, h.catalog.UpdatePropertyType)
}

func (h *Handlers) deletePropertyType(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeletePropertyType)
}

func (h *Handlers) createAudioCategory(w http.ResponseWriter, r *http.Request) {
	var req audioCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.catalog.CreateAudioCategory(r.Context(), domain.AudioCategory{
		Code:          req.Codigo,
		Description:   req.Descripcion,
		AIInstruction: req.InstruccionIA,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handlers) updateAudioCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req audioCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.catalog.UpdateAudioCategory(r.Context(), domain.AudioCategory{
		ID:            id,
		Code:          req.Codigo,
		Description:   req.Descripcion,
		AIInstruction: req.InstruccionIA,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteAudioCategory(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.catalog.DeleteAudioCategory)
}

// ---- пользователи ----

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var birthDate *time.Time
	if req.FechaNacimiento != nil {
		t, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			writeError(w, http.StatusBadRequest, "fecha_nacimiento inválida, formato esperado AAAA-MM-DD")
			return
		}
		birthDate = &t
	}

	id, err := h.users.Register(r.Context(), user.RegisterInput{
		FirstName: req.Nombre,
		LastName:  req.Apellido,
		BirthDate: birthDate,
		Gender:    req.Genero,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Telefono,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenPairDTO{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	pair, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenPairDTO{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	u, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(u))
}

func (h *Handlers) counters(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	c, err := h.users.Counters(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countersDTO{
		MisPropiedades: c.MyPropertiesCount,
		Favoritos:      c.FavoritesCount,
	})
}

// ---- объявления ----

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	items, err := h.properties.ListActive(r.Context(), queryPager(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardDTOs(items))
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	card, err := h.properties.GetCard(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardDTO(card))
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req createPropertyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.properties.Create(r.Context(), property.CreateInput{
		OwnerUserID:    userID,
		PropertyTypeID: req.TipoPropiedadID,
		Title:          req.Titulo,
		Description:    req.Descripcion,
		SalePrice:      req.PrecioVenta,
		RentPrice:      req.PrecioAlquiler,
		TotalArea:      req.SuperficieTotal,
		Country:        req.Pais,
		Department:     req.Departamento,
		City:           req.Ciudad,
		Address:        req.Direccion,
		Neighborhood:   req.Colonia,
		Latitude:       req.Latitud,
		Longitude:      req.Longitud,
		PostalCode:     req.CodigoPostal,
		Bedrooms:       req.Habitaciones,
		Bathrooms:      req.Banos,
		OtherDetails:   req.OtrosDetalles,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handlers) listOwned(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	filter := domain.OwnedFilter{OwnerUserID: userID}
	if raw := r.URL.Query().Get("estado"); raw != "" {
		status := domain.PublicationStatus(raw)
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("tipo_propiedad"); raw != "" {
		filter.PropertyType = &raw
	}

	result, err := h.properties.ListOwned(r.Context(), filter, queryPager(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedDTO[ownedListingDTO]{
		Items: lo.Map(result.Items, func(l domain.OwnedListing, _ int) ownedListingDTO {
			return toOwnedListingDTO(l)
		}),
		Total:     result.TotalCount,
		Pagina:    result.Page,
		PorPagina: result.PerPage,
		Paginas:   result.Pages(),
	})
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req updatePropertyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	update := domain.PropertyUpdate{
		Title:          req.Titulo,
		Description:    req.Descripcion,
		PropertyTypeID: req.TipoPropiedadID,
		TotalArea:      req.SuperficieTotal,
		Featured:       req.Destacada,
	}
	if req.PrecioVenta != nil {
		update.SalePrice = &domain.PriceField{Amount: req.PrecioVenta}
	}
	if req.PrecioAlquiler != nil {
		update.RentPrice = &domain.PriceField{Amount: req.PrecioAlquiler}
	}

	if err := h.properties.Update(r.Context(), id, userID, update); err != nil {
		writeServiceError(w, err)
		return
	}

	if req.Habitaciones != nil || req.Banos != nil || req.OtrosDetalles != nil {
		details := domain.PropertyDetails{
			PropertyID:   id,
			Bedrooms:     req.Habitaciones,
			Bathrooms:    req.Banos,
			OtherDetails: req.OtrosDetalles,
		}
		if err := h.properties.SaveDetails(r.Context(), userID, details); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	if err := h.properties.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.properties.UpdateStatus(r.Context(), id, userID, domain.PublicationStatus(req.Estado)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	stats, err := h.properties.Stats(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsDTO{
		Visitas:     stats.Visits,
		Favoritos:   stats.FavoritesCount,
		Imagenes:    stats.ImagesCount,
		CreadaEn:    stats.CreatedAt,
		PublicadaEn: stats.PublishedAt,
	})
}

func (h *Handlers) saveDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req detailsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.properties.SaveDetails(r.Context(), userID, domain.PropertyDetails{
		PropertyID:   id,
		Bedrooms:     req.Habitaciones,
		Bathrooms:    req.Banos,
		OtherDetails: req.OtrosDetalles,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	details, err := h.properties.Details(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detailsDTO{
		Habitaciones:  details.Bedrooms,
		Banos:         details.Bathrooms,
		OtrosDetalles: details.OtherDetails,
	})
}

func (h *Handlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	file, header, err := r.FormFile("imagen")
	if err != nil {
		writeError(w, http.StatusBadRequest, "se requiere el campo de formulario 'imagen'")
		return
	}
	defer file.Close()

	img, err := h.properties.UploadImage(r.Context(), id, userID,
		file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, imageDTO{ID: img.ID, URL: img.URL, Posicion: img.Position})
}

func (h *Handlers) listImages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	images, err := h.properties.Images(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(images, func(img domain.PropertyImage, _ int) imageDTO {
		return imageDTO{ID: img.ID, URL: img.URL, Posicion: img.Position}
	}))
}

func (h *Handlers) updateImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	imageID, ok := pathID(r, "imageID")
	if !ok {
		writeError(w, http.StatusBadRequest, "id de imagen inválido")
		return
	}
	var req updateImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.properties.UpdateImage(r.Context(), propertyID, userID, imageID, domain.ImageUpdate{
		URL:      req.URL,
		Position: req.Posicion,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	imageID, ok := pathID(r, "imageID")
	if !ok {
		writeError(w, http.StatusBadRequest, "id de imagen inválido")
		return
	}
	if err := h.properties.RemoveImage(r.Context(), propertyID, userID, imageID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) addContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	contactID, err := h.properties.AddContact(r.Context(), userID, domain.PropertyContact{
		PropertyID:  id,
		Name:        req.Nombre,
		Phone:       req.Telefono,
		Email:       req.Email,
		ContactType: req.TipoContacto,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": contactID})
}

func (h *Handlers) listContacts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	contacts, err := h.properties.Contacts(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(contacts, func(c domain.PropertyContact, _ int) contactDTO {
		return contactDTO{
			ID:           c.ID,
			Nombre:       c.Name,
			Telefono:     c.Phone,
			Email:        c.Email,
			TipoContacto: c.ContactType,
		}
	}))
}

func (h *Handlers) updateContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	contactID, ok := pathID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "id de contacto inválido")
		return
	}
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.properties.UpdateContact(r.Context(), userID, domain.PropertyContact{
		ID:          contactID,
		PropertyID:  propertyID,
		Name:        req.Nombre,
		Phone:       req.Telefono,
		Email:       req.Email,
		ContactType: req.TipoContacto,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) removeContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	contactID, ok := pathID(r, "contactID")
	if !ok {
		writeError(w, http.StatusBadRequest, "id de contacto inválido")
		return
	}
	if err := h.properties.RemoveContact(r.Context(), userID, propertyID, contactID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- избранное ----

func (h *Handlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	items, err := h.favorites.List(r.Context(), userID, queryPager(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardDTOs(items))
}

func (h *Handlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req addFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PropiedadID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "propiedad_id requerido")
		return
	}
	if err := h.favorites.Add(r.Context(), userID, req.PropiedadID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) checkFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(r, "propertyID")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	isFav, err := h.favorites.IsFavorite(r.Context(), userID, propertyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"es_favorito": isFav})
}

func (h *Handlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(r, "propertyID")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	if err := h.favorites.Remove(r.Context(), userID, propertyID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- локации ----

func (h *Handlers) registerLocation(w http.ResponseWriter, r *http.Request) {
	var req registerLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	locationID, ids, err := h.locations.RegisterLocation(r.Context(), location.RegisterLocationInput{
		Country:      req.Pais,
		Department:   req.Departamento,
		City:         req.Ciudad,
		Address:      req.Direccion,
		Neighborhood: req.Colonia,
		Latitude:     req.Latitud,
		Longitude:    req.Longitud,
		PostalCode:   req.CodigoPostal,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerLocationResponse{
		UbicacionID:    locationID,
		PaisID:         ids.CountryID,
		DepartamentoID: ids.DepartmentID,
		CiudadID:       ids.CityID,
	})
}

func (h *Handlers) getLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	loc, err := h.locations.Location(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locationDTO{
		ID:           loc.ID,
		Direccion:    loc.Address,
		Colonia:      loc.Neighborhood,
		CiudadID:     loc.CityID,
		Latitud:      loc.Latitude,
		Longitud:     loc.Longitude,
		CodigoPostal: loc.PostalCode,
	})
}

// ---- AI ----

func (h *Handlers) aiSearch(w http.ResponseWriter, r *http.Request) {
	var req aiSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.search.Search(r.Context(), req.Consulta, domain.NewPager(req.Pagina, req.PorPagina))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, aiSearchResponse{
		Consulta: result.Query,
		Filtros:  result.Filters,
		Items:    toCardDTOs(result.Items),
	})
}

func (h *Handlers) aiSearchExplain(w http.ResponseWriter, r *http.Request) {
	var req aiSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	filter, notes, err := h.search.Explain(r.Context(), req.Consulta)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"consulta":    req.Consulta,
		"filtros":     filter,
		"explicacion": notes,
	})
}

func (h *Handlers) aiGenerate(w http.ResponseWriter, r *http.Request) {
	var req aiGenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.generate.GenerateListing(r.Context(), generate.Input{
		BaseText:   req.TextoBase,
		Latitude:   req.Latitud,
		Longitude:  req.Longitud,
		Country:    req.Pais,
		Department: req.Departamento,
		City:       req.Ciudad,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := aiGenerateResponse{
		TituloGenerado:      result.Title,
		DescripcionGenerada: result.Description,
	}
	if result.Location != nil {
		resp.Ubicacion = &registerLocationResponse{
			PaisID:         result.Location.CountryID,
			DepartamentoID: result.Location.DepartmentID,
			CiudadID:       result.Location.CityID,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) aiMetricsStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.aiMetrics.GetStats())
}

// ---- аудио ----

func (h *Handlers) createAudioJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req createAudioJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	job, err := h.audio.CreateJob(r.Context(), userID, req.CategoriaAudioID, req.PropiedadID, req.AudioURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAudioJobDTO(job))
}

func (h *Handlers) listAudioJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	jobs, err := h.audio.ListJobs(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(jobs, func(j domain.AudioJob, _ int) audioJobDTO {
		return toAudioJobDTO(j)
	}))
}

func (h *Handlers) getAudioJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	job, err := h.audio.GetJob(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAudioJobDTO(job))
}

func (h *Handlers) updateAudioJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req updateAudioJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.audio.UpdateJob(r.Context(), id, userID, audio.UpdateJobInput{
		Transcript:           req.Transcripcion,
		GeneratedDescription: req.DescripcionGenerada,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteAudioJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	if err := h.audio.DeleteJob(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
