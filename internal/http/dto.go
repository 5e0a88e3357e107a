package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"inmo_backend/internal/domain"
)

// Wire-контракт API — испанские имена полей, как их ждёт фронтенд.

type countryDTO struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type departmentDTO struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	PaisID int64  `json:"pais_id"`
}

type cityDTO struct {
	ID             int64  `json:"id"`
	Nombre         string `json:"nombre"`
	DepartamentoID int64  `json:"departamento_id"`
}

type propertyTypeDTO struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type audioCategoryDTO struct {
	ID            int64  `json:"id"`
	Codigo        string `json:"codigo"`
	Descripcion   string `json:"descripcion"`
	InstruccionIA string `json:"instruccion_ia"`
}

func toCountryDTO(c domain.Country) countryDTO {
	return countryDTO{ID: c.ID, Nombre: c.Name}
}

func toDepartmentDTO(d domain.Department) departmentDTO {
	return departmentDTO{ID: d.ID, Nombre: d.Name, PaisID: d.CountryID}
}

func toCityDTO(c domain.City) cityDTO {
	return cityDTO{ID: c.ID, Nombre: c.Name, DepartamentoID: c.DepartmentID}
}

func toPropertyTypeDTO(t domain.PropertyTypeEntry) propertyTypeDTO {
	return propertyTypeDTO{ID: t.ID, Nombre: t.Name}
}

func toAudioCategoryDTO(c domain.AudioCategory) audioCategoryDTO {
	return audioCategoryDTO{ID: c.ID, Codigo: c.Code, Descripcion: c.Description, InstruccionIA: c.AIInstruction}
}

type catalogNameRequest struct {
	Nombre string `json:"nombre"`
}

type createDepartmentRequest struct {
	Nombre string `json:"nombre"`
	PaisID int64  `json:"pais_id"`
}

type createCityRequest struct {
	Nombre         string `json:"nombre"`
	DepartamentoID int64  `json:"departamento_id"`
}

type audioCategoryRequest struct {
	Codigo        string `json:"codigo"`
	Descripcion   string `json:"descripcion"`
	InstruccionIA string `json:"instruccion_ia"`
}

// ---- пользователи ----

type registerRequest struct {
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	Genero          *string `json:"genero"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Telefono        *string `json:"telefono"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type profileDTO struct {
	ID              uuid.UUID `json:"id"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	FechaNacimiento *string   `json:"fecha_nacimiento,omitempty"`
	Genero          *string   `json:"genero,omitempty"`
	Email           string    `json:"email"`
	Telefono        *string   `json:"telefono,omitempty"`
}

type countersDTO struct {
	MisPropiedades int64 `json:"mis_propiedades"`
	Favoritos      int64 `json:"favoritos"`
}

func toProfileDTO(u domain.User) profileDTO {
	var birth *string
	if u.BirthDate != nil {
		s := u.BirthDate.Format("2006-01-02")
		birth = &s
	}
	return profileDTO{
		ID:              u.ID,
		Nombre:          u.FirstName,
		Apellido:        u.LastName,
		FechaNacimiento: birth,
		Genero:          u.Gender,
		Email:           u.Email,
		Telefono:        u.Phone,
	}
}

// ---- объявления ----

type createPropertyRequest struct {
	TipoPropiedadID int64    `json:"tipo_propiedad_id"`
	Titulo          string   `json:"titulo"`
	Descripcion     string   `json:"descripcion"`
	PrecioVenta     *int64   `json:"precio_venta"`
	PrecioAlquiler  *int64   `json:"precio_alquiler"`
	SuperficieTotal *float64 `json:"superficie_total"`
	Pais            string   `json:"pais"`
	Departamento    string   `json:"departamento"`
	Ciudad          string   `json:"ciudad"`
	Direccion       string   `json:"direccion"`
	Colonia         *string  `json:"colonia"`
	Latitud         float64  `json:"latitud"`
	Longitud        float64  `json:"longitud"`
	CodigoPostal    *string  `json:"codigo_postal"`
	Habitaciones    *int32   `json:"habitaciones"`
	Banos           *int32   `json:"banos"`
	OtrosDetalles   *string  `json:"otros_detalles"`
}

type updatePropertyRequest struct {
	Titulo          *string  `json:"titulo"`
	Descripcion     *string  `json:"descripcion"`
	TipoPropiedadID *int64   `json:"tipo_propiedad_id"`
	PrecioVenta     *int64   `json:"precio_venta"`
	PrecioAlquiler  *int64   `json:"precio_alquiler"`
	SuperficieTotal *float64 `json:"superficie_total"`
	Destacada       *bool    `json:"destacada"`
	Habitaciones    *int32   `json:"habitaciones"`
	Banos           *int32   `json:"banos"`
	OtrosDetalles   *string  `json:"otros_detalles"`
}

type updateStatusRequest struct {
	Estado string `json:"estado"`
}

type cardDTO struct {
	ID              uuid.UUID `json:"id"`
	Titulo          string    `json:"titulo"`
	Descripcion     string    `json:"descripcion"`
	Precio          *int64    `json:"precio"`
	TipoTransaccion string    `json:"tipo_transaccion"`
	Latitud         float64   `json:"latitud"`
	Longitud        float64   `json:"longitud"`
	Direccion       string    `json:"direccion"`
	Colonia         *string   `json:"colonia,omitempty"`
	Ciudad          string    `json:"ciudad"`
	TipoPropiedad   string    `json:"tipo_propiedad"`
	Habitaciones    *int32    `json:"habitaciones,omitempty"`
	Banos           *int32    `json:"banos,omitempty"`
	SuperficieTotal *float64  `json:"superficie_total,omitempty"`
	ImagenPrincipal *string   `json:"imagen_principal,omitempty"`
	Imagenes        []string  `json:"imagenes"`
}

func toCardDTO(c domain.ListingCard) cardDTO {
	return cardDTO{
		ID:              c.ID,
		Titulo:          c.Title,
		Descripcion:     c.Description,
		Precio:          c.Price,
		TipoTransaccion: c.TransactionType.String(),
		Latitud:         c.Latitude,
		Longitud:        c.Longitude,
		Direccion:       c.Address,
		Colonia:         c.Neighborhood,
		Ciudad:          c.CityName,
		TipoPropiedad:   c.PropertyType,
		Habitaciones:    c.Bedrooms,
		Banos:           c.Bathrooms,
		SuperficieTotal: c.TotalArea,
		ImagenPrincipal: c.MainImageURL,
		Imagenes:        c.ImageURLs,
	}
}

func toCardDTOs(items []domain.ListingCard) []cardDTO {
	return lo.Map(items, func(c domain.ListingCard, _ int) cardDTO {
		return toCardDTO(c)
	})
}

type ownedListingDTO struct {
	cardDTO
	Estado       string     `json:"estado"`
	Visitas      int64      `json:"visitas"`
	Destacada    bool       `json:"destacada"`
	Departamento *string    `json:"departamento,omitempty"`
	Pais         *string    `json:"pais,omitempty"`
	Favoritos    int64      `json:"favoritos"`
	CreadaEn     time.Time  `json:"creada_en"`
	PublicadaEn  *time.Time `json:"publicada_en,omitempty"`
	ExpiraEn     *time.Time `json:"expira_en,omitempty"`
}

func toOwnedListingDTO(l domain.OwnedListing) ownedListingDTO {
	return ownedListingDTO{
		cardDTO:      toCardDTO(l.ListingCard),
		Estado:       l.Status.String(),
		Visitas:      l.Visits,
		Destacada:    l.Featured,
		Departamento: l.DepartmentName,
		Pais:         l.CountryName,
		Favoritos:    l.FavoritesCount,
		CreadaEn:     l.CreatedAt,
		PublicadaEn:  l.PublishedAt,
		ExpiraEn:     l.ExpiresAt,
	}
}

type pagedDTO[T any] struct {
	Items     []T   `json:"items"`
	Total     int64 `json:"total"`
	Pagina    int32 `json:"pagina"`
	PorPagina int64 `json:"por_pagina"`
	Paginas   int64 `json:"paginas"`
}

type statsDTO struct {
	Visitas     int64      `json:"visitas"`
	Favoritos   int64      `json:"favoritos"`
	Imagenes    int64      `json:"imagenes"`
	CreadaEn    time.Time  `json:"creada_en"`
	PublicadaEn *time.Time `json:"publicada_en,omitempty"`
}

type detailsRequest struct {
	Habitaciones  *int32  `json:"habitaciones"`
	Banos         *int32  `json:"banos"`
	OtrosDetalles *string `json:"otros_detalles"`
}

type detailsDTO struct {
	Habitaciones  *int32  `json:"habitaciones,omitempty"`
	Banos         *int32  `json:"banos,omitempty"`
	OtrosDetalles *string `json:"otros_detalles,omitempty"`
}

type imageDTO struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Posicion int32  `json:"posicion"`
}

type updateImageRequest struct {
	URL      *string `json:"url"`
	Posicion *int32  `json:"posicion"`
}

type contactRequest struct {
	Nombre       string  `json:"nombre"`
	Telefono     *string `json:"telefono"`
	Email        *string `json:"email"`
	TipoContacto *string `json:"tipo_contacto"`
}

type contactDTO struct {
	ID           int64   `json:"id"`
	Nombre       string  `json:"nombre"`
	Telefono     *string `json:"telefono,omitempty"`
	Email        *string `json:"email,omitempty"`
	TipoContacto *string `json:"tipo_contacto,omitempty"`
}

// ---- локации ----

type registerLocationRequest struct {
	Pais         string  `json:"pais"`
	Departamento string  `json:"departamento"`
	Ciudad       string  `json:"ciudad"`
	Direccion    string  `json:"direccion"`
	Colonia      *string `json:"colonia"`
	Latitud      float64 `json:"latitud"`
	Longitud     float64 `json:"longitud"`
	CodigoPostal *string `json:"codigo_postal"`
}

type registerLocationResponse struct {
	UbicacionID    int64 `json:"ubicacion_id"`
	PaisID         int64 `json:"pais_id"`
	DepartamentoID int64 `json:"departamento_id"`
	CiudadID       int64 `json:"ciudad_id"`
}

type locationDTO struct {
	ID           int64   `json:"id"`
	Direccion    string  `json:"direccion"`
	Colonia      *string `json:"colonia,omitempty"`
	CiudadID     int64   `json:"ciudad_id"`
	Latitud      float64 `json:"latitud"`
	Longitud     float64 `json:"longitud"`
	CodigoPostal *string `json:"codigo_postal,omitempty"`
}

// ---- AI ----

type aiSearchRequest struct {
	Consulta  string `json:"consulta"`
	Pagina    int32  `json:"pagina"`
	PorPagina int32  `json:"por_pagina"`
}

type aiSearchResponse struct {
	Consulta string              `json:"consulta"`
	Filtros  domain.SearchFilter `json:"filtros"`
	Items    []cardDTO           `json:"items"`
}

type aiGenerateRequest struct {
	TextoBase    string  `json:"texto_base"`
	Latitud      float64 `json:"latitud"`
	Longitud     float64 `json:"longitud"`
	Pais         string  `json:"pais"`
	Departamento string  `json:"departamento"`
	Ciudad       string  `json:"ciudad"`
}

type aiGenerateResponse struct {
	TituloGenerado      string                    `json:"titulo_generado"`
	DescripcionGenerada string                    `json:"descripcion_generada"`
	Ubicacion           *registerLocationResponse `json:"ubicacion,omitempty"`
}

// ---- аудио ----

type createAudioJobRequest struct {
	CategoriaAudioID *int64     `json:"categoria_audio_id"`
	PropiedadID      *uuid.UUID `json:"propiedad_id"`
	AudioURL         string     `json:"audio_url"`
}

type updateAudioJobRequest struct {
	Transcripcion       *string `json:"transcripcion"`
	DescripcionGenerada *string `json:"descripcion_generada"`
}

type audioJobDTO struct {
	ID                  int64      `json:"id"`
	CategoriaAudioID    *int64     `json:"categoria_audio_id,omitempty"`
	PropiedadID         *uuid.UUID `json:"propiedad_id,omitempty"`
	AudioURL            string     `json:"audio_url"`
	Estado              string     `json:"estado"`
	Transcripcion       *string    `json:"transcripcion,omitempty"`
	DescripcionGenerada *string    `json:"descripcion_generada,omitempty"`
	Error               *string    `json:"error,omitempty"`
	CreadaEn            time.Time  `json:"creada_en"`
}

func toAudioJobDTO(j domain.AudioJob) audioJobDTO {
	return audioJobDTO{
		ID:                  j.ID,
		CategoriaAudioID:    j.AudioCategoryID,
		PropiedadID:         j.PropertyID,
		AudioURL:            j.AudioURL,
		Estado:              j.Status.String(),
		Transcripcion:       j.Transcript,
		DescripcionGenerada: j.GeneratedDescription,
		Error:               j.ErrorMessage,
		CreadaEn:            j.CreatedAt,
	}
}

// ---- избранное ----

type addFavoriteRequest struct {
	PropiedadID uuid.UUID `json:"propiedad_id"`
}
