package domain

import (
	"time"

	"github.com/google/uuid"
)

// Property — доменная сущность объявления о недвижимости.
// Цены указаны в USD; заполнена хотя бы одна из SalePrice/RentPrice.
type Property struct {
	ID             uuid.UUID
	OwnerUserID    uuid.UUID
	PropertyTypeID int64
	LocationID     int64
	Title          string
	Description    string
	SalePrice      *int64
	RentPrice      *int64
	TotalArea      *float64
	Status         PublicationStatus
	Visits         int64
	Featured       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	PublishedAt    *time.Time
	ExpiresAt      *time.Time
}

// PublicationStatus — статус публикации объявления.
type PublicationStatus string

const (
	StatusActive   PublicationStatus = "activa"
	StatusPaused   PublicationStatus = "pausada"
	StatusDraft    PublicationStatus = "borrador"
	StatusArchived PublicationStatus = "archivada"
)

func (s PublicationStatus) String() string {
	return string(s)
}

// Valid сообщает, входит ли статус в допустимый набор.
func (s PublicationStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusDraft, StatusArchived:
		return true
	}
	return false
}

// TransactionType — тип сделки. Выводится из заполненности цен:
// есть SalePrice — Venta, иначе Alquiler.
type TransactionType string

const (
	TransactionSale TransactionType = "Venta"
	TransactionRent TransactionType = "Alquiler"
)

func (t TransactionType) String() string {
	return string(t)
}

// PropertyDetails — дополнительные характеристики объявления.
type PropertyDetails struct {
	ID           int64
	PropertyID   uuid.UUID
	Bedrooms     *int32
	Bathrooms    *int32
	OtherDetails *string
}

// PropertyLocation — точка расположения объявления, ссылается на город
// из географического каталога.
type PropertyLocation struct {
	ID           int64
	Address      string
	Neighborhood *string
	CityID       int64
	Latitude     float64
	Longitude    float64
	PostalCode   *string
}

// PropertyImage — изображение объявления; Position задаёт порядок показа.
type PropertyImage struct {
	ID         int64
	PropertyID uuid.UUID
	URL        string
	Position   int32
	CreatedAt  time.Time
}

// ImageUpdate — частичное обновление изображения; nil-поле не меняется.
type ImageUpdate struct {
	URL      *string
	Position *int32
}

// PropertyContact — контакт, привязанный к объявлению.
type PropertyContact struct {
	ID          int64
	PropertyID  uuid.UUID
	Name        string
	Phone       *string
	Email       *string
	ContactType *string
}

// ListingCard — обогащённая карточка объявления для публичных выборок:
// объединяет объявление, тип, локацию, детали и изображения.
type ListingCard struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Price           *int64
	TransactionType TransactionType
	Latitude        float64
	Longitude       float64
	Address         string
	Neighborhood    *string
	CityName        string
	PropertyType    string
	Bedrooms        *int32
	Bathrooms       *int32
	TotalArea       *float64
	MainImageURL    *string
	ImageURLs       []string
}

// OwnedListing — строка выборки «мои объявления» с публикационными полями.
type OwnedListing struct {
	ListingCard
	Status         PublicationStatus
	Visits         int64
	Featured       bool
	DepartmentName *string
	CountryName    *string
	FavoritesCount int64
	CreatedAt      time.Time
	PublishedAt    *time.Time
	ExpiresAt      *time.Time
}

// PropertyStats — статистика одного объявления.
type PropertyStats struct {
	Visits         int64
	FavoritesCount int64
	ImagesCount    int64
	CreatedAt      time.Time
	PublishedAt    *time.Time
}

// PropertyUpdate — частичное обновление объявления. nil означает
// «поле не менять»; для цен обёртка PriceField дополнительно различает
// запись значения и сброс в NULL.
type PropertyUpdate struct {
	Title          *string
	Description    *string
	PropertyTypeID *int64
	SalePrice      *PriceField
	RentPrice      *PriceField
	TotalArea      *float64
	Featured       *bool
}

// PriceField — цена в обновлении; Amount == nil означает сброс в NULL.
type PriceField struct {
	Amount *int64
}

// Value возвращает значение для записи в базу.
func (f *PriceField) Value() *int64 {
	if f == nil {
		return nil
	}
	return f.Amount
}

// OwnedFilter — фильтр выборки «мои объявления».
type OwnedFilter struct {
	OwnerUserID  uuid.UUID
	Status       *PublicationStatus
	PropertyType *string
}
