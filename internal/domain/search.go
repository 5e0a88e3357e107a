package domain

// SearchFilter — структурированный фильтр поиска, извлечённый из запроса
// на естественном языке. JSON-теги повторяют контракт извлечения
// (ответ модели приходит с испанскими ключами).
//
// Все поля опциональны: nil означает «без ограничения». Ноль — валидное
// ограничение и не эквивалентен отсутствию значения.
type SearchFilter struct {
	PropertyType    *string          `json:"tipo_propiedad"`
	TransactionType *TransactionType `json:"tipo_transaccion"`
	PriceMin        *float64         `json:"precio_min"`
	PriceMax        *float64         `json:"precio_max"`
	AreaMin         *float64         `json:"superficie_min"`
	AreaMax         *float64         `json:"superficie_max"`
	BedroomsMin     *int32           `json:"habitaciones_min"`
	BathroomsMin    *int32           `json:"banos_min"`
	Amenities       []string         `json:"amenities"`
	LocationKeyword *string          `json:"ubicacion_palabra_clave"`
}

// IsEmpty сообщает, что фильтр не накладывает ни одного ограничения.
func (f SearchFilter) IsEmpty() bool {
	return f.PropertyType == nil &&
		f.TransactionType == nil &&
		f.PriceMin == nil &&
		f.PriceMax == nil &&
		f.AreaMin == nil &&
		f.AreaMax == nil &&
		f.BedroomsMin == nil &&
		f.BathroomsMin == nil &&
		len(f.Amenities) == 0 &&
		f.LocationKeyword == nil
}

// SearchResult — результат AI-поиска: найденные карточки плюс фильтры,
// по которым шла выборка.
type SearchResult struct {
	Query   string
	Filters SearchFilter
	Items   []ListingCard
}
