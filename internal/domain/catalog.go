package domain

// Country — страна в географическом каталоге. Натуральный ключ — имя
// (сравнение без учёта регистра).
type Country struct {
	ID   int64
	Name string
}

// Department — департамент/штат внутри страны. Натуральный ключ —
// (имя в нижнем регистре, id страны).
type Department struct {
	ID        int64
	Name      string
	CountryID int64
}

// City — город внутри департамента. Натуральный ключ —
// (имя в нижнем регистре, id департамента).
type City struct {
	ID           int64
	Name         string
	DepartmentID int64
}

// LocationIDs — результат разрешения географической иерархии.
// Все три идентификатора заполнены при успехе, частичного результата не бывает.
type LocationIDs struct {
	CountryID    int64
	DepartmentID int64
	CityID       int64
}

// PropertyTypeEntry — справочник типов недвижимости (Apartamento, Casa, ...).
type PropertyTypeEntry struct {
	ID   int64
	Name string
}

// AudioCategory — категория аудио с инструкцией для AI-обработки.
type AudioCategory struct {
	ID            int64
	Code          string
	Description   string
	AIInstruction string
}
