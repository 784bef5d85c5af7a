package repository

import "github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"

// LocationRepository puerto de consulta de sedes. El CRUD de datos maestros
// queda fuera de este núcleo; aquí solo se valida existencia y se lista.
type LocationRepository interface {
	GetByID(id string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
}

// CategoryRepository puerto de consulta de categorías.
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
}

// UnitRepository puerto de consulta de unidades de medida.
type UnitRepository interface {
	GetByID(id string) (*entity.Unit, error)
}
