package usecase

import (
	"context"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/dto"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

// LocationUseCase consultas de sedes (el CRUD maestro vive fuera del núcleo).
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// GetByID obtiene una sede.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.LocationResponse{ID: loc.ID, Name: loc.Name, Address: loc.Address}, nil
}

// List lista sedes paginadas.
func (uc *LocationUseCase) List(ctx context.Context, limit, offset int) ([]*dto.LocationResponse, error) {
	locs, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LocationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, &dto.LocationResponse{ID: l.ID, Name: l.Name, Address: l.Address})
	}
	return out, nil
}
