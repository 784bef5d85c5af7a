package repository

import (
	"time"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
)

// RequisitionRepository define el puerto de persistencia para Requisition.
// Las requisiciones nunca se borran (rastro de auditoría).
type RequisitionRepository interface {
	Create(req *entity.Requisition) error
	GetByID(id string) (*entity.Requisition, error)
	List(status entity.RequisitionStatus, limit, offset int) ([]*entity.Requisition, error)
	// ClaimPending transiciona pending -> status de forma condicional
	// (UPDATE ... WHERE status = 'pending'). Devuelve false si la fila ya no
	// estaba pending: así se detecta la doble revisión, incluso concurrente.
	ClaimPending(id string, status entity.RequisitionStatus, reviewerID, note string, reviewedAt time.Time) (bool, error)
}
