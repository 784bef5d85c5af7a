package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/entity"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

const requisitionColumns = `id, requester_id, item_id, quantity, location_id, status, reviewer_id, reviewed_at, admin_note, created_at`

// RequisitionRepo adaptador PostgreSQL para requisiciones (usable con pool o tx).
// Sin DELETE: las requisiciones se conservan como rastro de auditoría.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

// Create persiste una requisición pending.
func (r *RequisitionRepo) Create(req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.RequesterID, req.ItemID, req.Quantity, req.LocationID,
		string(req.Status), req.ReviewerID, req.ReviewedAt, req.AdminNote, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert requisition: %w", err)
	}
	return nil
}

// GetByID obtiene una requisición por ID.
func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE id = $1`
	var req entity.Requisition
	err := scanRequisition(r.q.QueryRow(context.Background(), query, id), &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	return &req, nil
}

// List lista requisiciones, opcionalmente por estado, recientes primero.
func (r *RequisitionRepo) List(status entity.RequisitionStatus, limit, offset int) ([]*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, string(status))
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Requisition
	for rows.Next() {
		var req entity.Requisition
		if err := scanRequisition(rows, &req); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

// ClaimPending transición condicional pending -> status. El WHERE sobre el
// estado hace de compare-and-set: si otra revisión ya ganó, RowsAffected es 0
// y el caller traduce a ErrAlreadyReviewed.
func (r *RequisitionRepo) ClaimPending(id string, status entity.RequisitionStatus, reviewerID, note string, reviewedAt time.Time) (bool, error) {
	query := `
		UPDATE requisitions
		SET status = $2, reviewer_id = $3, admin_note = $4, reviewed_at = $5
		WHERE id = $1 AND status = 'pending'`
	cmd, err := r.q.Exec(context.Background(), query,
		id, string(status), reviewerID, note, reviewedAt,
	)
	if err != nil {
		return false, fmt.Errorf("claim requisition: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanRequisition(row pgx.Row, req *entity.Requisition) error {
	var status string
	if err := row.Scan(
		&req.ID, &req.RequesterID, &req.ItemID, &req.Quantity, &req.LocationID,
		&status, &req.ReviewerID, &req.ReviewedAt, &req.AdminNote, &req.CreatedAt,
	); err != nil {
		return err
	}
	req.Status = entity.RequisitionStatus(status)
	return nil
}
