package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.PaymentRecord) (int64, error) {
	const query = `
INSERT INTO payments (user_id, amount, package_type, screenshot_ref, status)
VALUES (?, ?, ?, ?, ?)`
	status := payment.Status
	if status == "" {
		status = models.PaymentPending
	}
	res, err := r.db.ExecContext(ctx, query, payment.UserID, payment.Amount, string(payment.PackageKind), payment.ScreenshotRef, status)
	if err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("payment last insert id: %w", err)
	}
	payment.ID = id
	payment.Status = status
	return id, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.PaymentRecord, error) {
	const query = `
SELECT id, user_id, amount, package_type, COALESCE(screenshot_ref, ''), status, created_at
FROM payments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	var p models.PaymentRecord
	var kind string
	if err := row.Scan(&p.ID, &p.UserID, &p.Amount, &kind, &p.ScreenshotRef, &p.Status, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	p.PackageKind = models.PackageKind(kind)
	return &p, nil
}

func (r *PaymentRepository) ListPending(ctx context.Context) ([]models.PaymentRecord, error) {
	const query = `
SELECT id, user_id, amount, package_type, COALESCE(screenshot_ref, ''), status, created_at
FROM payments WHERE status = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, models.PaymentPending)
	if err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}
	defer rows.Close()

	var payments []models.PaymentRecord
	for rows.Next() {
		var p models.PaymentRecord
		var kind string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Amount, &kind, &p.ScreenshotRef, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending payment: %w", err)
		}
		p.PackageKind = models.PackageKind(kind)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// MarkStatus transitions a payment out of pending exactly once; a second
// confirmation attempt affects no rows.
func (r *PaymentRepository) MarkStatus(ctx context.Context, id int64, status string) (bool, error) {
	const query = `UPDATE payments SET status = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query, status, id, models.PaymentPending)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("payment rows affected: %w", err)
	}
	return affected > 0, nil
}
