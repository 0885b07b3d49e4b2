package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) DB() *sql.DB {
	return r.db
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	const query = `
SELECT id, COALESCE(username, ''), COALESCE(first_name, ''), COALESCE(last_name, ''), lang, is_premium, balance, invited_by, created_at, last_active
FROM accounts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	var a models.Account
	var premium int
	var invitedBy sql.NullInt64
	if err := row.Scan(&a.ID, &a.Username, &a.FirstName, &a.LastName, &a.Lang, &premium, &a.Balance, &invitedBy, &a.CreatedAt, &a.LastActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.IsPremium = premium != 0
	if invitedBy.Valid {
		a.InvitedBy = &invitedBy.Int64
	}
	return &a, nil
}

// Ensure inserts the account on first contact with the default balance. When
// the row already exists it touches last_active and reports isNew=false. For
// a brand-new account with a referrer, the referral edge and the referrer
// bonus land in the same transaction; the unique referred_id makes redelivery
// of the same creation event a no-op, so the bonus is granted at most once.
func (r *AccountRepository) Ensure(ctx context.Context, id int64, username, firstName, lastName string, referrerID *int64, referralBonus int) (isNew bool, bonusGranted bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const insertAccount = `
INSERT IGNORE INTO accounts (id, username, first_name, last_name, balance, invited_by)
VALUES (?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?, ?)`
	res, err := tx.ExecContext(ctx, insertAccount, id, username, firstName, lastName, models.DefaultBalance, referrerID)
	if err != nil {
		return false, false, fmt.Errorf("insert account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, false, fmt.Errorf("account rows affected: %w", err)
	}

	if affected == 0 {
		if _, err := tx.ExecContext(ctx, `UPDATE accounts SET last_active = NOW() WHERE id = ?`, id); err != nil {
			return false, false, fmt.Errorf("touch last_active: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, false, fmt.Errorf("commit ensure: %w", err)
		}
		return false, false, nil
	}

	if referrerID != nil && *referrerID != id {
		const insertEdge = `INSERT IGNORE INTO referrals (referrer_id, referred_id) VALUES (?, ?)`
		res, err := tx.ExecContext(ctx, insertEdge, *referrerID, id)
		if err != nil {
			return false, false, fmt.Errorf("insert referral: %w", err)
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return false, false, fmt.Errorf("referral rows affected: %w", err)
		}
		if inserted > 0 && referralBonus > 0 {
			// The link may carry an id that never started the bot; the
			// UPDATE hits zero rows then and no bonus is reported.
			res, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = balance + ? WHERE id = ?`, referralBonus, *referrerID)
			if err != nil {
				return false, false, fmt.Errorf("grant referral bonus: %w", err)
			}
			credited, err := res.RowsAffected()
			if err != nil {
				return false, false, fmt.Errorf("bonus rows affected: %w", err)
			}
			bonusGranted = credited > 0
		}
	}

	if err := tx.Commit(); err != nil {
		return false, false, fmt.Errorf("commit ensure: %w", err)
	}
	return true, bonusGranted, nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id int64, username, firstName, lastName string) error {
	const query = `
UPDATE accounts SET username = NULLIF(?, ''), first_name = NULLIF(?, ''), last_name = NULLIF(?, ''), last_active = NOW()
WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, username, firstName, lastName, id); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// AdjustBalance applies the delta server-side in one statement; callers are
// responsible for keeping the result non-negative.
func (r *AccountRepository) AdjustBalance(ctx context.Context, id int64, delta int) error {
	const query = `UPDATE accounts SET balance = balance + ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, delta, id); err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}
	return nil
}

// DebitBalance subtracts amount only when the balance covers it. The guard in
// the WHERE clause serializes concurrent debits for the same account without
// a round trip, so a double-tapped request cannot overdraw.
func (r *AccountRepository) DebitBalance(ctx context.Context, id int64, amount int) (bool, error) {
	const query = `UPDATE accounts SET balance = balance - ? WHERE id = ? AND balance >= ?`
	res, err := r.db.ExecContext(ctx, query, amount, id, amount)
	if err != nil {
		return false, fmt.Errorf("debit balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("debit rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *AccountRepository) SetPremium(ctx context.Context, id int64) error {
	const query = `UPDATE accounts SET is_premium = 1 WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("set premium: %w", err)
	}
	return nil
}

func (r *AccountRepository) SetLanguage(ctx context.Context, id int64, lang models.Language) error {
	const query = `UPDATE accounts SET lang = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, string(lang), id); err != nil {
		return fmt.Errorf("set language: %w", err)
	}
	return nil
}

func (r *AccountRepository) CountReferrals(ctx context.Context, referrerID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM referrals WHERE referrer_id = ?`
	row := r.db.QueryRowContext(ctx, query, referrerID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count referrals: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) ListIDs(ctx context.Context) ([]int64, error) {
	const query = `SELECT id FROM accounts`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list account ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan account id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *AccountRepository) Stats(ctx context.Context) (models.Stats, error) {
	const query = `
SELECT COUNT(*), COALESCE(SUM(balance), 0), COALESCE(SUM(is_premium), 0) FROM accounts`
	row := r.db.QueryRowContext(ctx, query)
	var s models.Stats
	if err := row.Scan(&s.TotalAccounts, &s.TotalBalance, &s.TotalPremium); err != nil {
		return models.Stats{}, fmt.Errorf("aggregate stats: %w", err)
	}
	return s, nil
}
