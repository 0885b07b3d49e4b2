package service

import (
	"context"
	"fmt"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
)

// Ledger is the durable account store. Implementations must apply balance
// deltas as single server-side statements and keep referral-edge creation
// idempotent on the referred id.
type Ledger interface {
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	Ensure(ctx context.Context, id int64, username, firstName, lastName string, referrerID *int64, referralBonus int) (isNew bool, bonusGranted bool, err error)
	UpdateProfile(ctx context.Context, id int64, username, firstName, lastName string) error
	AdjustBalance(ctx context.Context, id int64, delta int) error
	DebitBalance(ctx context.Context, id int64, amount int) (bool, error)
	SetPremium(ctx context.Context, id int64) error
	SetLanguage(ctx context.Context, id int64, lang models.Language) error
	CountReferrals(ctx context.Context, referrerID int64) (int, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// ReferralBonus is the credit granted to a referrer for each new account
// created through their link, once per referred account ever.
const ReferralBonus = 1

type AccountService struct {
	ledger Ledger
}

func NewAccountService(ledger Ledger) *AccountService {
	return &AccountService{ledger: ledger}
}

// Register creates the account on first contact and returns its current
// state. A referrer equal to the new account's own id is ignored. The bonus
// lands exactly once because the ledger keys it on the referral-edge insert.
func (s *AccountService) Register(ctx context.Context, id int64, username, firstName, lastName string, referrerID *int64) (acct *models.Account, isNew bool, bonusGranted bool, err error) {
	if referrerID != nil && (*referrerID == id || *referrerID == 0) {
		referrerID = nil
	}
	isNew, bonusGranted, err = s.ledger.Ensure(ctx, id, username, firstName, lastName, referrerID, ReferralBonus)
	if err != nil {
		return nil, false, false, fmt.Errorf("ensure account: %w", err)
	}
	acct, err = s.ledger.FindByID(ctx, id)
	if err != nil {
		return nil, false, false, fmt.Errorf("load account: %w", err)
	}
	return acct, isNew, bonusGranted, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*models.Account, error) {
	return s.ledger.FindByID(ctx, id)
}

func (s *AccountService) SetLanguage(ctx context.Context, id int64, lang models.Language) error {
	return s.ledger.SetLanguage(ctx, id, lang)
}

func (s *AccountService) ReferralCount(ctx context.Context, id int64) (int, error) {
	return s.ledger.CountReferrals(ctx, id)
}

func (s *AccountService) ListIDs(ctx context.Context) ([]int64, error) {
	return s.ledger.ListIDs(ctx)
}

func (s *AccountService) Stats(ctx context.Context) (models.Stats, error) {
	return s.ledger.Stats(ctx)
}
