package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
)

var (
	// ErrInsufficientBalance means the account cannot cover the requested
	// slide count. No debit has happened when this is returned.
	ErrInsufficientBalance = errors.New("insufficient balance")

	ErrUnknownPackage      = errors.New("unknown package")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentAlreadyFinal = errors.New("payment already resolved")
)

// PaymentLedger persists payment proofs and their manual resolution.
type PaymentLedger interface {
	Create(ctx context.Context, payment *models.PaymentRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.PaymentRecord, error)
	ListPending(ctx context.Context) ([]models.PaymentRecord, error)
	MarkStatus(ctx context.Context, id int64, status string) (bool, error)
}

// CreditService enforces the economic rules on top of the ledger: debit
// before the slow generation call, refund on failure, premium bypass, and the
// fixed package table applied on manual payment confirmation.
type CreditService struct {
	ledger   Ledger
	payments PaymentLedger
}

func NewCreditService(ledger Ledger, payments PaymentLedger) *CreditService {
	return &CreditService{ledger: ledger, payments: payments}
}

// Reserve debits slideCount credits up front. Debiting before the model call
// closes the check-then-act window: concurrent requests race on the guarded
// UPDATE, not on a stale balance read. Premium accounts never touch balance.
func (s *CreditService) Reserve(ctx context.Context, acct *models.Account, slideCount int) error {
	if acct.IsPremium {
		return nil
	}
	ok, err := s.ledger.DebitBalance(ctx, acct.ID, slideCount)
	if err != nil {
		return fmt.Errorf("reserve credits: %w", err)
	}
	if !ok {
		return ErrInsufficientBalance
	}
	return nil
}

// Release credits back exactly what Reserve took, after a downstream failure.
func (s *CreditService) Release(ctx context.Context, acct *models.Account, slideCount int) error {
	if acct.IsPremium {
		return nil
	}
	if err := s.ledger.AdjustBalance(ctx, acct.ID, slideCount); err != nil {
		return fmt.Errorf("release credits: %w", err)
	}
	return nil
}

// RecordPayment stores a submitted proof as pending. Nothing is credited
// here; an admin resolves the payment out of band.
func (s *CreditService) RecordPayment(ctx context.Context, userID int64, kind models.PackageKind, proofRef string) (int64, error) {
	pkg, ok := models.Packages[kind]
	if !ok {
		return 0, ErrUnknownPackage
	}
	record := &models.PaymentRecord{
		UserID:        userID,
		Amount:        pkg.PriceSo,
		PackageKind:   kind,
		ScreenshotRef: proofRef,
	}
	id, err := s.payments.Create(ctx, record)
	if err != nil {
		return 0, fmt.Errorf("record payment: %w", err)
	}
	return id, nil
}

func (s *CreditService) PendingPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	return s.payments.ListPending(ctx)
}

// ConfirmPayment applies the purchased package: credit grant for the slide
// packages, the premium flag for the unlimited one. The pending-to-paid
// transition is guarded, so confirming twice applies the package once.
func (s *CreditService) ConfirmPayment(ctx context.Context, paymentID int64) (*models.PaymentRecord, models.Package, error) {
	record, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, models.Package{}, fmt.Errorf("load payment: %w", err)
	}
	if record == nil {
		return nil, models.Package{}, ErrPaymentNotFound
	}
	pkg, ok := models.Packages[record.PackageKind]
	if !ok {
		return nil, models.Package{}, ErrUnknownPackage
	}

	moved, err := s.payments.MarkStatus(ctx, paymentID, models.PaymentPaid)
	if err != nil {
		return nil, models.Package{}, fmt.Errorf("mark payment paid: %w", err)
	}
	if !moved {
		return nil, models.Package{}, ErrPaymentAlreadyFinal
	}

	if pkg.Premium {
		if err := s.ledger.SetPremium(ctx, record.UserID); err != nil {
			return nil, models.Package{}, fmt.Errorf("apply premium: %w", err)
		}
	} else if pkg.Credits > 0 {
		if err := s.ledger.AdjustBalance(ctx, record.UserID, pkg.Credits); err != nil {
			return nil, models.Package{}, fmt.Errorf("apply credits: %w", err)
		}
	}

	record.Status = models.PaymentPaid
	return record, pkg, nil
}

func (s *CreditService) RejectPayment(ctx context.Context, paymentID int64) (*models.PaymentRecord, error) {
	record, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("load payment: %w", err)
	}
	if record == nil {
		return nil, ErrPaymentNotFound
	}
	moved, err := s.payments.MarkStatus(ctx, paymentID, models.PaymentRejected)
	if err != nil {
		return nil, fmt.Errorf("mark payment rejected: %w", err)
	}
	if !moved {
		return nil, ErrPaymentAlreadyFinal
	}
	record.Status = models.PaymentRejected
	return record, nil
}
