package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
)

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLedger mirrors the repository contract: balance deltas are applied
// atomically under a lock, the debit is guarded, and referral edges are
// unique per referred id.
type fakeLedger struct {
	mu        sync.Mutex
	accounts  map[int64]*models.Account
	edges     map[int64]int64 // referred -> referrer
	balanceOp map[int64]int   // balance reads/writes per account
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts:  make(map[int64]*models.Account),
		edges:     make(map[int64]int64),
		balanceOp: make(map[int64]int),
	}
}

func (f *fakeLedger) addAccount(a models.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy := a
	f.accounts[a.ID] = &copy
}

func (f *fakeLedger) balance(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[id].Balance
}

func (f *fakeLedger) balanceOps(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balanceOp[id]
}

func (f *fakeLedger) FindByID(_ context.Context, id int64) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	copy := *a
	return &copy, nil
}

func (f *fakeLedger) Ensure(_ context.Context, id int64, username, firstName, lastName string, referrerID *int64, referralBonus int) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; ok {
		return false, false, nil
	}
	f.accounts[id] = &models.Account{
		ID:        id,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Lang:      models.LangUzbek,
		Balance:   models.DefaultBalance,
		InvitedBy: referrerID,
	}
	bonusGranted := false
	if referrerID != nil && *referrerID != id {
		if _, taken := f.edges[id]; !taken {
			f.edges[id] = *referrerID
			if ref, ok := f.accounts[*referrerID]; ok && referralBonus > 0 {
				ref.Balance += referralBonus
				f.balanceOp[ref.ID]++
				bonusGranted = true
			}
		}
	}
	return true, bonusGranted, nil
}

func (f *fakeLedger) UpdateProfile(_ context.Context, id int64, username, firstName, lastName string) error {
	return nil
}

func (f *fakeLedger) AdjustBalance(_ context.Context, id int64, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return errors.New("no such account")
	}
	a.Balance += delta
	f.balanceOp[id]++
	return nil
}

func (f *fakeLedger) DebitBalance(_ context.Context, id int64, amount int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return false, errors.New("no such account")
	}
	f.balanceOp[id]++
	if a.Balance < amount {
		return false, nil
	}
	a.Balance -= amount
	return true, nil
}

func (f *fakeLedger) SetPremium(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return errors.New("no such account")
	}
	a.IsPremium = true
	return nil
}

func (f *fakeLedger) SetLanguage(_ context.Context, id int64, lang models.Language) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return errors.New("no such account")
	}
	a.Lang = lang
	return nil
}

func (f *fakeLedger) CountReferrals(_ context.Context, referrerID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, ref := range f.edges {
		if ref == referrerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) ListIDs(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for id := range f.accounts {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeLedger) Stats(_ context.Context) (models.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s models.Stats
	for _, a := range f.accounts {
		s.TotalAccounts++
		s.TotalBalance += a.Balance
		if a.IsPremium {
			s.TotalPremium++
		}
	}
	return s, nil
}

type fakePayments struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]*models.PaymentRecord
}

func newFakePayments() *fakePayments {
	return &fakePayments{nextID: 1, records: make(map[int64]*models.PaymentRecord)}
}

func (f *fakePayments) Create(_ context.Context, payment *models.PaymentRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	payment.ID = id
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}
	copy := *payment
	f.records[id] = &copy
	return id, nil
}

func (f *fakePayments) GetByID(_ context.Context, id int64) (*models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	copy := *r
	return &copy, nil
}

func (f *fakePayments) ListPending(_ context.Context) ([]models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PaymentRecord
	for _, r := range f.records {
		if r.Status == models.PaymentPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePayments) MarkStatus(_ context.Context, id int64, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok || r.Status != models.PaymentPending {
		return false, nil
	}
	r.Status = status
	return true, nil
}

// fakeModel returns a canned response or error and counts calls.
type fakeModel struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (f *fakeModel) Complete(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeDeliverer records what was sent and whether the file existed at send
// time.
type fakeDeliverer struct {
	mu        sync.Mutex
	err       error
	paths     []string
	captions  []string
	existedAt []bool
}

func (f *fakeDeliverer) DeliverDocument(_ context.Context, _ int64, path, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	f.captions = append(f.captions, caption)
	f.existedAt = append(f.existedAt, fileExists(path))
	return f.err
}
