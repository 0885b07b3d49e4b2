package service_test

import (
	"context"
	"testing"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/service"
)

func int64p(v int64) *int64 { return &v }

func TestRegisterNewAccount(t *testing.T) {
	ledger := newFakeLedger()
	accounts := service.NewAccountService(ledger)
	ctx := context.Background()

	acct, isNew, bonus, err := accounts.Register(ctx, 100, "alice", "Alice", "", nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !isNew {
		t.Fatal("isNew = false for first contact")
	}
	if bonus {
		t.Fatal("bonus granted without a referrer")
	}
	if acct.Balance != models.DefaultBalance {
		t.Fatalf("balance = %d, want %d", acct.Balance, models.DefaultBalance)
	}
	if acct.Lang != models.LangUzbek {
		t.Fatalf("lang = %q, want uz default", acct.Lang)
	}
}

func TestRegisterReferralBonusOnce(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(models.Account{ID: 1, Balance: 2})
	accounts := service.NewAccountService(ledger)
	ctx := context.Background()

	_, isNew, bonus, err := accounts.Register(ctx, 200, "bob", "Bob", "", int64p(1))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !isNew || !bonus {
		t.Fatalf("isNew = %v bonus = %v, want both true", isNew, bonus)
	}
	if got := ledger.balance(1); got != 2+service.ReferralBonus {
		t.Fatalf("referrer balance = %d, want %d", got, 2+service.ReferralBonus)
	}

	// Re-registration through the same link must not pay again.
	_, isNew, bonus, err = accounts.Register(ctx, 200, "bob", "Bob", "", int64p(1))
	if err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if isNew || bonus {
		t.Fatalf("isNew = %v bonus = %v on repeat contact, want both false", isNew, bonus)
	}
	if got := ledger.balance(1); got != 2+service.ReferralBonus {
		t.Fatalf("referrer balance = %d after repeat, want %d", got, 2+service.ReferralBonus)
	}

	count, err := accounts.ReferralCount(ctx, 1)
	if err != nil {
		t.Fatalf("ReferralCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("referral count = %d, want 1", count)
	}
}

func TestRegisterSelfReferralIgnored(t *testing.T) {
	ledger := newFakeLedger()
	accounts := service.NewAccountService(ledger)
	ctx := context.Background()

	acct, _, bonus, err := accounts.Register(ctx, 300, "carol", "Carol", "", int64p(300))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if bonus {
		t.Fatal("self-referral granted a bonus")
	}
	if acct.InvitedBy != nil {
		t.Fatalf("InvitedBy = %v, want nil for self-referral", *acct.InvitedBy)
	}
	if acct.Balance != models.DefaultBalance {
		t.Fatalf("balance = %d, want %d", acct.Balance, models.DefaultBalance)
	}
}

func TestRegisterUnknownReferrer(t *testing.T) {
	ledger := newFakeLedger()
	accounts := service.NewAccountService(ledger)
	ctx := context.Background()

	// Referrer 999 has no account; registration still succeeds, no bonus.
	_, isNew, bonus, err := accounts.Register(ctx, 400, "dave", "Dave", "", int64p(999))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !isNew {
		t.Fatal("isNew = false")
	}
	if bonus {
		t.Fatal("bonus granted for a nonexistent referrer")
	}
}

func TestSetLanguage(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(models.Account{ID: 1, Lang: models.LangUzbek})
	accounts := service.NewAccountService(ledger)
	ctx := context.Background()

	if err := accounts.SetLanguage(ctx, 1, models.LangRussian); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	acct, _ := accounts.Get(ctx, 1)
	if acct.Lang != models.LangRussian {
		t.Fatalf("lang = %q, want ru", acct.Lang)
	}
}

func TestStats(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(models.Account{ID: 1, Balance: 3})
	ledger.addAccount(models.Account{ID: 2, Balance: 2, IsPremium: true})
	accounts := service.NewAccountService(ledger)

	stats, err := accounts.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalAccounts != 2 || stats.TotalBalance != 5 || stats.TotalPremium != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}
