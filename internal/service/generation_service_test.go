package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/models"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/pptx"
	"github.com/abdujalils571-glitch/Slide-Master-AI-Bot/internal/service"
)

const validResponse = "```json\n" +
	`{"slides":[{"title":"Intro","points":["one","two"]},{"title":"Body","points":["three"]}]}` +
	"\n```"

type fixture struct {
	ledger  *fakeLedger
	model   *fakeModel
	deliver *fakeDeliverer
	gen     *service.GenerationService
}

func newFixture(t *testing.T, balance int, premium bool) *fixture {
	t.Helper()
	ledger := newFakeLedger()
	ledger.addAccount(models.Account{ID: 1, Balance: balance, IsPremium: premium})
	model := &fakeModel{response: validResponse}
	deliver := &fakeDeliverer{}
	credits := service.NewCreditService(ledger, newFakePayments())
	encoder := pptx.NewEncoder(t.TempDir(), testLogger())
	gen := service.NewGenerationService(testLogger(), credits, model, encoder, deliver)
	return &fixture{ledger: ledger, model: model, deliver: deliver, gen: gen}
}

func (f *fixture) generate(t *testing.T, slideCount int) error {
	t.Helper()
	acct, err := f.ledger.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	return f.gen.Generate(context.Background(), acct, service.GenerationRequest{
		ChatID:     1,
		Topic:      "Solar energy",
		SlideCount: slideCount,
		Caption:    "done",
	})
}

func TestGenerateHappyPath(t *testing.T) {
	f := newFixture(t, 10, false)

	if err := f.generate(t, 7); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := f.ledger.balance(1); got != 3 {
		t.Fatalf("balance = %d, want 3", got)
	}
	if len(f.deliver.paths) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(f.deliver.paths))
	}
	path := f.deliver.paths[0]
	if filepath.Ext(path) != ".pptx" {
		t.Fatalf("delivered %q, want a .pptx file", path)
	}
	if !f.deliver.existedAt[0] {
		t.Fatal("delivered file did not exist at send time")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temp file not cleaned up: %v", err)
	}
	if f.deliver.captions[0] != "done" {
		t.Fatalf("caption = %q", f.deliver.captions[0])
	}
}

func TestGenerateInsufficientBalanceSkipsModel(t *testing.T) {
	f := newFixture(t, 2, false)

	err := f.generate(t, 7)
	if !errors.Is(err, service.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if f.model.callCount() != 0 {
		t.Fatalf("model called %d times on refused reserve", f.model.callCount())
	}
	if got := f.ledger.balance(1); got != 2 {
		t.Fatalf("balance = %d, want 2 untouched", got)
	}
	if len(f.deliver.paths) != 0 {
		t.Fatal("nothing should be delivered")
	}
}

func TestGenerateModelFailureRefunds(t *testing.T) {
	f := newFixture(t, 10, false)
	f.model.err = errors.New("upstream 500")

	err := f.generate(t, 7)
	if !errors.Is(err, service.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if got := f.ledger.balance(1); got != 10 {
		t.Fatalf("balance = %d, want full refund to 10", got)
	}
	if len(f.deliver.paths) != 0 {
		t.Fatal("nothing should be delivered")
	}
}

func TestGenerateMalformedOutlineKeepsDebit(t *testing.T) {
	f := newFixture(t, 10, false)
	f.model.response = "Sorry, I can't produce JSON for that."

	if err := f.generate(t, 7); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// The model did respond, so the debit stands and the user still gets a
	// plain-text file.
	if got := f.ledger.balance(1); got != 3 {
		t.Fatalf("balance = %d, want 3", got)
	}
	if len(f.deliver.paths) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(f.deliver.paths))
	}
	if filepath.Ext(f.deliver.paths[0]) != ".txt" {
		t.Fatalf("delivered %q, want a .txt fallback", f.deliver.paths[0])
	}
}

func TestGenerateEncodeFailureRefunds(t *testing.T) {
	f := newFixture(t, 10, false)
	encFail := &failingEncoder{}
	f.gen = service.NewGenerationService(testLogger(),
		service.NewCreditService(f.ledger, newFakePayments()),
		f.model, encFail, f.deliver)

	err := f.generate(t, 7)
	if !errors.Is(err, service.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if got := f.ledger.balance(1); got != 10 {
		t.Fatalf("balance = %d, want full refund to 10", got)
	}
	if len(f.deliver.paths) != 0 {
		t.Fatal("nothing should be delivered")
	}
}

func TestGenerateDeliveryFailureKeepsDebit(t *testing.T) {
	f := newFixture(t, 10, false)
	f.deliver.err = errors.New("chat not found")

	if err := f.generate(t, 7); err != nil {
		t.Fatalf("Generate after delivery failure = %v, want nil", err)
	}
	if got := f.ledger.balance(1); got != 3 {
		t.Fatalf("balance = %d, want 3 (no refund on delivery failure)", got)
	}
}

func TestGeneratePremiumZeroBalance(t *testing.T) {
	f := newFixture(t, 0, true)

	if err := f.generate(t, 15); err != nil {
		t.Fatalf("Generate for premium: %v", err)
	}
	if ops := f.ledger.balanceOps(1); ops != 0 {
		t.Fatalf("premium account saw %d balance operations, want 0", ops)
	}
	if len(f.deliver.paths) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(f.deliver.paths))
	}
}

func TestGenerateDeckMatchesRequestedSlides(t *testing.T) {
	f := newFixture(t, 10, false)
	var b strings.Builder
	b.WriteString(`{"slides":[`)
	for i := 0; i < 7; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"title":"S","points":["p"]}`)
	}
	b.WriteString(`]}`)
	f.model.response = b.String()

	if err := f.generate(t, 7); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !f.deliver.existedAt[0] {
		t.Fatal("deck missing at delivery time")
	}
}

type failingEncoder struct{}

func (failingEncoder) Encode(string, models.Outline, int64) (string, error) {
	return "", errors.New("disk full")
}

func (failingEncoder) Fallback(string, models.Outline, int64) (string, error) {
	return "", errors.New("disk full")
}
