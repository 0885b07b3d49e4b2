package models

import "time"

type Language string

const (
	LangUzbek   Language = "uz"
	LangRussian Language = "ru"
	LangEnglish Language = "en"
)

// ValidLanguage reports whether code is one of the supported language packs.
func ValidLanguage(code string) bool {
	switch Language(code) {
	case LangUzbek, LangRussian, LangEnglish:
		return true
	}
	return false
}

type PackageKind string

const (
	PackageSingleSlide PackageKind = "1_slide"
	PackageFiveSlides  PackageKind = "5_slides"
	PackageUnlimited   PackageKind = "vip_premium"
)

// Package is a purchasable unit: a fixed credit grant or the premium upgrade.
type Package struct {
	Kind    PackageKind
	PriceSo int // UZS
	Credits int // 0 for the premium package
	Premium bool
}

// Packages is the fixed pricing table. A package is applied only after manual
// payment confirmation; recording the payment is the only automatic step.
var Packages = map[PackageKind]Package{
	PackageSingleSlide: {Kind: PackageSingleSlide, PriceSo: 990, Credits: 1},
	PackageFiveSlides:  {Kind: PackageFiveSlides, PriceSo: 2999, Credits: 5},
	PackageUnlimited:   {Kind: PackageUnlimited, PriceSo: 5999, Premium: true},
}

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRejected = "rejected"
)

// DefaultBalance is the number of free generation credits granted on first contact.
const DefaultBalance = 2

type Account struct {
	ID         int64
	Username   string
	FirstName  string
	LastName   string
	Lang       Language
	IsPremium  bool
	Balance    int
	InvitedBy  *int64
	CreatedAt  time.Time
	LastActive time.Time
}

type ReferralEdge struct {
	ID         int64
	ReferrerID int64
	ReferredID int64
	CreatedAt  time.Time
}

type PaymentRecord struct {
	ID            int64
	UserID        int64
	Amount        int
	PackageKind   PackageKind
	ScreenshotRef string
	Status        string
	CreatedAt     time.Time
}

type Stats struct {
	TotalAccounts int
	TotalBalance  int
	TotalPremium  int
}

// Outline is the transient slide-deck representation between the model
// response and the encoded file.
type Outline struct {
	Slides []Slide `json:"slides"`
}

type Slide struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}
