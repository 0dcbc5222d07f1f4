package models

import (
	"strings"
	"time"
)

// Payment account statuses as persisted on the business document.
const (
	AccountStatusPending    = "pending"
	AccountStatusVerified   = "verified"
	AccountStatusRestricted = "restricted"
)

// DayHours is one weekday's declared pickup window, "15:04" local time.
type DayHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// BusinessHours maps a lowercase weekday name ("monday".."sunday") to its
// declared hours. A missing weekday means the business is closed that day.
type BusinessHours map[string]DayHours

// ForWeekday looks up the declared hours for a weekday.
func (h BusinessHours) ForWeekday(day time.Weekday) (DayHours, bool) {
	dh, ok := h[strings.ToLower(day.String())]
	return dh, ok
}

// PaymentAccount is the business's record with the payment platform.
// Invariant: Status == "verified" implies PayoutsEnabled and
// DetailsSubmitted are both true; Status == "restricted" implies the
// external account reported a disable reason.
type PaymentAccount struct {
	AccountID             string     `bson:"stripeConnectedAccountId,omitempty" json:"accountId,omitempty"`
	Status                string     `bson:"stripeAccountStatus,omitempty" json:"accountStatus,omitempty"`
	PayoutsEnabled        bool       `bson:"payoutsEnabled" json:"payoutsEnabled"`
	DetailsSubmitted      bool       `bson:"detailsSubmitted" json:"detailsSubmitted"`
	DisabledReason        string     `bson:"disabledReason,omitempty" json:"disabledReason,omitempty"`
	Requirements          []string   `bson:"-" json:"requirements,omitempty"`
	OnboardingCompletedAt *time.Time `bson:"stripeOnboardingCompletedAt,omitempty" json:"onboardingCompletedAt,omitempty"`
}

type BusinessSecurity struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Token        string `bson:"-" json:"token,omitempty"`
	TokenHash    string `bson:"tokenHash,omitempty" json:"-"`
}

// Business is one listed local business.
type Business struct {
	ID          string           `bson:"id" json:"id"`
	Name        string           `bson:"name" json:"name"`
	OwnerEmail  string           `bson:"ownerEmail" json:"ownerEmail,omitempty"`
	Category    string           `bson:"category" json:"category,omitempty"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Address     string           `bson:"address,omitempty" json:"address,omitempty"`
	Phone       string           `bson:"phone,omitempty" json:"phone,omitempty"`
	PhotoURL    string           `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Hours       BusinessHours    `bson:"hours,omitempty" json:"hours,omitempty"`
	Payment     PaymentAccount   `bson:",inline" json:"payment,omitzero"`
	Security    BusinessSecurity `bson:"security" json:"security,omitzero"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt,omitzero"`
}

type BusinessRegistration struct {
	Name        string        `json:"name" binding:"required"`
	OwnerEmail  string        `json:"ownerEmail" binding:"required,email"`
	Password    string        `json:"password" binding:"required,min=8"`
	Category    string        `json:"category" binding:"required"`
	Description string        `json:"description"`
	Address     string        `json:"address"`
	Phone       string        `json:"phone"`
	Hours       BusinessHours `json:"hours"`
}
