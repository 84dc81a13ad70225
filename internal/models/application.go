// internal/models/application.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationState is the persisted lifecycle status of an application.
type ApplicationState string

const (
	ApplicationStatePending   ApplicationState = "pending"
	ApplicationStateActivated ApplicationState = "activated"
	ApplicationStateInReview  ApplicationState = "in_review"
	ApplicationStateClosed    ApplicationState = "closed"
	ApplicationStateDeclined  ApplicationState = "declined"
)

var stateDescriptions = map[ApplicationState]string{
	ApplicationStatePending:   "Pending",
	ApplicationStateActivated: "Activated",
	ApplicationStateInReview:  "In Review",
	ApplicationStateClosed:    "Closed",
	ApplicationStateDeclined:  "Declined",
}

// Description returns the human readable label shown on documents.
func (s ApplicationState) Description() string {
	if d, ok := stateDescriptions[s]; ok {
		return d
	}
	return string(s)
}

type Application struct {
	ID              uuid.UUID        `json:"id"`
	ReferenceNumber string           `json:"referenceNumber"`
	State           ApplicationState `json:"state"`
	Person          Person           `json:"person"`
	Date            time.Time        `json:"date"`
	IsLegalEntity   bool             `json:"isLegalEntity"`
	LegalEntity     *LegalEntity     `json:"legalEntity,omitempty"`
	Products        []Product        `json:"products"`
	CurrentReview   *Review          `json:"currentReview,omitempty"`
}

type Person struct {
	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
}

// FullName joins first name and surname with a single space.
func (p Person) FullName() string {
	return p.FirstName + " " + p.Surname
}

// LegalEntity describes an organisational applicant.
type LegalEntity struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	TaxNumber          string `json:"taxNumber,omitempty"`
}

type Product struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Funds []Fund    `json:"funds"`
}

type Fund struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Fees   decimal.Decimal `json:"fees"`
}

// Review is the open manual review placed on an application.
type Review struct {
	ID       uuid.UUID              `json:"id"`
	Reason   string                 `json:"reason"`
	RaisedBy string                 `json:"raisedBy,omitempty"`
	RaisedAt time.Time              `json:"raisedAt"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Signature is the sign-off block printed at the bottom of documents.
type Signature struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}
