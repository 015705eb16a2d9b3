package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotUpdated is the sentinel stored in optional string profile fields until the
// user fills them in.
const NotUpdated = "Not updated"

// User is the account document persisted in the users collection.
// PasswordHash never leaves this package; Serialize is the only sanctioned
// projection of a User out of the core.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	ResetLink    string             `bson:"resetLink,omitempty" json:"-"`

	// Optional profile fields. Numeric fields stay nil until supplied.
	Aadhar        *int64 `bson:"aadhar" json:"aadhar"`
	Phone         *int64 `bson:"phone" json:"phone"`
	Phone2        *int64 `bson:"phone2" json:"phone2"`
	Category      string `bson:"category" json:"category"`
	OrgName       string `bson:"orgName" json:"orgName"`
	Address       string `bson:"address" json:"address"`
	AccountName   string `bson:"accountName" json:"accountName"`
	AccountNumber *int64 `bson:"accountNumber" json:"accountNumber"`
	IFSC          string `bson:"ifsc" json:"ifsc"`

	// Referral fields. ReferID is this user's own invite code, OnboardCode is
	// the ReferID of whoever referred them, Children lists the ids of users
	// this one referred, in referral order.
	ReferID     string   `bson:"referId" json:"referId"`
	Children    []string `bson:"children" json:"children"`
	OnboardCode string   `bson:"onboardCode,omitempty" json:"onboardCode,omitempty"`
	AffiliateID string   `bson:"affiliateId" json:"affiliateId"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// PublicProfile is the allow-listed view of a User returned by the API.
type PublicProfile struct {
	IFSC          string   `json:"ifsc"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         *int64   `json:"phone"`
	Phone2        *int64   `json:"phone2"`
	Aadhar        *int64   `json:"aadhar"`
	Address       string   `json:"address"`
	ReferID       string   `json:"referId"`
	OrgName       string   `json:"orgName"`
	Username      string   `json:"username"`
	Children      []string `json:"children"`
	Category      string   `json:"category"`
	AccountName   string   `json:"accountName"`
	AffiliateID   string   `json:"affiliateId"`
	OnboardCode   string   `json:"onboardCode"`
	AccountNumber *int64   `json:"accountNumber"`
}

// Serialize projects a User down to its public profile, dropping the password
// hash and internal bookkeeping.
func Serialize(u *User) PublicProfile {
	return PublicProfile{
		IFSC:          u.IFSC,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Phone2:        u.Phone2,
		Aadhar:        u.Aadhar,
		Address:       u.Address,
		ReferID:       u.ReferID,
		OrgName:       u.OrgName,
		Username:      u.Username,
		Children:      u.Children,
		Category:      u.Category,
		AccountName:   u.AccountName,
		AffiliateID:   u.AffiliateID,
		OnboardCode:   u.OnboardCode,
		AccountNumber: u.AccountNumber,
	}
}
