// Package category defines the closed set of clipboard content categories
// and the presentation identifiers the clients render for each one
package category

import (
	"encoding/json"
	"strings"

	perr "snipjar/internal/platform/errors"
)

// Category is a clipboard content kind, serialized by its wire name
type Category string

// Known categories in declaration order
const (
	Email             Category = "email"
	Phone             Category = "phone"
	Address           Category = "address"
	URL               Category = "url"
	CreditCard        Category = "creditCard"
	BankAccount       Category = "bankAccount"
	PassportNumber    Category = "passportNumber"
	DeclarationNumber Category = "declarationNumber"
	PostalCode        Category = "postalCode"
	Name              Category = "name"
	BirthDate         Category = "birthDate"
	TaxID             Category = "taxID"
	InsuranceNumber   Category = "insuranceNumber"
	VehiclePlate      Category = "vehiclePlate"
	IPAddress         Category = "ipAddress"
	MembershipNumber  Category = "membershipNumber"
	TrackingNumber    Category = "trackingNumber"
	ConfirmationCode  Category = "confirmationCode"
	MedicalRecord     Category = "medicalRecord"
	EmployeeID        Category = "employeeID"
	Image             Category = "image"
	Text              Category = "text"
)

// HighConfidence is the score at or above which clients flag a result as confident
const HighConfidence = 0.8

// Presentation holds the UI identifiers for a category
// Icon is a symbol name, Color is a named palette entry
type Presentation struct {
	Icon  string `json:"icon"  example:"envelope.fill"`
	Color string `json:"color" example:"blue"`
}

var all = []Category{
	Email, Phone, Address, URL, CreditCard, BankAccount, PassportNumber,
	DeclarationNumber, PostalCode, Name, BirthDate, TaxID, InsuranceNumber,
	VehiclePlate, IPAddress, MembershipNumber, TrackingNumber,
	ConfirmationCode, MedicalRecord, EmployeeID, Image, Text,
}

var presentations = map[Category]Presentation{
	Email:             {Icon: "envelope.fill", Color: "blue"},
	Phone:             {Icon: "phone.fill", Color: "green"},
	Address:           {Icon: "house.fill", Color: "orange"},
	URL:               {Icon: "link", Color: "purple"},
	CreditCard:        {Icon: "creditcard.fill", Color: "red"},
	BankAccount:       {Icon: "building.columns.fill", Color: "indigo"},
	PassportNumber:    {Icon: "doc.text.fill", Color: "brown"},
	DeclarationNumber: {Icon: "shippingbox.fill", Color: "teal"},
	PostalCode:        {Icon: "mappin.circle.fill", Color: "cyan"},
	Name:              {Icon: "person.fill", Color: "pink"},
	BirthDate:         {Icon: "calendar", Color: "mint"},
	TaxID:             {Icon: "percent", Color: "gray"},
	InsuranceNumber:   {Icon: "cross.case.fill", Color: "red"},
	VehiclePlate:      {Icon: "car.fill", Color: "yellow"},
	IPAddress:         {Icon: "network", Color: "blue"},
	MembershipNumber:  {Icon: "person.crop.rectangle.fill", Color: "purple"},
	TrackingNumber:    {Icon: "shippingbox", Color: "brown"},
	ConfirmationCode:  {Icon: "checkmark.seal.fill", Color: "green"},
	MedicalRecord:     {Icon: "heart.text.square.fill", Color: "red"},
	EmployeeID:        {Icon: "person.text.rectangle.fill", Color: "indigo"},
	Image:             {Icon: "photo.fill", Color: "orange"},
	Text:              {Icon: "doc.plaintext", Color: "gray"},
}

var byLowerName = func() map[string]Category {
	m := make(map[string]Category, len(all))
	for _, c := range all {
		m[strings.ToLower(string(c))] = c
	}
	return m
}()

// All returns every category in declaration order
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Parse maps a wire name to a Category
// matching is case-insensitive so "creditcard" and "creditCard" agree
func Parse(s string) (Category, error) {
	c, ok := byLowerName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", perr.InvalidArgf("unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := presentations[c]
	return ok
}

// String returns the wire name
func (c Category) String() string { return string(c) }

// Presentation returns icon and color for c, falling back to the text entry
func (c Category) Presentation() Presentation {
	if p, ok := presentations[c]; ok {
		return p
	}
	return presentations[Text]
}

// Icon returns the symbol name for c
func (c Category) Icon() string { return c.Presentation().Icon }

// Color returns the palette name for c
func (c Category) Color() string { return c.Presentation().Color }

// UnmarshalJSON accepts only known wire names
func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return perr.JSONErrf("category must be a string")
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
