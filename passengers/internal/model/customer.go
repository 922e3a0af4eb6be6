package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var validate = validator.New()

type Customer struct {
	FirstName  string    `json:"first_name" validate:"required"`
	LastName   string    `json:"last_name" validate:"required"`
	MiddleName string    `json:"middle_name"`
	BirthDate  time.Time `json:"birth_date"`
	Gender     Gender    `json:"gender" validate:"omitempty,oneof=male female"`
}

// CustomerBuilder collects the optional parts of a Customer. Names are fixed at
// construction.
type CustomerBuilder struct {
	customer Customer
}

func NewCustomerBuilder(firstName, lastName, middleName string) *CustomerBuilder {
	return &CustomerBuilder{
		customer: Customer{
			FirstName:  firstName,
			LastName:   lastName,
			MiddleName: middleName,
		},
	}
}

func (b *CustomerBuilder) WithBirthDate(birthDate time.Time) *CustomerBuilder {
	b.customer.BirthDate = birthDate
	return b
}

func (b *CustomerBuilder) WithGender(gender Gender) *CustomerBuilder {
	b.customer.Gender = gender
	return b
}

func (b *CustomerBuilder) Build() (Customer, error) {
	if err := validate.Struct(b.customer); err != nil {
		return Customer{}, err
	}
	return b.customer, nil
}
