package model

import "fmt"

// Passenger is a registered traveller, keyed by Identifier.
type Passenger struct {
	Identifier string   `json:"identifier"`
	Name       string   `json:"name"`
	Country    *Country `json:"country,omitempty"`
}

type Country struct {
	Name     string `json:"name"`
	CodeName string `json:"code_name"`
}

func (p Passenger) String() string {
	return fmt.Sprintf("Passenger %s with identifier: %s", p.Name, p.Identifier)
}
