// Package policy holds the admission rules deciding who may board or leave a
// flight of each class.
package policy

import (
	"errors"
	"fmt"
)

var ErrUnknownClass = errors.New("unknown_flight_class")

type Class string

const (
	ClassEconomy  Class = "economy"
	ClassBusiness Class = "business"
	ClassPremium  Class = "premium"
)

func ParseClass(s string) (Class, error) {
	switch c := Class(s); c {
	case ClassEconomy, ClassBusiness, ClassPremium:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

type Flight interface {
	ID() string
	Class() Class
	// AddPassenger reports whether p became a member of the flight.
	AddPassenger(p Passenger) bool
	// RemovePassenger reports whether p was a member and was let go.
	RemovePassenger(p Passenger) bool
	Passengers() []Passenger
	Contains(p Passenger) bool
	Len() int
}

// New returns the flight variant for class.
func New(class Class, id string) (Flight, error) {
	switch class {
	case ClassEconomy:
		return NewEconomyFlight(id), nil
	case ClassBusiness:
		return NewBusinessFlight(id), nil
	case ClassPremium:
		return NewPremiumFlight(id), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
}

// passengerSet keeps members unique and in boarding order.
type passengerSet struct {
	id      string
	members map[Passenger]struct{}
	order   []Passenger
}

func newPassengerSet(id string) passengerSet {
	return passengerSet{
		id:      id,
		members: map[Passenger]struct{}{},
	}
}

func (s *passengerSet) ID() string {
	return s.id
}

func (s *passengerSet) Contains(p Passenger) bool {
	_, ok := s.members[p]
	return ok
}

func (s *passengerSet) Len() int {
	return len(s.order)
}

func (s *passengerSet) Passengers() []Passenger {
	return append([]Passenger(nil), s.order...)
}

func (s *passengerSet) add(p Passenger) bool {
	if s.Contains(p) {
		return false
	}
	s.members[p] = struct{}{}
	s.order = append(s.order, p)
	return true
}

func (s *passengerSet) remove(p Passenger) bool {
	if !s.Contains(p) {
		return false
	}
	delete(s.members, p)
	for i, m := range s.order {
		if m == p {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}
