package policy

// PremiumFlight only deals with VIP passengers, who may board and leave.
type PremiumFlight struct {
	passengerSet
}

func NewPremiumFlight(id string) *PremiumFlight {
	return &PremiumFlight{passengerSet: newPassengerSet(id)}
}

func (f *PremiumFlight) Class() Class {
	return ClassPremium
}

func (f *PremiumFlight) AddPassenger(p Passenger) bool {
	if !p.IsVIP() {
		return false
	}
	return f.add(p)
}

func (f *PremiumFlight) RemovePassenger(p Passenger) bool {
	if !p.IsVIP() {
		return false
	}
	return f.remove(p)
}
