package policy

// EconomyFlight admits everybody but never lets a VIP passenger go.
type EconomyFlight struct {
	passengerSet
}

func NewEconomyFlight(id string) *EconomyFlight {
	return &EconomyFlight{passengerSet: newPassengerSet(id)}
}

func (f *EconomyFlight) Class() Class {
	return ClassEconomy
}

func (f *EconomyFlight) AddPassenger(p Passenger) bool {
	return f.add(p)
}

func (f *EconomyFlight) RemovePassenger(p Passenger) bool {
	if p.IsVIP() {
		return false
	}
	return f.remove(p)
}
