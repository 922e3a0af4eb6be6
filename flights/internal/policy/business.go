package policy

// BusinessFlight only admits VIP passengers and never removes anyone.
type BusinessFlight struct {
	passengerSet
}

func NewBusinessFlight(id string) *BusinessFlight {
	return &BusinessFlight{passengerSet: newPassengerSet(id)}
}

func (f *BusinessFlight) Class() Class {
	return ClassBusiness
}

func (f *BusinessFlight) AddPassenger(p Passenger) bool {
	if !p.IsVIP() {
		return false
	}
	return f.add(p)
}

func (f *BusinessFlight) RemovePassenger(p Passenger) bool {
	return false
}
