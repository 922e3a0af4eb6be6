package policy

// Passenger is a traveller as seen by the admission policy. Two passengers
// with the same name and VIP flag are the same member of a flight.
type Passenger struct {
	name string
	vip  bool
}

func NewPassenger(name string, vip bool) Passenger {
	return Passenger{name: name, vip: vip}
}

func (p Passenger) Name() string {
	return p.name
}

func (p Passenger) IsVIP() bool {
	return p.vip
}

func (p Passenger) String() string {
	if p.vip {
		return "VIP passenger " + p.name
	}
	return "Passenger " + p.name
}
