package model

// Flight is the persisted manifest of a flight.
type Flight struct {
	ID         string            `json:"id"`
	Class      string            `json:"class"`
	Passengers []FlightPassenger `json:"passengers"`
	// Version counts the writes of the manifest. Zero means never stored.
	Version int64 `json:"-"`
}

type FlightPassenger struct {
	Name string `json:"name"`
	VIP  bool   `json:"vip"`
}
