package policy

import (
	"errors"
	"fmt"

	"github.com/meetupaws/airport_boarding/flights/internal/model"
)

var ErrInconsistentManifest = errors.New("inconsistent_flight_manifest")

// FromManifest rebuilds a live flight by boarding the stored passengers again.
// A stored passenger the policy refuses means the manifest was not written by
// this package.
func FromManifest(m model.Flight) (Flight, error) {
	class, err := ParseClass(m.Class)
	if err != nil {
		return nil, err
	}
	f, err := New(class, m.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range m.Passengers {
		if !f.AddPassenger(NewPassenger(p.Name, p.VIP)) {
			return nil, fmt.Errorf("%w: %s on %s flight %s", ErrInconsistentManifest, p.Name, class, m.ID)
		}
	}
	return f, nil
}

func ToManifest(f Flight) model.Flight {
	passengers := make([]model.FlightPassenger, 0, f.Len())
	for _, p := range f.Passengers() {
		passengers = append(passengers, model.FlightPassenger{
			Name: p.Name(),
			VIP:  p.IsVIP(),
		})
	}
	return model.Flight{
		ID:         f.ID(),
		Class:      string(f.Class()),
		Passengers: passengers,
	}
}
