package fixture

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/meetupaws/airport_boarding/passengers/internal/model"
)

const (
	PassengerIdentifier = "123-456-789"
	PassengerName       = "John Smith"
)

// Passenger resolves the passenger most tests work with.
func Passenger() model.Passenger {
	return model.Passenger{
		Identifier: PassengerIdentifier,
		Name:       PassengerName,
	}
}

func ExpectedPassenger() model.Passenger {
	return model.Passenger{
		Name: PassengerName,
		Country: &model.Country{
			Name:     "USA",
			CodeName: "US",
		},
	}
}

type passengerBean struct {
	Identifier string `koanf:"identifier"`
	Name       string `koanf:"name"`
	Country    *struct {
		Name     string `koanf:"name"`
		CodeName string `koanf:"code_name"`
	} `koanf:"country"`
}

// LoadPassenger builds the passenger described under the "passenger" key of a
// YAML file.
func LoadPassenger(path string) (model.Passenger, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return model.Passenger{}, fmt.Errorf("failed to load %s: %w", path, err)
	}

	bean := passengerBean{}
	if err := k.Unmarshal("passenger", &bean); err != nil {
		return model.Passenger{}, fmt.Errorf("failed to unmarshal passenger: %w", err)
	}

	p := model.Passenger{
		Identifier: bean.Identifier,
		Name:       bean.Name,
	}
	if bean.Country != nil {
		p.Country = &model.Country{
			Name:     bean.Country.Name,
			CodeName: bean.Country.CodeName,
		}
	}
	return p, nil
}
