package policy

import (
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
)

// stepErrors collects the first failed assertion of a step so it can be
// returned to godog.
type stepErrors struct {
	err error
}

func (s *stepErrors) Errorf(format string, args ...interface{}) {
	if s.err == nil {
		s.err = fmt.Errorf(format, args...)
	}
}

type passengerPolicy struct {
	flight    Flight
	passenger Passenger
}

func (p *passengerPolicy) thereIsAFlight(class Class, id string) func() error {
	return func() error {
		f, err := New(class, id)
		p.flight = f
		return err
	}
}

func (p *passengerPolicy) weHaveAPassenger(name string, vip bool) func() error {
	return func() error {
		p.passenger = NewPassenger(name, vip)
		return nil
	}
}

func (p *passengerPolicy) canAddAndRemove() error {
	a := &stepErrors{}
	assert.True(a, p.flight.AddPassenger(p.passenger), "add")
	assert.Equal(a, 1, p.flight.Len())
	assert.True(a, p.flight.Contains(p.passenger))
	assert.True(a, p.flight.RemovePassenger(p.passenger), "remove")
	assert.Equal(a, 0, p.flight.Len())
	return a.err
}

func (p *passengerPolicy) canAddButNotRemove() error {
	a := &stepErrors{}
	assert.True(a, p.flight.AddPassenger(p.passenger), "add")
	assert.Equal(a, 1, p.flight.Len())
	assert.True(a, p.flight.Contains(p.passenger))
	assert.False(a, p.flight.RemovePassenger(p.passenger), "remove")
	assert.Equal(a, 1, p.flight.Len())
	return a.err
}

func (p *passengerPolicy) cannotAddOrRemove() error {
	a := &stepErrors{}
	assert.False(a, p.flight.AddPassenger(p.passenger), "add")
	assert.Equal(a, 0, p.flight.Len())
	assert.False(a, p.flight.RemovePassenger(p.passenger), "remove")
	assert.Equal(a, 0, p.flight.Len())
	return a.err
}

func (p *passengerPolicy) cannotAddMoreThanOnce() error {
	for i := 0; i < 10; i++ {
		p.flight.AddPassenger(p.passenger)
	}
	a := &stepErrors{}
	assert.Equal(a, 1, p.flight.Len())
	assert.True(a, p.flight.Contains(p.passenger))
	if p.flight.Len() > 0 {
		assert.Equal(a, p.passenger.Name(), p.flight.Passengers()[0].Name())
	}
	return a.err
}

func initializePassengerPolicy(ctx *godog.ScenarioContext) {
	p := &passengerPolicy{}

	ctx.Step(`^there is an economy flight$`, p.thereIsAFlight(ClassEconomy, "1"))
	ctx.Step(`^there is a business flight$`, p.thereIsAFlight(ClassBusiness, "2"))
	ctx.Step(`^there is a premium flight$`, p.thereIsAFlight(ClassPremium, "3"))
	ctx.Step(`^we have a regular passenger$`, p.weHaveAPassenger("Mike", false))
	ctx.Step(`^we have a VIP passenger$`, p.weHaveAPassenger("John", true))

	ctx.Step(`^you can add and remove him from an? (?:economy|premium) flight$`, p.canAddAndRemove)
	ctx.Step(`^you can add him but cannot remove him from an? (?:economy|business) flight$`, p.canAddButNotRemove)
	ctx.Step(`^you cannot add or remove him from an? (?:business|premium) flight$`, p.cannotAddOrRemove)
	ctx.Step(`^you cannot add a (?:regular|VIP) passenger to an? (?:economy|business|premium) flight more than once$`, p.cannotAddMoreThanOnce)
}

func TestPassengerPolicyFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializePassengerPolicy,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
