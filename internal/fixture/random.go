// Package fixture holds helpers that hand values and preconditions to tests.
package fixture

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"sync"
	"time"
)

const randomIntBound = 100

var (
	ErrUnsupportedParameter = errors.New("unsupported_parameter")
	ErrInvalidTarget        = errors.New("invalid_target")
)

// Random resolves random numbers into test parameters. Struct fields tagged
// `random:""` are filled by Resolve: int fields get a value in [0, 100) and
// int64 fields get any value.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// NewRandomFromClock seeds the resolver with the current time.
func NewRandomFromClock() *Random {
	return NewRandom(time.Now().UnixNano())
}

func (r *Random) Int() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(randomIntBound)
}

func (r *Random) Int64() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(r.rnd.Uint64())
}

// Resolve fills every tagged field of the struct target points to. Untagged
// fields are left alone.
func (r *Random) Resolve(target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrInvalidTarget, target)
	}

	s := v.Elem()
	for i := 0; i < s.NumField(); i++ {
		field := s.Type().Field(i)
		if _, ok := field.Tag.Lookup("random"); !ok {
			continue
		}
		if !s.Field(i).CanSet() {
			return fmt.Errorf("%w: %s is not exported", ErrUnsupportedParameter, field.Name)
		}
		switch field.Type.Kind() {
		case reflect.Int:
			s.Field(i).SetInt(int64(r.Int()))
		case reflect.Int64:
			s.Field(i).SetInt(r.Int64())
		default:
			return fmt.Errorf("%w: %s %s", ErrUnsupportedParameter, field.Name, field.Type)
		}
	}
	return nil
}
