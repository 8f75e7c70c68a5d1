package kernel

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address did not come from NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress constructor")

// Address is the delivery destination of an order. It has no identity of its
// own and is embedded in the order by value.
//
//	addr, err := kernel.NewAddress("Seoul", "Teheran-ro 427", "06159")
type Address struct { //nolint:recvcheck //using for validation
	city    string
	street  string
	zipcode string
	guard   guard.ConstructorGuard
}

// NewAddress builds an Address. City, street and zipcode are trimmed and
// all three are required.
func NewAddress(city, street, zipcode string) (Address, error) {
	addr := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		addr.setCity(city),
		addr.setStreet(street),
		addr.setZipcode(zipcode),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate ensures the address was built by NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) City() string    { return a.city }
func (a Address) Street() string  { return a.street }
func (a Address) Zipcode() string { return a.zipcode }

// String joins the parts as "city street zipcode", the form shown on order
// details.
func (a Address) String() string {
	return a.city + " " + a.street + " " + a.zipcode
}

// IsEqual compares two addresses by value.
func (a Address) IsEqual(other Address) bool {
	return a.city == other.city && a.street == other.street && a.zipcode == other.zipcode
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setZipcode(zipcode string) error {
	zipcode = strings.TrimSpace(zipcode)
	if zipcode == "" {
		return errs.NewValueIsRequiredError("zipcode")
	}
	a.zipcode = zipcode
	return nil
}
