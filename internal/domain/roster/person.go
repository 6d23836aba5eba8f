// Package roster contains the domain model of the campus registry:
// people (students and instructors), courses, and the enrollment
// relation between them. This is the core business logic - there are
// no external dependencies here.
package roster

import (
	"fmt"

	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSON (COMMON BASE)
// ══════════════════════════════════════════════════════════════════════════════

// Person holds the fields common to students and instructors. It is
// defined exactly once and embedded by the role entities.
//
// Email is a plain exported field: it has always been visible in the
// serialized form, so there is no encapsulation to preserve.
type Person struct {
	// Name is the person's display name. Never empty.
	Name string `json:"name"`

	// Age is the person's age in years. Never negative.
	Age int `json:"age"`

	// Email is the contact address, matching the local@domain shape.
	// Exposed in serialized output under the "email" key.
	Email string `json:"email"`
}

// newPerson validates the common fields and builds the base value.
// Identity fields are immutable after construction.
func newPerson(name string, age int, email string) (Person, error) {
	validName, err := shared.ValidateRequired(name, "name")
	if err != nil {
		return Person{}, err
	}

	validAge, err := shared.ValidateAge(age)
	if err != nil {
		return Person{}, err
	}

	validEmail, err := shared.ValidateEmail(email)
	if err != nil {
		return Person{}, err
	}

	return Person{
		Name:  validName,
		Age:   validAge,
		Email: validEmail,
	}, nil
}

// Validate re-checks the person invariants. Used by decoders, which
// receive fields from untrusted documents rather than the factory.
func (p Person) Validate() error {
	if _, err := shared.ValidateRequired(p.Name, "name"); err != nil {
		return err
	}
	if _, err := shared.ValidateAge(p.Age); err != nil {
		return err
	}
	if _, err := shared.ValidateEmail(p.Email); err != nil {
		return err
	}
	return nil
}

// Introduce returns a short greeting line for display surfaces.
func (p Person) Introduce() string {
	return fmt.Sprintf("Hello %s your age is %d", p.Name, p.Age)
}
