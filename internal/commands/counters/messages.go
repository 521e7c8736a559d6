package countercmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	incrementMessageType = "site.counters.increment"
	decrementMessageType = "site.counters.decrement"
)

// IncrementCounterCommand adds one to the counter named by ID.
type IncrementCounterCommand struct {
	ID string `json:"id"`
}

func (IncrementCounterCommand) Type() string { return incrementMessageType }

func (cmd IncrementCounterCommand) Validate() error {
	return validateID(cmd.ID)
}

// DecrementCounterCommand subtracts one from the counter named by ID.
type DecrementCounterCommand struct {
	ID string `json:"id"`
}

func (DecrementCounterCommand) Type() string { return decrementMessageType }

func (cmd DecrementCounterCommand) Validate() error {
	return validateID(cmd.ID)
}

func validateID(id string) error {
	return validation.Validate(strings.TrimSpace(id),
		validation.Required.ErrorObject(validation.NewError("site.counters.id_required", "counter id is required")),
		validation.RuneLength(1, 128),
	)
}
