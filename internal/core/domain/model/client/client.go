// Package client models the read-only view of a customer that the planner needs:
// its identity and its position in the tenant's visiting order.
package client

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
)

var ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")

// Client is a customer with a round order number. Lower numbers are visited first.
// Round order numbers are expected to be unique per tenant but ties are tolerated.
type Client struct {
	id         kernel.UUID
	roundOrder int

	isConstructed bool
}

func NewClient(id kernel.UUID, roundOrder int) (Client, error) {
	if err := id.Validate(); err != nil {
		return Client{}, err
	}
	return Client{id: id, roundOrder: roundOrder, isConstructed: true}, nil
}

func (c Client) Validate() error {
	if !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

func (c Client) ID() kernel.UUID {
	return c.id
}

func (c Client) RoundOrder() int {
	return c.roundOrder
}
