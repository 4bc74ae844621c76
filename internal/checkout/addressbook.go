package checkout

import (
	"errors"
	"fmt"

	"atelier-boutique/internal/domain"

	"github.com/google/uuid"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressInput carries the fields of a new shipping address. Constraints
// mirror the storefront form.
type AddressInput struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Phone    string `json:"phone" validate:"required,min=9"`
	Street   string `json:"street" validate:"required,min=5"`
	City     string `json:"city" validate:"required,min=2"`
	Region   string `json:"region" validate:"required,min=2"`
	ZipCode  string `json:"zip_code" validate:"required,min=4"`
}

// AddressBook holds the session's shipping addresses. The collection is
// append-only within a session and at most one address is selected at a
// time. Not safe for concurrent use; the owning session serializes access.
type AddressBook struct {
	addresses  []domain.Address
	selectedID string
}

// NewAddressBook creates an empty address book with nothing selected.
func NewAddressBook() *AddressBook {
	return &AddressBook{}
}

// Add validates the input, assigns a fresh id and appends the address. The
// first address added becomes the selected (default) address.
func (b *AddressBook) Add(in AddressInput) (*domain.Address, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	address := domain.Address{
		ID:        uuid.New().String(),
		FullName:  in.FullName,
		Phone:     in.Phone,
		Street:    in.Street,
		City:      in.City,
		Region:    in.Region,
		ZipCode:   in.ZipCode,
		IsDefault: len(b.addresses) == 0,
	}

	b.addresses = append(b.addresses, address)
	if b.selectedID == "" {
		b.selectedID = address.ID
	}

	return &address, nil
}

// Select marks the address with the given id as the shipping destination.
// Selecting an already-selected id is a no-op.
func (b *AddressBook) Select(id string) error {
	for i := range b.addresses {
		if b.addresses[i].ID == id {
			b.selectedID = id
			return nil
		}
	}
	return ErrAddressNotFound
}

// List returns the addresses in the order they were added.
func (b *AddressBook) List() []domain.Address {
	out := make([]domain.Address, len(b.addresses))
	copy(out, b.addresses)
	return out
}

// Selected returns the currently selected address, or nil when none is
// selected. The selection is held by id, so a missing referent degrades to
// none.
func (b *AddressBook) Selected() *domain.Address {
	if b.selectedID == "" {
		return nil
	}
	for i := range b.addresses {
		if b.addresses[i].ID == b.selectedID {
			address := b.addresses[i]
			return &address
		}
	}
	return nil
}
