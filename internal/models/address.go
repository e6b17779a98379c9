package models

import "time"

type Address struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Area      string    `json:"area"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type NewAddress struct {
	FullName string `json:"full_name"`
	Area     string `json:"area"`
	City     string `json:"city"`
	State    string `json:"state"`
}

type selectionKind int

const (
	selectionNone selectionKind = iota
	selectionAddress
	selectionNew
)

// AddressSelection is the checkout form's address choice: nothing chosen,
// an existing address, or a request to add a new one.
type AddressSelection struct {
	kind    selectionKind
	address Address
}

func NoSelection() AddressSelection {
	return AddressSelection{kind: selectionNone}
}

func Selected(a Address) AddressSelection {
	return AddressSelection{kind: selectionAddress, address: a}
}

func RequestingNew() AddressSelection {
	return AddressSelection{kind: selectionNew}
}

// Address returns the chosen address; ok is false unless an address is selected.
func (s AddressSelection) Address() (Address, bool) {
	if s.kind != selectionAddress {
		return Address{}, false
	}
	return s.address, true
}

func (s AddressSelection) IsRequestingNew() bool {
	return s.kind == selectionNew
}

func (s AddressSelection) String() string {
	switch s.kind {
	case selectionAddress:
		return "selected:" + s.address.ID
	case selectionNew:
		return "requesting_new"
	default:
		return "none"
	}
}
