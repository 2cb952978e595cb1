// Package schema holds the declarative record definitions for every
// document kind the API accepts.
package schema

import (
	"errors"
	"strings"
)

var ErrUnknownKind = errors.New("unknown record kind")

// Kind names a record schema.
type Kind string

const (
	KindCustomer Kind = "Customer"
	KindShipment Kind = "Shipment"
	KindAuditLog Kind = "AuditLog"
	KindUser     Kind = "User"
	KindProduct  Kind = "Product"
)

var collections = map[Kind]string{
	KindCustomer: "customer",
	KindShipment: "shipment",
	KindAuditLog: "auditlog",
	KindUser:     "user",
	KindProduct:  "product",
}

// Collection returns the document collection that stores records of kind k.
func (k Kind) Collection() string {
	return collections[k]
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a kind from either its record name or its collection
// name, ignoring case and surrounding whitespace.
func ParseKind(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	for kind, collection := range collections {
		if strings.EqualFold(name, string(kind)) || strings.EqualFold(name, collection) {
			return kind, nil
		}
	}
	return "", ErrUnknownKind
}
