package schema

import (
	"github.com/joao-fontenele/logistics-erp-api/internal/domain"
)

// Registry maps every record kind to its ordered field descriptors. It is
// built once and never mutated afterwards, so it is safe for concurrent use.
type Registry struct {
	kinds   []Kind
	schemas map[Kind][]Field
}

func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[Kind][]Field)}

	r.register(KindUser, []Field{
		requiredText("name", "Full name"),
		requiredText("email", "Email address"),
		requiredText("address", "Address"),
		{Name: "age", Type: FieldTypeInt, Nullable: true, Constraints: []Constraint{Min(0), Max(120)}, Description: "Age in years"},
		{Name: "is_active", Type: FieldTypeBool, Default: true, Description: "Whether user is active"},
	})

	r.register(KindProduct, []Field{
		requiredText("title", "Product title"),
		text("description", "Product description"),
		{Name: "price", Type: FieldTypeFloat, Required: true, Constraints: []Constraint{Min(0)}, Description: "Price in dollars"},
		requiredText("category", "Product category"),
		{Name: "in_stock", Type: FieldTypeBool, Default: true, Description: "Whether product is in stock"},
	})

	r.register(KindCustomer, []Field{
		requiredText("name", "Customer company or person name"),
		text("email", "Email address"),
		text("phone", "Phone number"),
		text("npwp", "Tax ID (NPWP)"),
		text("address", "Primary address"),
		text("city", "City"),
		{Name: "country", Type: FieldTypeText, Default: domain.DefaultCountry, Description: "Country"},
		text("notes", "Internal notes"),
		{Name: "is_active", Type: FieldTypeBool, Default: true, Description: "Active customer"},
	})

	statuses := domain.ShipmentStatuses()
	allowed := make([]string, len(statuses))
	for i, s := range statuses {
		allowed[i] = string(s)
	}

	r.register(KindShipment, []Field{
		{Name: "reference_no", Type: FieldTypeText, Required: true, Constraints: []Constraint{NotEmpty()}, Description: "Internal reference number"},
		text("customer_id", "Linked customer ID"),
		requiredText("origin", "Origin location"),
		requiredText("destination", "Destination location"),
		{Name: "pickup_date", Type: FieldTypeDate, Nullable: true, Description: "Pickup date"},
		{Name: "delivery_date", Type: FieldTypeDate, Nullable: true, Description: "Delivery date"},
		text("vehicle_type", "Truck type (CDD, Fuso, Tronton)"),
		{Name: "status", Type: FieldTypeEnum, Default: string(domain.ShipmentStatusPending), Constraints: []Constraint{OneOf(allowed...)}, Description: "Shipment status"},
		{Name: "pieces", Type: FieldTypeInt, Nullable: true, Default: int64(1), Constraints: []Constraint{Min(0)}, Description: "Number of pieces"},
		{Name: "weight_kg", Type: FieldTypeFloat, Nullable: true, Constraints: []Constraint{Min(0)}, Description: "Total weight in KG"},
		{Name: "volume_cbm", Type: FieldTypeFloat, Nullable: true, Constraints: []Constraint{Min(0)}, Description: "Total volume in CBM"},
		{Name: "price_idr", Type: FieldTypeFloat, Nullable: true, Constraints: []Constraint{Min(0)}, Description: "Total price in IDR"},
		text("remarks", "Additional notes"),
	})

	r.register(KindAuditLog, []Field{
		requiredText("actor", "Who performed the action"),
		requiredText("action", "Action description"),
		requiredText("entity", "Entity type (shipment, customer, etc.)"),
		text("entity_id", "Entity ID"),
		{Name: "metadata", Type: FieldTypeMap, Nullable: true, Description: "Additional metadata"},
	})

	return r
}

func (r *Registry) register(kind Kind, fields []Field) {
	r.kinds = append(r.kinds, kind)
	r.schemas[kind] = fields
}

// Lookup returns a copy of the field descriptors of kind.
func (r *Registry) Lookup(kind Kind) ([]Field, error) {
	fields, ok := r.schemas[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.clone()
	}
	return out, nil
}

// Kinds returns every registered kind in registration order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Names returns the collections exposed to the database viewer. The
// illustrative User and Product kinds are registered but not listed.
func (r *Registry) Names() []string {
	return []string{
		KindCustomer.Collection(),
		KindShipment.Collection(),
		KindAuditLog.Collection(),
	}
}
