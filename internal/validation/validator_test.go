package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/joao-fontenele/logistics-erp-api/internal/schema"
)

func newValidator() *Validator {
	return New(schema.NewRegistry())
}

func mustValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return verr
}

func decodeJSON(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var input map[string]any
	if err := dec.Decode(&input); err != nil {
		t.Fatalf("failed to decode input: %v", err)
	}
	return input
}

func TestValidate_CustomerDefaults(t *testing.T) {
	rec, err := newValidator().Validate(schema.KindCustomer, map[string]any{
		"name":  "Acme Co",
		"email": "a@acme.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := rec.Values()
	if values["name"] != "Acme Co" {
		t.Errorf("expected name 'Acme Co', got %v", values["name"])
	}
	if values["email"] != "a@acme.com" {
		t.Errorf("expected email 'a@acme.com', got %v", values["email"])
	}
	if values["country"] != "Indonesia" {
		t.Errorf("expected country 'Indonesia', got %v", values["country"])
	}
	if values["is_active"] != true {
		t.Errorf("expected is_active true, got %v", values["is_active"])
	}
	for _, field := range []string{"phone", "npwp", "address", "city", "notes"} {
		v, ok := rec.Get(field)
		if !ok {
			t.Errorf("expected %s to be declared", field)
		}
		if v != nil {
			t.Errorf("expected %s to be nil, got %v", field, v)
		}
	}
	if rec.Kind() != schema.KindCustomer {
		t.Errorf("expected kind Customer, got %s", rec.Kind())
	}
}

func TestValidate_ShipmentNegativePieces(t *testing.T) {
	_, err := newValidator().Validate(schema.KindShipment, map[string]any{
		"reference_no": "REF-1",
		"origin":       "Jakarta",
		"destination":  "Surabaya",
		"pieces":       -3,
	})

	verr := mustValidationError(t, err)
	if verr.Reason("pieces") != ReasonOutOfRange {
		t.Errorf("expected pieces out_of_range, got %q", verr.Reason("pieces"))
	}
	if len(verr.Errors) != 1 {
		t.Errorf("expected 1 error, got %d: %v", len(verr.Errors), verr.Errors)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	tests := []struct {
		name   string
		kind   schema.Kind
		input  map[string]any
		fields []string
	}{
		{"customer without name", schema.KindCustomer, map[string]any{"email": "x@y.z"}, []string{"name"}},
		{"customer with null name", schema.KindCustomer, map[string]any{"name": nil}, []string{"name"}},
		{"empty shipment", schema.KindShipment, map[string]any{}, []string{"reference_no", "origin", "destination"}},
		{"auditlog without entity", schema.KindAuditLog, map[string]any{"actor": "a", "action": "b"}, []string{"entity"}},
		{"product without price", schema.KindProduct, map[string]any{"title": "t", "category": "c"}, []string{"price"}},
		{"empty user", schema.KindUser, map[string]any{}, []string{"name", "email", "address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newValidator().Validate(tt.kind, tt.input)
			verr := mustValidationError(t, err)

			if len(verr.Errors) != len(tt.fields) {
				t.Fatalf("expected %d errors, got %d: %v", len(tt.fields), len(verr.Errors), verr.Errors)
			}
			for i, field := range tt.fields {
				if verr.Errors[i].Field != field {
					t.Errorf("error %d: expected field %s, got %s", i, field, verr.Errors[i].Field)
				}
				if verr.Errors[i].Reason != ReasonMissing {
					t.Errorf("error %d: expected reason missing, got %s", i, verr.Errors[i].Reason)
				}
			}
		})
	}
}

func TestValidate_NumericBounds(t *testing.T) {
	base := map[string]any{"name": "n", "email": "e", "address": "a"}

	tests := []struct {
		name    string
		age     any
		wantErr bool
	}{
		{"negative age", -1, true},
		{"age above maximum", 121, true},
		{"lower bound inclusive", 0, false},
		{"upper bound inclusive", 120, false},
		{"numeric string", "42", false},
		{"json number", json.Number("-1"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]any{"age": tt.age}
			for k, v := range base {
				input[k] = v
			}

			_, err := newValidator().Validate(schema.KindUser, input)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verr := mustValidationError(t, err)
			if verr.Reason("age") != ReasonOutOfRange {
				t.Errorf("expected age out_of_range, got %q", verr.Reason("age"))
			}
		})
	}

	t.Run("every shipment measure rejects negatives", func(t *testing.T) {
		_, err := newValidator().Validate(schema.KindShipment, map[string]any{
			"reference_no": "REF-2",
			"origin":       "Jakarta",
			"destination":  "Medan",
			"weight_kg":    -0.5,
			"volume_cbm":   -1,
			"price_idr":    "-100",
		})
		verr := mustValidationError(t, err)
		for _, field := range []string{"weight_kg", "volume_cbm", "price_idr"} {
			if verr.Reason(field) != ReasonOutOfRange {
				t.Errorf("expected %s out_of_range, got %q", field, verr.Reason(field))
			}
		}
	})
}

func TestValidate_Status(t *testing.T) {
	shipment := func(status any) map[string]any {
		return map[string]any{
			"reference_no": "REF-3",
			"origin":       "Bandung",
			"destination":  "Semarang",
			"status":       status,
		}
	}

	for _, status := range []string{"draft", "pending", "in_transit", "delivered", "cancelled", "archived"} {
		t.Run("accepts "+status, func(t *testing.T) {
			rec, err := newValidator().Validate(schema.KindShipment, shipment(status))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v, _ := rec.Get("status"); v != status {
				t.Errorf("expected status %s, got %v", status, v)
			}
		})
	}

	for _, status := range []string{"lost", "Pending", "IN_TRANSIT", ""} {
		t.Run("rejects "+status, func(t *testing.T) {
			_, err := newValidator().Validate(schema.KindShipment, shipment(status))
			verr := mustValidationError(t, err)
			if verr.Reason("status") != ReasonEnum {
				t.Errorf("expected status enum error, got %q", verr.Reason("status"))
			}
		})
	}

	t.Run("rejects non-string", func(t *testing.T) {
		_, err := newValidator().Validate(schema.KindShipment, shipment(3))
		verr := mustValidationError(t, err)
		if verr.Reason("status") != ReasonType {
			t.Errorf("expected status type error, got %q", verr.Reason("status"))
		}
	})

	t.Run("rejects null", func(t *testing.T) {
		_, err := newValidator().Validate(schema.KindShipment, shipment(nil))
		verr := mustValidationError(t, err)
		if !verr.Has("status") {
			t.Error("expected status to fail")
		}
	})

	t.Run("defaults to pending", func(t *testing.T) {
		input := shipment(nil)
		delete(input, "status")
		rec, err := newValidator().Validate(schema.KindShipment, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, _ := rec.Get("status"); v != "pending" {
			t.Errorf("expected pending, got %v", v)
		}
		if v, _ := rec.Get("pieces"); v != int64(1) {
			t.Errorf("expected pieces 1, got %v (%T)", v, v)
		}
	})
}

func TestValidate_AccumulatesEveryViolation(t *testing.T) {
	_, err := newValidator().Validate(schema.KindShipment, map[string]any{
		"reference_no": "   ",
		"destination":  42,
		"pickup_date":  "14/10/2026",
		"status":       "lost",
		"pieces":       2.5,
		"weight_kg":    -1,
	})
	verr := mustValidationError(t, err)

	want := []FieldError{
		{Field: "reference_no", Reason: ReasonEmpty},
		{Field: "origin", Reason: ReasonMissing},
		{Field: "destination", Reason: ReasonType},
		{Field: "pickup_date", Reason: ReasonType},
		{Field: "status", Reason: ReasonEnum},
		{Field: "pieces", Reason: ReasonType},
		{Field: "weight_kg", Reason: ReasonOutOfRange},
	}
	if len(verr.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(verr.Errors), verr.Errors)
	}
	for i, w := range want {
		got := verr.Errors[i]
		if got.Field != w.Field || got.Reason != w.Reason {
			t.Errorf("error %d: expected %s/%s, got %s/%s", i, w.Field, w.Reason, got.Field, got.Reason)
		}
		if got.Message == "" {
			t.Errorf("error %d: expected a message", i)
		}
	}

	if !strings.Contains(verr.Error(), "weight_kg") {
		t.Errorf("expected error string to mention weight_kg: %s", verr.Error())
	}
}

func TestValidate_Coercion(t *testing.T) {
	rec, err := newValidator().Validate(schema.KindShipment, decodeJSON(t, `{
		"reference_no": "REF-4",
		"origin": "Jakarta",
		"destination": "Surabaya",
		"pickup_date": "2026-10-14",
		"pieces": "12",
		"weight_kg": 1500,
		"volume_cbm": "3.25",
		"price_idr": 2500000.5
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := rec.Values()
	if values["pieces"] != int64(12) {
		t.Errorf("expected pieces int64(12), got %v (%T)", values["pieces"], values["pieces"])
	}
	if values["weight_kg"] != float64(1500) {
		t.Errorf("expected weight_kg 1500.0, got %v (%T)", values["weight_kg"], values["weight_kg"])
	}
	if values["volume_cbm"] != 3.25 {
		t.Errorf("expected volume_cbm 3.25, got %v", values["volume_cbm"])
	}
	if values["price_idr"] != 2500000.5 {
		t.Errorf("expected price_idr 2500000.5, got %v", values["price_idr"])
	}
	pickup, ok := values["pickup_date"].(time.Time)
	if !ok {
		t.Fatalf("expected pickup_date time.Time, got %T", values["pickup_date"])
	}
	if !pickup.Equal(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected pickup_date %v", pickup)
	}
	if values["delivery_date"] != nil {
		t.Errorf("expected nil delivery_date, got %v", values["delivery_date"])
	}

	t.Run("bool coercion", func(t *testing.T) {
		for input, want := range map[any]bool{"yes": true, "FALSE": false, 1: true, 0: false, true: true} {
			rec, err := newValidator().Validate(schema.KindCustomer, map[string]any{"name": "n", "is_active": input})
			if err != nil {
				t.Fatalf("%v: unexpected error: %v", input, err)
			}
			if v, _ := rec.Get("is_active"); v != want {
				t.Errorf("%v: expected %v, got %v", input, want, v)
			}
		}

		for _, input := range []any{"maybe", 2, 0.5} {
			_, err := newValidator().Validate(schema.KindCustomer, map[string]any{"name": "n", "is_active": input})
			verr := mustValidationError(t, err)
			if verr.Reason("is_active") != ReasonType {
				t.Errorf("%v: expected type error, got %q", input, verr.Reason("is_active"))
			}
		}
	})

	t.Run("text does not accept numbers", func(t *testing.T) {
		_, err := newValidator().Validate(schema.KindCustomer, map[string]any{"name": 7})
		verr := mustValidationError(t, err)
		if verr.Reason("name") != ReasonType {
			t.Errorf("expected name type error, got %q", verr.Reason("name"))
		}
	})

	t.Run("integers reject booleans", func(t *testing.T) {
		_, err := newValidator().Validate(schema.KindShipment, map[string]any{
			"reference_no": "REF-5", "origin": "a", "destination": "b", "pieces": true,
		})
		verr := mustValidationError(t, err)
		if verr.Reason("pieces") != ReasonType {
			t.Errorf("expected pieces type error, got %q", verr.Reason("pieces"))
		}
	})

	t.Run("non-nullable default rejects null", func(t *testing.T) {
		_, err := newValidator().Validate(schema.KindCustomer, map[string]any{"name": "n", "country": nil})
		verr := mustValidationError(t, err)
		if verr.Reason("country") != ReasonType {
			t.Errorf("expected country type error, got %q", verr.Reason("country"))
		}
	})

	t.Run("nullable default accepts null", func(t *testing.T) {
		rec, err := newValidator().Validate(schema.KindShipment, map[string]any{
			"reference_no": "REF-6", "origin": "a", "destination": "b", "pieces": nil,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, _ := rec.Get("pieces"); v != nil {
			t.Errorf("expected nil pieces, got %v", v)
		}
	})
}

func TestValidate_IgnoresUnknownFields(t *testing.T) {
	rec, err := newValidator().Validate(schema.KindCustomer, map[string]any{
		"name":       "Acme Co",
		"loyalty":    "gold",
		"created_by": 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := rec.Get("loyalty"); ok {
		t.Error("expected unknown field to be dropped")
	}
	if _, ok := rec.Document()["created_by"]; ok {
		t.Error("expected unknown field to be absent from the document")
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	_, err := newValidator().Validate(schema.Kind("Invoice"), map[string]any{})
	if !errors.Is(err, schema.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRecord_DocumentRoundTrip(t *testing.T) {
	v := newValidator()

	inputs := map[schema.Kind]map[string]any{
		schema.KindCustomer: {"name": "Acme Co", "email": "a@acme.com", "is_active": "no"},
		schema.KindShipment: decodeJSON(t, `{
			"reference_no": "REF-7",
			"customer_id": "c-1",
			"origin": "Jakarta",
			"destination": "Surabaya",
			"pickup_date": "2026-10-14",
			"delivery_date": "2026-10-16",
			"status": "in_transit",
			"pieces": 4,
			"weight_kg": 120.5
		}`),
		schema.KindAuditLog: decodeJSON(t, `{
			"actor": "ops",
			"action": "update",
			"entity": "shipment",
			"metadata": {"changes": ["status"], "attempt": 2}
		}`),
		schema.KindUser:    {"name": "Budi", "email": "b@x.id", "address": "Jl. Merdeka", "age": 30},
		schema.KindProduct: {"title": "Pallet", "price": 10, "category": "supplies"},
	}

	for kind, input := range inputs {
		t.Run(kind.String(), func(t *testing.T) {
			first, err := v.Validate(kind, input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			doc := first.Document()
			fields, _ := schema.NewRegistry().Lookup(kind)
			if len(doc) != len(fields) {
				t.Errorf("expected %d document keys, got %d", len(fields), len(doc))
			}

			second, err := v.Validate(kind, doc)
			if err != nil {
				t.Fatalf("re-validation failed: %v", err)
			}
			if !reflect.DeepEqual(first.Values(), second.Values()) {
				t.Errorf("round trip mismatch:\nfirst:  %#v\nsecond: %#v", first.Values(), second.Values())
			}
		})
	}
}

func TestRecord_Immutable(t *testing.T) {
	rec, err := newValidator().Validate(schema.KindAuditLog, map[string]any{
		"actor":    "ops",
		"action":   "delete",
		"entity":   "customer",
		"metadata": map[string]any{"reason": "duplicate"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := rec.Document()
	doc["actor"] = "mallory"
	doc["metadata"].(map[string]any)["reason"] = "tampered"

	values := rec.Values()
	values["action"] = "create"

	if v, _ := rec.Get("actor"); v != "ops" {
		t.Errorf("expected actor to stay ops, got %v", v)
	}
	if v, _ := rec.Get("action"); v != "delete" {
		t.Errorf("expected action to stay delete, got %v", v)
	}
	meta, _ := rec.Get("metadata")
	if meta.(map[string]any)["reason"] != "duplicate" {
		t.Errorf("expected metadata to be unchanged, got %v", meta)
	}

	fields := rec.Fields()
	fields[0] = "changed"
	if rec.Fields()[0] != "actor" {
		t.Errorf("expected fields to be unchanged, got %v", rec.Fields())
	}
}

func TestRecord_DocumentFormatsDates(t *testing.T) {
	rec, err := newValidator().Validate(schema.KindShipment, map[string]any{
		"reference_no": "REF-8",
		"origin":       "a",
		"destination":  "b",
		"pickup_date":  time.Date(2026, 10, 14, 17, 30, 0, 0, time.FixedZone("WIB", 7*3600)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := rec.Document()
	if doc["pickup_date"] != "2026-10-14" {
		t.Errorf("expected 2026-10-14, got %v", doc["pickup_date"])
	}
	if v, ok := doc["delivery_date"]; !ok || v != nil {
		t.Errorf("expected explicit null delivery_date, got %v (present %v)", v, ok)
	}
}
