package types

import (
	"testing"
)

func TestAddressRoundTrip(t *testing.T) {
	complement := "Apto 301"
	addr := Address{
		CEP:          "50000-000",
		Street:       "Rua das Flores",
		Number:       "123",
		Complement:   &complement,
		Neighborhood: "Boa Vista",
	}

	value, err := addr.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded Address
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if decoded.Street != addr.Street || decoded.CEP != addr.CEP {
		t.Fatalf("round trip mismatch: %#v", decoded)
	}
	if decoded.Complement == nil || *decoded.Complement != complement {
		t.Fatalf("complement lost: %#v", decoded.Complement)
	}
}

func TestAddressScanNil(t *testing.T) {
	addr := Address{Street: "leftover"}
	if err := addr.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if addr.Street != "" {
		t.Fatalf("expected zeroed address, got %#v", addr)
	}
}

func TestAddressComplete(t *testing.T) {
	addr := Address{CEP: "50000-000", Street: "Rua A", Number: "1", Neighborhood: "Centro"}
	if !addr.Complete() {
		t.Fatalf("expected complete address")
	}

	addr.Street = "  "
	if addr.Complete() {
		t.Fatalf("blank street must not count as complete")
	}
}

func TestSpecificationsPreserveOrder(t *testing.T) {
	specs := Specifications{
		{Name: "Volume", Value: "600ml"},
		{Name: "Teor alcoólico", Value: "4.5%"},
	}

	value, err := specs.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded Specifications
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Name != "Volume" || decoded[1].Name != "Teor alcoólico" {
		t.Fatalf("order not preserved: %#v", decoded)
	}

	if v, ok := decoded.Get("Volume"); !ok || v != "600ml" {
		t.Fatalf("lookup failed: %q %v", v, ok)
	}
	if _, ok := decoded.Get("missing"); ok {
		t.Fatalf("expected miss for unknown name")
	}
}

func TestSpecificationsEmptyValue(t *testing.T) {
	var specs Specifications
	value, err := specs.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if value != nil {
		t.Fatalf("empty specifications should store NULL, got %v", value)
	}
}
