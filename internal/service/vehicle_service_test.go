package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"parking-service/internal/domain/parking"
)

func newVehicleService(store *memVehicleStore) *VehicleService {
	return NewVehicleService(store, zerolog.Nop())
}

func registerPayload(plate string) parking.RegisterVehiclePayload {
	return parking.RegisterVehiclePayload{
		LicensePlate: plate,
		OwnerName:    "Jordan Lee",
		OwnerEmail:   "driver@example.com",
		OwnerPhone:   "555-0100",
		Model:        "Corolla",
		Color:        "blue",
	}
}

func TestRegisterVehicle(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)

	vehicle, err := svc.Register(context.Background(), staffCaller(), registerPayload("ABC123"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if vehicle.Status != parking.VehicleRegistered {
		t.Fatalf("status=%q, want registered", vehicle.Status)
	}
	if vehicle.RegisteredBy != "staff-1" {
		t.Fatalf("registered_by=%q, want staff-1", vehicle.RegisteredBy)
	}
	if vehicle.ID == "" {
		t.Fatal("expected an id")
	}
}

func TestRegisterVehicleDuplicatePlate(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)

	if _, err := svc.Register(context.Background(), staffCaller(), registerPayload("ABC123")); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), staffCaller(), registerPayload("ABC123"))
	if !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("expected ErrDuplicatePlate, got %v", err)
	}
	if len(store.vehicles) != 1 {
		t.Fatalf("duplicate registration wrote a record: %d vehicles", len(store.vehicles))
	}
}

func TestRegisterVehicleNormalizesPlate(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)

	if _, err := svc.Register(context.Background(), staffCaller(), registerPayload("abc 123")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(context.Background(), staffCaller(), registerPayload("ABC-123"))
	if !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("normalized plates should collide, got %v", err)
	}
}

func TestRegisterVehicleUnauthorized(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)

	for _, caller := range []*parking.User{nil, plainCaller(), {ID: "x"}} {
		_, err := svc.Register(context.Background(), caller, registerPayload("ABC123"))
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("caller=%v: expected ErrUnauthorized, got %v", caller, err)
		}
	}
	if len(store.vehicles) != 0 {
		t.Fatal("unauthorized call wrote a record")
	}
}

func TestListVehiclesStatusFilter(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)
	ctx := context.Background()

	v1, _ := svc.Register(ctx, staffCaller(), registerPayload("AAA111"))
	if _, err := svc.Register(ctx, staffCaller(), registerPayload("BBB222")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.SetStatus(ctx, staffCaller(), v1.ID, "blocked", ""); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	blocked := "blocked"
	vehicles, err := svc.List(ctx, staffCaller(), &blocked)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].LicensePlate != "AAA111" {
		t.Fatalf("unexpected filtered list: %+v", vehicles)
	}

	all, err := svc.List(ctx, staffCaller(), nil)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(all))
	}
}

func TestListVehiclesRejectsUnknownStatus(t *testing.T) {
	svc := newVehicleService(&memVehicleStore{})

	bogus := "impounded"
	_, err := svc.List(context.Background(), staffCaller(), &bogus)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSetStatusUnknownVehicle(t *testing.T) {
	svc := newVehicleService(&memVehicleStore{})

	err := svc.SetStatus(context.Background(), staffCaller(), "missing", "pending", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)
	v, _ := svc.Register(context.Background(), staffCaller(), registerPayload("ABC123"))

	err := svc.SetStatus(context.Background(), staffCaller(), v.ID, "vanished", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSetStatusAnyTransition(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)
	ctx := context.Background()
	v, _ := svc.Register(ctx, staffCaller(), registerPayload("ABC123"))

	// No transition graph: every hop is legal.
	for _, status := range []string{"blocked", "pending", "registered", "blocked"} {
		if err := svc.SetStatus(ctx, staffCaller(), v.ID, status, "note"); err != nil {
			t.Fatalf("SetStatus(%s): %v", status, err)
		}
	}
}

func TestFindByPlate(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)
	ctx := context.Background()
	if _, err := svc.Register(ctx, staffCaller(), registerPayload("ABC123")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	found, err := svc.FindByPlate(ctx, staffCaller(), "abc 123")
	if err != nil {
		t.Fatalf("FindByPlate: %v", err)
	}
	if found == nil || found.LicensePlate != "ABC123" {
		t.Fatalf("unexpected result: %+v", found)
	}

	missing, err := svc.FindByPlate(ctx, staffCaller(), "ZZZ999")
	if err != nil {
		t.Fatalf("FindByPlate missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown plate, got %+v", missing)
	}
}

func TestListOwnedBy(t *testing.T) {
	store := &memVehicleStore{}
	svc := newVehicleService(store)
	ctx := context.Background()

	mine := registerPayload("AAA111")
	theirs := registerPayload("BBB222")
	theirs.OwnerEmail = "someone-else@example.com"
	if _, err := svc.Register(ctx, staffCaller(), mine); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, staffCaller(), theirs); err != nil {
		t.Fatalf("Register: %v", err)
	}

	vehicles, err := svc.ListOwnedBy(ctx, plainCaller())
	if err != nil {
		t.Fatalf("ListOwnedBy: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].LicensePlate != "AAA111" {
		t.Fatalf("ownership filter leaked records: %+v", vehicles)
	}

	if _, err := svc.ListOwnedBy(ctx, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for nil caller, got %v", err)
	}
}
