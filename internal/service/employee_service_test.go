package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
)

func TestCreateEmployeeDefaultsToActive(t *testing.T) {
	svc := NewEmployeeService(newMemEmployeeRepo(), noTx{}, nil)

	data, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeCode: "E1",
		FirstName:    "A",
		LastName:     "B",
		Email:        "e1@x.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if data.Status != domain.StatusActive {
		t.Fatalf("status = %s, want ACTIVE", data.Status)
	}
	if data.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
}

func TestCreateEmployeeDuplicateCode(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := NewEmployeeService(repo, noTx{}, nil)

	if _, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeCode: "E1", FirstName: "A", LastName: "B", Email: "e1@x.com",
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeCode: "E1", FirstName: "C", LastName: "D", Email: "e2@x.com",
	})
	appErr, ok := domain.AsError(err)
	if !ok || appErr.Code != domain.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	svc := NewEmployeeService(newMemEmployeeRepo(), noTx{}, nil)

	_, err := svc.Get(context.Background(), uuid.New())
	appErr, ok := domain.AsError(err)
	if !ok || appErr.Code != domain.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if appErr.Message != "Employee not found." {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}
