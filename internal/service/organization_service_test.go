package service

import (
	"context"
	"testing"

	"github.com/localite/user-service/internal/domain"
)

func newOrgFixture() (*OrganizationService, *memUserRepo, *memOrgRepo) {
	users := newMemUserRepo()
	orgs := newMemOrgRepo()
	return NewOrganizationService(users, orgs, noTx{}, nil), users, orgs
}

func TestCreateOrganizationUnknownUser(t *testing.T) {
	svc, _, orgs := newOrgFixture()

	_, err := svc.Create(context.Background(), OrganizationRequest{Name: "Acme", UserID: 42})
	appErr, ok := domain.AsError(err)
	if !ok || appErr.Code != domain.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if appErr.Message != "User does not exist." {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
	// The precondition failure must leave no partial write.
	if len(orgs.byID) != 0 {
		t.Fatalf("organization written despite missing user")
	}
}

func TestCreateOrganization(t *testing.T) {
	svc, users, _ := newOrgFixture()
	u := &domain.User{Username: "ada", Email: "ada@x.com"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("user create failed: %v", err)
	}

	message, err := svc.Create(context.Background(), OrganizationRequest{Name: "Acme", UserID: u.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if message != "Acme was added!" {
		t.Fatalf("unexpected message: %q", message)
	}
}

func TestUpdateOrganizationMissingOrganization(t *testing.T) {
	svc, users, _ := newOrgFixture()
	u := &domain.User{Username: "ada", Email: "ada@x.com"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("user create failed: %v", err)
	}

	_, err := svc.Update(context.Background(), OrganizationRequest{ID: 7, Name: "Acme", UserID: u.ID})
	appErr, ok := domain.AsError(err)
	if !ok || appErr.Code != domain.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if appErr.Message != "Organization does not exist." {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestUpdateOrganization(t *testing.T) {
	svc, users, orgs := newOrgFixture()
	u := &domain.User{Username: "ada", Email: "ada@x.com"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("user create failed: %v", err)
	}
	org := &domain.Organization{Name: "Acme", UserID: u.ID}
	if err := orgs.Create(context.Background(), org); err != nil {
		t.Fatalf("org create failed: %v", err)
	}

	message, err := svc.Update(context.Background(), OrganizationRequest{
		ID:     org.ID,
		Name:   "Acme Corp",
		UserID: u.ID,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if message != "Acme Corp was updated!" {
		t.Fatalf("unexpected message: %q", message)
	}
	updated, _ := orgs.GetByID(context.Background(), org.ID)
	if updated.Name != "Acme Corp" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
}

func TestOrganizationStubs(t *testing.T) {
	svc, _, _ := newOrgFixture()

	for _, err := range []error{
		svc.List(context.Background()),
		svc.Get(context.Background(), 1),
		svc.Delete(context.Background(), 1),
	} {
		appErr, ok := domain.AsError(err)
		if !ok || appErr.Code != domain.CodeInternal {
			t.Fatalf("expected internal stub error, got %v", err)
		}
	}
}
