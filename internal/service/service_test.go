package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localite/user-service/internal/domain"
)

// noTx runs the function without a real transaction.
type noTx struct{}

func (noTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUserRepo struct {
	nextID int64
	byID   map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[int64]*domain.User{}}
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNoRows
}

func (m *memUserRepo) GetByUsernameOrEmail(_ context.Context, name string) (*domain.User, error) {
	needle := strings.ToLower(name)
	for _, u := range m.byID {
		if strings.ToLower(u.Username) == needle || strings.ToLower(u.Email) == needle {
			return u, nil
		}
	}
	return nil, domain.ErrNoRows
}

func (m *memUserRepo) GetAll(_ context.Context) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.byID {
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.RegisteredOn = time.Now()
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return domain.ErrNoRows
	}
	m.byID[u.ID] = u
	return nil
}

type memOrgRepo struct {
	nextID int64
	byID   map[int64]*domain.Organization
}

func newMemOrgRepo() *memOrgRepo {
	return &memOrgRepo{byID: map[int64]*domain.Organization{}}
}

func (m *memOrgRepo) GetByID(_ context.Context, id int64) (*domain.Organization, error) {
	if o, ok := m.byID[id]; ok {
		return o, nil
	}
	return nil, domain.ErrNoRows
}

func (m *memOrgRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Organization, error) {
	out := []*domain.Organization{}
	for _, o := range m.byID {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrgRepo) Create(_ context.Context, o *domain.Organization) error {
	m.nextID++
	o.ID = m.nextID
	m.byID[o.ID] = o
	return nil
}

func (m *memOrgRepo) Update(_ context.Context, o *domain.Organization) error {
	if _, ok := m.byID[o.ID]; !ok {
		return domain.ErrNoRows
	}
	m.byID[o.ID] = o
	return nil
}

type memEmployeeRepo struct {
	byID map[uuid.UUID]*domain.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{byID: map[uuid.UUID]*domain.Employee{}}
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	if e, ok := m.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNoRows
}

func (m *memEmployeeRepo) List(_ context.Context) ([]*domain.Employee, error) {
	out := []*domain.Employee{}
	for _, e := range m.byID {
		out = append(out, e)
	}
	return out, nil
}

func (m *memEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	for _, existing := range m.byID {
		if existing.EmployeeCode == e.EmployeeCode || strings.EqualFold(existing.Email, e.Email) {
			return domain.ErrDuplicate
		}
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.byID[e.ID] = e
	return nil
}

func (m *memEmployeeRepo) add(e *domain.Employee) *domain.Employee {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.byID[e.ID] = e
	return e
}

type memAttendanceRepo struct {
	records map[uuid.UUID]*domain.AttendanceRecord
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{records: map[uuid.UUID]*domain.AttendanceRecord{}}
}

func (m *memAttendanceRepo) GetOpenByEmployee(_ context.Context, employeeID uuid.UUID) (*domain.AttendanceRecord, error) {
	var latest *domain.AttendanceRecord
	for _, rec := range m.records {
		if rec.EmployeeID != employeeID || rec.ClockOut != nil {
			continue
		}
		if latest == nil || rec.ClockIn.After(latest.ClockIn) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, domain.ErrNoRows
	}
	return latest, nil
}

func (m *memAttendanceRepo) Create(_ context.Context, rec *domain.AttendanceRecord) error {
	for _, existing := range m.records {
		if existing.EmployeeID == rec.EmployeeID && existing.ClockOut == nil {
			return domain.ErrOpenShiftExists
		}
	}
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	m.records[rec.ID] = rec
	return nil
}

func (m *memAttendanceRepo) Close(_ context.Context, rec *domain.AttendanceRecord, clockOut time.Time) error {
	stored, ok := m.records[rec.ID]
	if !ok || stored.ClockOut != nil {
		return domain.ErrNoRows
	}
	stored.ClockOut = &clockOut
	stored.UpdatedAt = time.Now()
	rec.ClockOut = &clockOut
	rec.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *memAttendanceRepo) openCount(employeeID uuid.UUID) int {
	n := 0
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID && rec.ClockOut == nil {
			n++
		}
	}
	return n
}
