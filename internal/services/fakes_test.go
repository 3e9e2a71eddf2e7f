package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"companyevents/internal/domain"
)

// testLogger discards output so tests don't depend on log formatting.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeCompanyRepo implements domain.CompanyRepository backed by maps.
type fakeCompanyRepo struct {
	byID       map[string]*domain.Company
	byName     map[string]*domain.Company
	dependents map[string][2]int // companyID -> {employees, events}
	createErr  error
	deleteErr  error
	nextID     int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		byID:       make(map[string]*domain.Company),
		byName:     make(map[string]*domain.Company),
		dependents: make(map[string][2]int),
	}
}

func (f *fakeCompanyRepo) add(c *domain.Company) *domain.Company {
	if c.ID == "" {
		f.nextID++
		c.ID = "co-" + strconv.Itoa(f.nextID)
	}
	f.byID[c.ID] = c
	f.byName[c.Name] = c
	return c
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byName[c.Name]; ok {
		return domain.ErrDuplicateCompanyName
	}
	f.add(c)
	return nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCompanyRepo) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	if c, ok := f.byName[name]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCompanyRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Company, int, error) {
	companies := make([]*domain.Company, 0, len(f.byID))
	for _, c := range f.byID {
		companies = append(companies, c)
	}
	return companies, len(companies), nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCompanyRepo) CountDependents(ctx context.Context, id string) (int, int, error) {
	d := f.dependents[id]
	return d[0], d[1], nil
}

// fakeEmployeeRepo implements domain.EmployeeRepository backed by maps.
type fakeEmployeeRepo struct {
	byID      map[string]*domain.Employee
	byEmail   map[string]*domain.Employee
	createErr error
	nextID    int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		byID:    make(map[string]*domain.Employee),
		byEmail: make(map[string]*domain.Employee),
	}
}

func (f *fakeEmployeeRepo) add(e *domain.Employee) *domain.Employee {
	if e.ID == "" {
		f.nextID++
		e.ID = "emp-" + strconv.Itoa(f.nextID)
	}
	f.byID[e.ID] = e
	f.byEmail[e.Email] = e
	return e
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[e.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	f.add(e)
	return nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if e, ok := f.byEmail[email]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter domain.EmployeeFilter, p domain.PaginationParams) ([]*domain.Employee, int, error) {
	employees := make([]*domain.Employee, 0)
	for _, e := range f.byID {
		if filter.CompanyID != "" && e.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Role != "" && e.Role != filter.Role {
			continue
		}
		employees = append(employees, e)
	}
	return employees, len(employees), nil
}

func (f *fakeEmployeeRepo) ListByCompanyID(ctx context.Context, companyID string) ([]*domain.Employee, error) {
	employees, _, err := f.List(ctx, domain.EmployeeFilter{CompanyID: companyID}, domain.PaginationParams{})
	return employees, err
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	f.byEmail[e.Email] = e
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(f.byEmail, e.Email)
	delete(f.byID, id)
	return nil
}

// fakeEventRepo implements domain.EventRepository backed by a map.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	createErr error
	lastList  domain.EventFilter
	nextID    int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		f.nextID++
		e.ID = "event-" + strconv.Itoa(f.nextID)
	}
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastList = filter
	events := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if filter.CompanyID != "" && e.CompanyID != filter.CompanyID {
			continue
		}
		events = append(events, e)
	}
	return events, len(events), nil
}

func (f *fakeEventRepo) ListByCompanyID(ctx context.Context, companyID string) ([]*domain.Event, error) {
	events, _, err := f.List(ctx, domain.EventFilter{CompanyID: companyID}, domain.PaginationParams{})
	return events, err
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeRegistrationRepo implements domain.EventRegistrationRepository backed
// by a map keyed by registration ID.
type fakeRegistrationRepo struct {
	byID       map[string]*domain.EventRegistration
	createErr  error
	checkInErr error
	nextID     int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{byID: make(map[string]*domain.EventRegistration)}
}

func (f *fakeRegistrationRepo) add(reg *domain.EventRegistration) *domain.EventRegistration {
	if reg.ID == "" {
		f.nextID++
		reg.ID = "reg-" + strconv.Itoa(f.nextID)
	}
	f.byID[reg.ID] = reg
	return reg
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.EventRegistration) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.EventID == reg.EventID && existing.EmployeeID == reg.EmployeeID {
			return domain.ErrAlreadyRegistered
		}
	}
	f.add(reg)
	return nil
}

func (f *fakeRegistrationRepo) GetByEventAndEmployee(ctx context.Context, eventID, employeeID string) (*domain.EventRegistration, error) {
	for _, reg := range f.byID {
		if reg.EventID == eventID && reg.EmployeeID == employeeID {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) GetByIDAndEvent(ctx context.Context, id, eventID string) (*domain.EventRegistration, error) {
	if reg, ok := f.byID[id]; ok && reg.EventID == eventID {
		return reg, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) ListByEvent(ctx context.Context, eventID string, checkedIn *bool, p domain.PaginationParams) ([]*domain.EventAttendee, int, error) {
	attendees := make([]*domain.EventAttendee, 0)
	for _, reg := range f.byID {
		if reg.EventID != eventID {
			continue
		}
		if checkedIn != nil && reg.CheckedIn != *checkedIn {
			continue
		}
		attendees = append(attendees, &domain.EventAttendee{
			Registration: reg,
			Employee:     &domain.AttendeeProfile{ID: reg.EmployeeID},
		})
	}
	return attendees, len(attendees), nil
}

func (f *fakeRegistrationRepo) CheckIn(ctx context.Context, id string, at time.Time) error {
	if f.checkInErr != nil {
		return f.checkInErr
	}
	reg, ok := f.byID[id]
	if !ok || reg.CheckedIn {
		return domain.ErrAlreadyCheckedIn
	}
	reg.CheckedIn = true
	reg.CheckedInAt = &at
	return nil
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakePasswordHasher implements domain.PasswordHasher with deterministic output.
type fakePasswordHasher struct {
	compareErr error
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }

func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if f.compareErr != nil {
		return f.compareErr
	}
	if hash != "hash-"+salt+"-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenCodec implements domain.TokenIssuer and domain.TokenVerifier.
// Issue returns "token-<id>"; Verify accepts only tokens it issued.
type fakeTokenCodec struct {
	issueErr   error
	verifyErr  error
	issued     map[string]domain.Identity
	lastIssued domain.Identity
}

func newFakeTokenCodec() *fakeTokenCodec {
	return &fakeTokenCodec{issued: make(map[string]domain.Identity)}
}

func (f *fakeTokenCodec) Issue(identity domain.Identity, expiry time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	token := "token-" + identity.ID
	f.issued[token] = identity
	f.lastIssued = identity
	return token, nil
}

func (f *fakeTokenCodec) Verify(token string) (domain.Identity, error) {
	if f.verifyErr != nil {
		return domain.Identity{}, f.verifyErr
	}
	if identity, ok := f.issued[token]; ok {
		return identity, nil
	}
	return domain.Identity{}, domain.ErrInvalidToken
}

// fakeEmailService records sends and optionally fails.
type fakeEmailService struct {
	welcomeErr       error
	confirmationErr  error
	welcomeSent      []*domain.WelcomeEmailData
	confirmationSent []*domain.RegistrationConfirmationEmailData
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	f.welcomeSent = append(f.welcomeSent, data)
	return f.welcomeErr
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	f.confirmationSent = append(f.confirmationSent, data)
	return f.confirmationErr
}
