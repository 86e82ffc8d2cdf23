package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/store"
	"storefront/utils"
)

type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

type ProfileSource[T any] interface {
	Get(ctx context.Context, id int) (T, error)
}

// CustomerDirectory reads customer profiles and registers new customers.
type CustomerDirectory interface {
	ProfileSource[models.Customer]
	Create(ctx context.Context, rec models.Customer) (models.Customer, error)
}

// SessionService holds the logged-in customer or employee. It also serves
// as the gateway's token source. There is no expiry handling: a stale token
// keeps being sent until logout.
type SessionService struct {
	mu        sync.RWMutex
	state     *store.State
	auth      Authenticator
	customers CustomerDirectory
	employees ProfileSource[models.Employee]
	cart      *CartService
	record    store.SessionRecord
	logger    *zap.Logger
}

func NewSessionService(ctx context.Context, state *store.State, auth Authenticator, customers CustomerDirectory, employees ProfileSource[models.Employee], cart *CartService, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionService{
		state:     state,
		auth:      auth,
		customers: customers,
		employees: employees,
		cart:      cart,
		logger:    logger,
	}
	rec, err := state.LoadSession(ctx)
	if err != nil {
		logger.Warn("Failed to restore session", zap.String("namespace", state.Namespace()), zap.Error(err))
	} else if rec.LoggedIn() {
		s.record = rec
	}
	return s
}

// Token implements libs.TokenSource.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.Token
}

func (s *SessionService) Current() store.SessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

func (s *SessionService) IsCustomer() bool {
	rec := s.Current()
	return rec.LoggedIn() && rec.UserType == store.UserCustomer
}

func (s *SessionService) IsEmployee() bool {
	rec := s.Current()
	return rec.LoggedIn() && rec.UserType == store.UserEmployee
}

// IsAdmin only decides what to show. The backend authorizes every call.
func (s *SessionService) IsAdmin() bool {
	rec := s.Current()
	return s.IsEmployee() && rec.Employee != nil && rec.Employee.Role == models.RoleAdmin
}

// Login picks the endpoint from the two toggles, reads the user id from the
// unverified token, fetches that profile and persists the session.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (store.SessionRecord, error) {
	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" || req.Password == "" {
		return store.SessionRecord{}, fmt.Errorf("%w: identifier and password are required", models.ErrValidation)
	}

	token, err := s.auth.Login(ctx, req)
	if err != nil {
		return store.SessionRecord{}, err
	}
	id, err := utils.IdentifierFromToken(token)
	if err != nil {
		return store.SessionRecord{}, err
	}

	// The profile lookup is authenticated with the new token.
	s.mu.Lock()
	previous := s.record
	s.record = store.SessionRecord{Token: token}
	s.mu.Unlock()

	rec, err := s.fetchProfile(ctx, token, id, req.AsEmployee)
	if err != nil {
		s.mu.Lock()
		s.record = previous
		s.mu.Unlock()
		return store.SessionRecord{}, err
	}

	if err := s.state.SaveSession(ctx, rec); err != nil {
		s.logger.Warn("Failed to persist session", zap.String("namespace", s.state.Namespace()), zap.Error(err))
	}
	s.mu.Lock()
	s.record = rec
	s.mu.Unlock()

	s.logger.Info("Logged in", zap.String("user_type", string(rec.UserType)), zap.Int("user_id", id))
	return rec, nil
}

func (s *SessionService) fetchProfile(ctx context.Context, token string, id int, asEmployee bool) (store.SessionRecord, error) {
	if asEmployee {
		emp, err := s.employees.Get(ctx, id)
		if err != nil {
			return store.SessionRecord{}, fmt.Errorf("fetch employee %d: %w", id, err)
		}
		emp.Password = ""
		return store.SessionRecord{Token: token, UserType: store.UserEmployee, Employee: &emp}, nil
	}
	cust, err := s.customers.Get(ctx, id)
	if err != nil {
		return store.SessionRecord{}, fmt.Errorf("fetch customer %d: %w", id, err)
	}
	cust.Password = ""
	return store.SessionRecord{Token: token, UserType: store.UserCustomer, Customer: &cust}, nil
}

// Signup registers a customer through the public create endpoint. It does
// not log the new customer in.
func (s *SessionService) Signup(ctx context.Context, req models.SignupRequest) (models.Customer, error) {
	created, err := s.customers.Create(ctx, models.Customer{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		Password:         req.Password,
		RegistrationDate: models.Timestamp{Time: time.Now().UTC()},
		IsActive:         true,
	})
	created.Password = ""
	return created, err
}

// Logout wipes every persisted key of the visitor, the cart and language
// included, and empties the in-memory cart to match.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.record = store.SessionRecord{}
	s.mu.Unlock()
	if s.cart != nil {
		s.cart.Reset()
	}
	if err := s.state.Clear(ctx); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

// RequireCustomer returns the logged-in customer or ErrNotLoggedIn.
func (s *SessionService) RequireCustomer() (models.Customer, error) {
	rec := s.Current()
	if !rec.LoggedIn() || rec.Customer == nil {
		return models.Customer{}, models.ErrNotLoggedIn
	}
	return *rec.Customer, nil
}

func (s *SessionService) RequireEmployee() (models.Employee, error) {
	rec := s.Current()
	if !rec.LoggedIn() || rec.Employee == nil {
		return models.Employee{}, models.ErrNotLoggedIn
	}
	return *rec.Employee, nil
}
