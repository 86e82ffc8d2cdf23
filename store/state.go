package store

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/models"
)

// Storage keys shared with the browser client.
const (
	KeyToken           = "token"
	KeyCurrentCustomer = "currentCustomer"
	KeyCurrentEmployee = "currentEmployee"
	KeyUserType        = "userType"
	KeyCartItems       = "cartItems"
	KeyLanguage        = "language"
)

type UserType string

const (
	UserCustomer UserType = "customer"
	UserEmployee UserType = "employee"
)

// SessionRecord is the persisted login: raw token, user type and profile.
type SessionRecord struct {
	Token    string
	UserType UserType
	Customer *models.Customer
	Employee *models.Employee
}

func (r SessionRecord) LoggedIn() bool {
	return r.Token != "" && (r.Customer != nil || r.Employee != nil)
}

// State is the typed face of one visitor's Local storage.
type State struct {
	local *Local
}

func NewState(local *Local) *State {
	return &State{local: local}
}

func (s *State) Namespace() string { return s.local.Namespace() }

// LoadCart returns the persisted cart lines. A missing or corrupt value
// yields an empty cart; only backend failures are returned as errors.
func (s *State) LoadCart(ctx context.Context) ([]models.CartItem, error) {
	raw, ok, err := s.local.GetItem(ctx, KeyCartItems)
	if err != nil {
		return []models.CartItem{}, err
	}
	return DecodeCart(raw, ok), nil
}

// DecodeCart parses a stored cartItems value, falling back to an empty cart.
func DecodeCart(raw string, present bool) []models.CartItem {
	if !present || raw == "" {
		return []models.CartItem{}
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []models.CartItem{}
	}
	return items
}

func (s *State) SaveCart(ctx context.Context, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.local.SetItem(ctx, KeyCartItems, string(raw))
}

func (s *State) LoadSession(ctx context.Context) (SessionRecord, error) {
	var rec SessionRecord
	token, _, err := s.local.GetItem(ctx, KeyToken)
	if err != nil {
		return rec, err
	}
	userType, _, err := s.local.GetItem(ctx, KeyUserType)
	if err != nil {
		return rec, err
	}
	rec.Token = token
	rec.UserType = UserType(userType)

	switch rec.UserType {
	case UserCustomer:
		var c models.Customer
		if ok, err := s.loadJSON(ctx, KeyCurrentCustomer, &c); err != nil {
			return rec, err
		} else if ok {
			rec.Customer = &c
		}
	case UserEmployee:
		var e models.Employee
		if ok, err := s.loadJSON(ctx, KeyCurrentEmployee, &e); err != nil {
			return rec, err
		} else if ok {
			rec.Employee = &e
		}
	}
	return rec, nil
}

func (s *State) SaveSession(ctx context.Context, rec SessionRecord) error {
	if err := s.local.SetItem(ctx, KeyToken, rec.Token); err != nil {
		return err
	}
	if err := s.local.SetItem(ctx, KeyUserType, string(rec.UserType)); err != nil {
		return err
	}
	if rec.Customer != nil {
		if err := s.saveJSON(ctx, KeyCurrentCustomer, rec.Customer); err != nil {
			return err
		}
	}
	if rec.Employee != nil {
		if err := s.saveJSON(ctx, KeyCurrentEmployee, rec.Employee); err != nil {
			return err
		}
	}
	return nil
}

func (s *State) Language(ctx context.Context) (string, error) {
	lang, _, err := s.local.GetItem(ctx, KeyLanguage)
	return lang, err
}

func (s *State) SaveLanguage(ctx context.Context, lang string) error {
	return s.local.SetItem(ctx, KeyLanguage, lang)
}

// Clear wipes every key of the namespace, cart and language included.
func (s *State) Clear(ctx context.Context) error {
	return s.local.Clear(ctx)
}

func (s *State) loadJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, ok, err := s.local.GetItem(ctx, key)
	if err != nil || !ok || raw == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *State) saveJSON(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.local.SetItem(ctx, key, string(raw))
}
