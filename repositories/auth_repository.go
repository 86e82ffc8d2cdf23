package repositories

import (
	"context"
	"errors"

	"storefront/libs"
	"storefront/models"
)

// LoginPath picks one of the four login endpoints from the two form toggles.
func LoginPath(asEmployee, usePhone bool) string {
	base := CustomersPath
	if asEmployee {
		base = EmployeesPath
	}
	if usePhone {
		return base + "/LoginByPhone"
	}
	return base + "/LoginByEmail"
}

type AuthRepository struct {
	gw *libs.Gateway
}

func NewAuthRepository(gw *libs.Gateway) *AuthRepository {
	return &AuthRepository{gw: gw}
}

func (r *AuthRepository) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	body := map[string]string{"password": req.Password}
	if req.UsePhone {
		body["phone"] = req.Identifier
	} else {
		body["email"] = req.Identifier
	}

	var out models.TokenResponse
	if err := r.gw.Post(ctx, LoginPath(req.AsEmployee, req.UsePhone), body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login response carried no token")
	}
	return out.Token, nil
}
