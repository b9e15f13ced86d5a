package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

type ClientInput struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status,omitempty"`
	Origin string `json:"origin,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

type ClientPatch struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Status *string `json:"status,omitempty"`
	Origin *string `json:"origin,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type ClientSearch struct {
	Term     string
	Status   string
	Origin   string
	DateFrom string
	DateTo   string
	Limit    int
	Offset   int
}

func (c *Client) ListClients(ctx context.Context) ([]dto.ClientListDTO, error) {
	return getList[dto.ClientListDTO](ctx, c, "/api/clients", nil)
}

func (c *Client) GetClient(ctx context.Context, id uuid.UUID) (*dto.ClientListDTO, error) {
	var out dto.ClientListDTO
	if err := c.do(ctx, http.MethodGet, "/api/clients/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodPost, "/api/clients", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id uuid.UUID, patch ClientPatch) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodPatch, "/api/clients/"+id.String(), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/clients/"+id.String(), nil, nil, nil)
}

func (c *Client) SearchClients(ctx context.Context, f ClientSearch) ([]dto.ClientListDTO, error) {
	q := query(
		"term", f.Term,
		"status", f.Status,
		"origin", f.Origin,
		"date_from", f.DateFrom,
		"date_to", f.DateTo,
		"limit", itoa(f.Limit),
		"offset", itoa(f.Offset),
	)
	return getList[dto.ClientListDTO](ctx, c, "/api/clients/search", q)
}

func (c *Client) ClientHistory(ctx context.Context, id uuid.UUID) ([]models.ClientHistory, error) {
	return getList[models.ClientHistory](ctx, c, "/api/clients/"+id.String()+"/history", nil)
}
