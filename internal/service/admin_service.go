package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iafluence/chatwidget/internal/config"
	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/repository"
)

// AdminService handles admin operations on clients and their widget options
type AdminService struct {
	cfg        *config.Config
	clientRepo *repository.ClientRepository
}

// NewAdminService creates a new admin service
func NewAdminService(cfg *config.Config, clientRepo *repository.ClientRepository) *AdminService {
	return &AdminService{
		cfg:        cfg,
		clientRepo: clientRepo,
	}
}

// Stats summarizes the service state
type Stats struct {
	TotalClients int `json:"total_clients"`
}

func (s *AdminService) CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	opts, err := mergeOptions(s.cfg.Widget, req.Options)
	if err != nil {
		return nil, err
	}
	client := &domain.Client{
		Name:      req.Name,
		ServerURL: req.ServerURL,
		Options:   opts,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *AdminService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clientRepo.Get(id)
}

func (s *AdminService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.List()
}

func (s *AdminService) UpdateClient(ctx context.Context, id string, req *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != "" {
		client.Name = req.Name
	}
	if req.ServerURL != "" {
		client.ServerURL = req.ServerURL
	}
	if len(req.Options) > 0 {
		opts, err := mergeOptions(client.Options, req.Options)
		if err != nil {
			return nil, err
		}
		client.Options = opts
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *AdminService) DeleteClient(ctx context.Context, id string) error {
	return s.clientRepo.Delete(id)
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	count, err := s.clientRepo.Count()
	if err != nil {
		return nil, err
	}
	return &Stats{TotalClients: count}, nil
}

// mergeOptions decodes a partial options object over base, so fields the
// caller leaves out keep their current value.
func mergeOptions(base domain.WidgetConfig, raw json.RawMessage) (domain.WidgetConfig, error) {
	opts := base
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &opts); err != nil {
			return base, fmt.Errorf("%w: options: %v", domain.ErrInvalidRequest, err)
		}
	}
	// Transport fields are derived per request, never persisted in the options.
	opts.ClientID = ""
	opts.ServerURL = ""

	if err := validateOptions(&opts); err != nil {
		return base, err
	}
	return opts, nil
}

func validateOptions(opts *domain.WidgetConfig) error {
	if !opts.Position.Valid() {
		return fmt.Errorf("%w: unknown position %q", domain.ErrInvalidRequest, opts.Position)
	}
	if opts.DelayAutoOpen < 0 {
		return fmt.Errorf("%w: delay_auto_open must not be negative", domain.ErrInvalidRequest)
	}
	return nil
}
