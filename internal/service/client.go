package service

import (
	"context"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository"
)

type clientService struct {
	tx    repository.Transactor
	repos repository.Repositories
}

func NewClientService(tx repository.Transactor, repos repository.Repositories) ClientService {
	return &clientService{tx: tx, repos: repos}
}

func (s *clientService) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client.Name == "" || client.Rut == "" || client.Email == "" {
		return nil, domain.InvalidRequest("name, rut and email are required")
	}

	exists, err := s.repos.Clients.ExistsByRut(ctx, client.Rut)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("rut already exists")
	}
	exists, err = s.repos.Clients.ExistsByEmail(ctx, client.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("email already exists")
	}

	if client.State == "" {
		client.State = domain.ClientStateActive
	}
	if err := s.repos.Clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Get(ctx context.Context, id int32) (*domain.Client, error) {
	return s.repos.Clients.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.repos.Clients.List(ctx)
}

// Update changes contact data only. Rut is immutable and state changes go
// through SetState or the recomputation.
func (s *clientService) Update(ctx context.Context, id int32, name, phone, email string) (*domain.Client, error) {
	client, err := s.repos.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		client.Name = name
	}
	if phone != "" {
		client.Phone = phone
	}
	if email != "" && email != client.Email {
		exists, err := s.repos.Clients.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Conflict("email already exists")
		}
		client.Email = email
	}

	if err := s.repos.Clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) SetState(ctx context.Context, id int32, state domain.ClientState) (*domain.Client, error) {
	if state != domain.ClientStateActive && state != domain.ClientStateRestricted {
		return nil, domain.InvalidRequest("state must be ACTIVE or RESTRICTED")
	}

	client, err := s.repos.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Clients.UpdateState(ctx, id, state); err != nil {
		return nil, err
	}
	client.State = state
	logger.Info("client state overridden", "client_id", id, "state", state)
	return client, nil
}

func (s *clientService) RecomputeState(ctx context.Context, id int32) (bool, error) {
	var changed bool
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		var err error
		changed, err = recomputeClientState(ctx, r, id)
		return err
	})
	return changed, err
}

func (s *clientService) RecomputeAllStates(ctx context.Context) error {
	clients, err := s.repos.Clients.List(ctx)
	if err != nil {
		return err
	}

	for _, client := range clients {
		changed, err := s.RecomputeState(ctx, client.ID)
		if err != nil {
			return err
		}
		if changed {
			logger.Debug("client state recomputed", "client_id", client.ID)
		}
	}
	return nil
}
