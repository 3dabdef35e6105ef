package service

import (
	"context"
	"strings"
	"time"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/gemtrack/gemtrack/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ClientInput fields accepted when creating a client
type ClientInput struct {
	Username        string     `mapstructure:"username"`
	Password        string     `mapstructure:"password"`
	FirstName       string     `mapstructure:"first_name"`
	LastName        string     `mapstructure:"last_name"`
	Email           *string    `mapstructure:"email"`
	PhoneNumber     *string    `mapstructure:"phone_number"`
	DateOfBirth     *time.Time `mapstructure:"date_of_birth"`
	ShippingAddress *string    `mapstructure:"shipping_address"`
	BillingAddress  *string    `mapstructure:"billing_address"`
}

type ClientService struct {
	clients  ClientRepository
	users    UserRepository
	events   publisher
	hashCost int
}

func NewClientService(clients ClientRepository, users UserRepository, bus EventBus.Bus) *ClientService {
	return &ClientService{
		clients:  clients,
		users:    users,
		events:   publisher{bus: bus},
		hashCost: bcrypt.DefaultCost,
	}
}

// CreateNewClient registers a client. The username falls back to the email.
func (s *ClientService) CreateNewClient(ctx context.Context, in ClientInput) (*domain.Client, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || in.LastName == "" {
		return nil, reject("client first and last name are required")
	}
	email := trimmed(in.Email)
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" && email != nil {
		username = *email
	}
	if username == "" {
		return nil, reject("client username or email is required")
	}
	if err := s.checkUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	client := &domain.Client{
		User: domain.User{
			Username:    username,
			FirstName:   &in.FirstName,
			LastName:    &in.LastName,
			Email:       email,
			PhoneNumber: in.PhoneNumber,
			DateOfBirth: in.DateOfBirth,
			Role:        domain.RoleClient,
			Status:      domain.StatusActive,
		},
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
		if err != nil {
			return nil, err
		}
		client.User.PasswordHash = string(hash)
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		zap.L().Error("create client failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	zap.L().Info("client created", zap.Int64("client_id", created.UserID), zap.String("username", username))
	s.events.publish(TopicClientCreated, created)
	return created, nil
}

func (s *ClientService) GetClientsList(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.GetAll(ctx)
}

// GetClientDetails returns the client or nil when it does not exist.
func (s *ClientService) GetClientDetails(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// UpdateExistingClient applies patch. A changed email or username must not belong to another user.
func (s *ClientService) UpdateExistingClient(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
	existing, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("client", id)
	}
	for _, name := range []*string{patch.FirstName, patch.LastName} {
		if name != nil && strings.TrimSpace(*name) == "" {
			return nil, reject("client first and last name cannot be empty")
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, reject("invalid status %q", *patch.Status)
	}
	if patch.Email != nil {
		patch.Email = trimmed(patch.Email)
		if patch.Email == nil {
			return nil, reject("client email cannot be blank")
		}
		if err := checkEmail(patch.Email); err != nil {
			return nil, err
		}
		if err := s.checkEmailFree(ctx, patch.Email, id); err != nil {
			return nil, err
		}
	}
	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if username == "" {
			return nil, reject("client username cannot be empty")
		}
		if err := s.checkUsernameFree(ctx, username, id); err != nil {
			return nil, err
		}
		patch.Username = &username
	}

	updated, err := s.clients.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound("client", id)
	}
	zap.L().Info("client updated", zap.Int64("client_id", id))
	return updated, nil
}

// RemoveClient deletes the client and its user row.
func (s *ClientService) RemoveClient(ctx context.Context, id int64) (bool, error) {
	ok, err := s.clients.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		zap.L().Info("client deleted", zap.Int64("client_id", id))
		s.events.publish(TopicClientDeleted, id)
	}
	return ok, nil
}

// SearchClients matches first name, last name or email. A blank query returns nothing.
func (s *ClientService) SearchClients(ctx context.Context, query string) ([]*domain.Client, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Client{}, nil
	}
	return s.clients.Search(ctx, query)
}

func (s *ClientService) checkEmailFree(ctx context.Context, email *string, self int64) error {
	if email == nil {
		return nil
	}
	other, err := s.users.GetByEmail(ctx, *email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return reject("email %q is already in use", *email)
	}
	return nil
}

func (s *ClientService) checkUsernameFree(ctx context.Context, username string, self int64) error {
	other, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return reject("username %q is already in use", username)
	}
	return nil
}

// trimmed returns nil for a nil or blank string.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
