package service

import (
	"context"
	"strings"
	"time"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminInput fields accepted when creating an administrator
type AdminInput struct {
	Username    string              `mapstructure:"username"`
	Password    string              `mapstructure:"password"`
	FirstName   *string             `mapstructure:"first_name"`
	LastName    *string             `mapstructure:"last_name"`
	Email       *string             `mapstructure:"email"`
	Departments []domain.Department `mapstructure:"departments"`
	Permissions []domain.Permission `mapstructure:"permissions"`
}

type UserService struct {
	users    UserRepository
	admins   AdminRepository
	hashCost int
	now      func() time.Time
}

func NewUserService(users UserRepository, admins AdminRepository) *UserService {
	return &UserService{
		users:    users,
		admins:   admins,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// AuthenticateUser checks username and password. Unknown, inactive and
// deactivated users fail the same way as a wrong password.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		zap.L().Warn("login failed", zap.String("username", username))
		return nil, errors.Wrap(ErrUnauthorized, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		zap.L().Warn("login failed", zap.String("username", username))
		return nil, errors.Wrap(ErrUnauthorized, "invalid username or password")
	}
	if user.Status != domain.StatusActive {
		zap.L().Warn("login refused for inactive user", zap.String("username", username))
		return nil, errors.Wrap(ErrUnauthorized, "user is not active")
	}
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.GetAll(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// FindByUsername returns the active user holding username, or nil.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s *UserService) GetAdmin(ctx context.Context, id int64) (*domain.Admin, error) {
	return s.admins.GetByID(ctx, id)
}

// CreateAdmin registers an administrator with a hashed password.
func (s *UserService) CreateAdmin(ctx context.Context, in AdminInput) (*domain.Admin, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, reject("admin username and password are required")
	}
	email := trimmed(in.Email)
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, reject("username %q is already in use", in.Username)
	}
	if email != nil {
		other, err := s.users.GetByEmail(ctx, *email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, reject("email %q is already in use", *email)
		}
	}
	deps, err := uniqueDepartments(in.Departments)
	if err != nil {
		return nil, err
	}
	perms, err := uniquePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		User: domain.User{
			Username:     in.Username,
			PasswordHash: string(hash),
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        email,
			Role:         domain.RoleAdmin,
			Status:       domain.StatusActive,
		},
	}
	for _, d := range deps {
		admin.Departments = append(admin.Departments, domain.AdminDepartment{Department: d})
	}
	for _, p := range perms {
		admin.Permissions = append(admin.Permissions, domain.AdminPermission{Permission: p})
	}
	created, err := s.admins.Create(ctx, admin)
	if err != nil {
		return nil, err
	}
	zap.L().Info("admin created", zap.Int64("user_id", created.UserID), zap.String("username", in.Username))
	return created, nil
}

// SetPermissions replaces the permission set of an admin.
func (s *UserService) SetPermissions(ctx context.Context, adminID int64, perms []domain.Permission) (*domain.Admin, error) {
	perms, err := uniquePermissions(perms)
	if err != nil {
		return nil, err
	}
	admin, err := s.admins.ReplacePermissions(ctx, adminID, perms)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, notFound("admin", adminID)
	}
	return admin, nil
}

// SetDepartments replaces the department set of an admin.
func (s *UserService) SetDepartments(ctx context.Context, adminID int64, deps []domain.Department) (*domain.Admin, error) {
	deps, err := uniqueDepartments(deps)
	if err != nil {
		return nil, err
	}
	admin, err := s.admins.ReplaceDepartments(ctx, adminID, deps)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, notFound("admin", adminID)
	}
	return admin, nil
}

// ChangePassword verifies the current password and stores a hash of the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return reject("new password is required")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("user", userID)
	}
	if user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
			return errors.Wrap(ErrUnauthorized, "current password does not match")
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.hashCost)
	if err != nil {
		return err
	}
	encoded := string(hash)
	if _, err := s.users.Update(ctx, userID, domain.UserPatch{PasswordHash: &encoded}); err != nil {
		return err
	}
	zap.L().Info("password changed", zap.Int64("user_id", userID))
	return nil
}

// DeactivateUser marks the user inactive and stamps its delete date.
// The row is removed later by PurgeDeleted.
func (s *UserService) DeactivateUser(ctx context.Context, userID int64) (*domain.User, error) {
	now := s.now()
	inactive := domain.StatusInactive
	user, err := s.users.Update(ctx, userID, domain.UserPatch{Status: &inactive, DeleteDate: &now})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user", userID)
	}
	zap.L().Info("user deactivated", zap.Int64("user_id", userID))
	return user, nil
}

// PurgeDeleted hard deletes users deactivated before t.
func (s *UserService) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.users.PurgeDeletedBefore(ctx, before)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		zap.L().Info("purged deactivated users", zap.Int64("count", n), zap.Time("before", before))
	}
	return n, nil
}

func uniquePermissions(in []domain.Permission) ([]domain.Permission, error) {
	seen := make(map[domain.Permission]bool, len(in))
	out := make([]domain.Permission, 0, len(in))
	for _, p := range in {
		if !p.Valid() {
			return nil, reject("invalid permission %q", p)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func uniqueDepartments(in []domain.Department) ([]domain.Department, error) {
	seen := make(map[domain.Department]bool, len(in))
	out := make([]domain.Department, 0, len(in))
	for _, d := range in {
		if !d.Valid() {
			return nil, reject("invalid department %q", d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, nil
}
