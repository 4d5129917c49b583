package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"go-web-services/storage"
	"go-web-services/types"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
	// ErrInvalidCredentials is returned for every authentication failure.
	// The message never reveals whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func handleUserStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, storage.ErrEmailExists):
		return ErrEmailExists
	default:
		return err
	}
}

// UserUpdate carries the optional fields of a partial user update. Nil
// fields are left unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService exposes CRUD, search and authentication over the user store.
// Plaintext passwords never cross the service boundary downwards: only
// bcrypt digests reach the repository.
type UserService interface {
	Create(ctx context.Context, name, email, password string) (types.User, error)
	Get(ctx context.Context, id int64) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Update(ctx context.Context, id int64, update UserUpdate) (types.User, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, namePrefix string) ([]types.User, error)
	Authenticate(ctx context.Context, email, password string) (types.User, error)
}

type userService struct {
	repo      storage.UserRepository
	cost      int
	dummyHash []byte
}

// NewUserService creates a UserService over the given repository. A cost
// outside the bcrypt range falls back to the bcrypt default.
func NewUserService(repo storage.UserRepository, bcryptCost int) (UserService, error) {
	if repo == nil {
		return nil, errors.New("repository cannot be nil")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	// Pre-computed digest compared against when the email is unknown, so
	// both authentication failure modes do the same amount of work.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("unknown-user-placeholder"), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &userService{repo: repo, cost: bcryptCost, dummyHash: dummyHash}, nil
}

func (s *userService) Create(ctx context.Context, name, email, password string) (types.User, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, name, email, string(digest))
	if err != nil {
		return types.User{}, handleUserStorageError(err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, handleUserStorageError(err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]types.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, handleUserStorageError(err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id int64, update UserUpdate) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, handleUserStorageError(err)
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Password != nil {
		digest, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.cost)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = string(digest)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return types.User{}, handleUserStorageError(err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return handleUserStorageError(err)
	}
	return nil
}

func (s *userService) Search(ctx context.Context, namePrefix string) ([]types.User, error) {
	users, err := s.repo.SearchByNamePrefix(ctx, namePrefix)
	if err != nil {
		return nil, handleUserStorageError(err)
	}
	return users, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Burn a comparison so an unknown email costs the same as a
			// wrong password.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}

	return user, nil
}
