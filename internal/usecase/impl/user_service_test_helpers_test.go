package impl

import (
	"context"
	"errors"
	"sync"
	"time"

	"gatehouse/internal/domain/entity"
	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/domain/repository"
	"gatehouse/internal/domain/service"
)

// fakeUserRepo is an in-memory UserRepository for service tests. The optional
// function fields override individual methods so tests can inject storage
// failures and race outcomes.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  []*entity.User

	findByIDFn       func(ctx context.Context, id int64) (*entity.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*entity.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*entity.User, error)
	createFn         func(ctx context.Context, user *entity.User) error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.findByEmailFn != nil {
		return r.findByEmailFn(ctx, email)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if r.findByUsernameFn != nil {
		return r.findByUsernameFn(ctx, username)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if r.createFn != nil {
		return r.createFn(ctx, user)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirror the store's unique constraints.
	for _, u := range r.users {
		if u.Email == user.Email {
			return domainerrors.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return domainerrors.ErrDuplicateUsername
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	clone := *user
	r.users = append(r.users, &clone)

	return nil
}

// seed inserts a user directly, bypassing Create's duplicate checks.
func (r *fakeUserRepo) seed(user *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	clone := *user
	r.users = append(r.users, &clone)

	return user
}

// fakeTokenService lets tests force token issuance failures.
type fakeTokenService struct {
	issueFn  func(user *entity.User) (string, error)
	verifyFn func(tokenString string) (*service.Claims, error)
}

func (f *fakeTokenService) IssueToken(user *entity.User) (string, error) {
	if f.issueFn != nil {
		return f.issueFn(user)
	}

	return "token-" + user.Username, nil
}

func (f *fakeTokenService) VerifyToken(tokenString string) (*service.Claims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(tokenString)
	}

	return nil, errors.New("VerifyToken not configured")
}

// fakeHasher lets tests force hashing failures without touching bcrypt.
type fakeHasher struct {
	hashFn  func(password string) (string, error)
	checkFn func(password, hash string) bool
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(password)
	}

	return "hashed:" + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	if f.checkFn != nil {
		return f.checkFn(password, hash)
	}

	return hash == "hashed:"+password
}
