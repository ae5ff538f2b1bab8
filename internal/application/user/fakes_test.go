package user

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/user"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

type fakeUserRepo struct {
	users     map[string]*user.User
	deleteErr error
	updates   int
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	var result []*user.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	var result []*user.User
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.updates++
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.users, id)
	return nil
}

// fakeService 跳过bcrypt,密码明文比较
type fakeService struct {
	repo *fakeUserRepo
}

func (s *fakeService) Register(ctx context.Context, params user.RegisterParams) (*user.User, error) {
	u := user.NewUser(params.Name, params.Email, params.Password, params.Phone, params.Role)
	return u, s.repo.Create(ctx, u)
}

func (s *fakeService) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil || u.Password != password {
		return nil, apperrors.ErrInvalidPassword
	}
	return u, nil
}

func (s *fakeService) ValidatePassword(hashed, plain string) error {
	if hashed != plain {
		return apperrors.ErrInvalidPassword
	}
	return nil
}

type fakeSessionStore struct {
	sessions  map[string]map[string]interface{}
	blacklist map[string]time.Duration
	saveErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions:  make(map[string]map[string]interface{}),
		blacklist: make(map[string]time.Duration),
	}
}

func (s *fakeSessionStore) SaveSession(ctx context.Context, userID string, data map[string]interface{}, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[userID] = data
	return nil
}

func (s *fakeSessionStore) DeleteSession(ctx context.Context, userID string) error {
	delete(s.sessions, userID)
	return nil
}

func (s *fakeSessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	s.blacklist[token] = ttl
	return nil
}

type fakeCartStore struct {
	carts map[string]map[string]int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]map[string]int)}
}

func (s *fakeCartStore) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	items := make(map[string]int)
	for k, v := range s.carts[userID] {
		items[k] = v
	}
	return &cart.Cart{UserID: userID, Items: items}, nil
}

func (s *fakeCartStore) Add(ctx context.Context, userID, productID string, quantity int) (int, error) {
	if s.carts[userID] == nil {
		s.carts[userID] = make(map[string]int)
	}
	s.carts[userID][productID] += quantity
	return s.carts[userID][productID], nil
}

func (s *fakeCartStore) Set(ctx context.Context, userID, productID string, quantity int) error {
	return errors.New("not implemented")
}

func (s *fakeCartStore) Remove(ctx context.Context, userID, productID string) error {
	return errors.New("not implemented")
}

func (s *fakeCartStore) Clear(ctx context.Context, userID string) error {
	delete(s.carts, userID)
	return nil
}

func (s *fakeCartStore) Restore(ctx context.Context, c *cart.Cart) error {
	s.carts[c.UserID] = c.Items
	return nil
}
