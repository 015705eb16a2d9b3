package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xperttutor/user-service/internal/models"
	"github.com/xperttutor/user-service/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID.Hex()] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateByID(_ context.Context, id string, fields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "category":
			u.Category = v.(string)
		case "orgName":
			u.OrgName = v.(string)
		case "address":
			u.Address = v.(string)
		case "accountName":
			u.AccountName = v.(string)
		case "ifsc":
			u.IFSC = v.(string)
		case "onboardCode":
			u.OnboardCode = v.(string)
		case "password":
			u.PasswordHash = v.(string)
		case "aadhar":
			n := v.(int64)
			u.Aadhar = &n
		case "phone":
			n := v.(int64)
			u.Phone = &n
		case "phone2":
			n := v.(int64)
			u.Phone2 = &n
		case "accountNumber":
			n := v.(int64)
			u.AccountNumber = &n
		case "updatedAt":
			u.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (f *fakeUserRepo) FindParentOf(_ context.Context, childID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		for _, c := range u.Children {
			if c == childID {
				cp := *u
				return &cp, nil
			}
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) PushChild(_ context.Context, referID, childID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ReferID == referID {
			u.Children = append(u.Children, childID)
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
