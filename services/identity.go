package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"academy/logger"
	"academy/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput carries the fields needed to create an account
type RegisterInput struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// Identity stores accounts and verifies credentials
type Identity struct {
	db   *gorm.DB
	cost int
	log  *zap.SugaredLogger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewIdentity returns an Identity store hashing with the given bcrypt cost
func NewIdentity(db *gorm.DB, cost int) *Identity {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Identity{db: db, cost: cost, log: logger.Named("identity")}
}

// Register creates a new account. Username uniqueness is checked before email.
func (s *Identity) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	db := s.db.WithContext(ctx)
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	taken, err := exists(db, &models.User{}, "username = ?", username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrDuplicateUsername
	}

	taken, err = exists(db, &models.User{}, "email = ?", email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		IsAdmin:  in.IsAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		// Lost a race against a concurrent signup; report which field collided.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if taken, _ := exists(db, &models.User{}, "username = ?", username); taken {
				return nil, ErrDuplicateUsername
			}
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return &user, nil
}

// Authenticate returns the user for valid credentials. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Identity) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Spend the same bcrypt work as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser loads a user by id
func (s *Identity) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// ListUsers returns every account, newest first
func (s *Identity) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the account together with its progress and quiz history
func (s *Identity) DeleteUser(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.QuizResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	s.log.Infow("user deleted", "user_id", id)
	return nil
}

// EnsureAdmin creates the admin account if the username is free. It never
// modifies an existing account.
func (s *Identity) EnsureAdmin(ctx context.Context, username, email, password string) (*models.User, bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find admin: %w", err)
	}

	created, err := s.Register(ctx, RegisterInput{Username: username, Email: email, Password: password, IsAdmin: true})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *Identity) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

// exists reports whether any row of model matches the condition
func exists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
