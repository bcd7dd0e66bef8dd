package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DDismyname28/home-portal/models"
	"github.com/DDismyname28/home-portal/services/notification"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

func (s *DefaultUserService) Register(in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" {
		return nil, fmt.Errorf("username and email are required: %w", ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", ErrValidation)
	}

	if existing, err := s.Repo.GetByUsername(in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateAccount
	}
	if existing, err := s.Repo.GetByEmail(in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleHomeMember
	if in.MembershipType == "provider" {
		role = models.RoleLocalProvider
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == models.RoleLocalProvider {
		u.Profile = models.UserMeta{
			CompanyName:   in.CompanyName,
			StreetAddress: in.StreetAddress,
			ZipCode:       in.ZipCode,
			City:          in.City,
			State:         in.State,
		}
	}

	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(u)
	return u, nil
}

func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Role, u.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateFields(u.ID, map[string]interface{}{
		"tokenHash": tokenHash,
		"updatedAt": time.Now(),
	}); err != nil {
		return nil, err
	}
	u.TokenHash = tokenHash

	cacheIdentity(tokenHash, u)
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *DefaultUserService) RevokeToken(id string) error {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	if u.TokenHash != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		utils.GetAuthCacheClient().Del(ctx, sessionKey(u.TokenHash))
	}
	return s.Repo.UpdateFields(id, map[string]interface{}{
		"tokenHash": "",
		"updatedAt": time.Now(),
	})
}

// cacheIdentity keeps the signed-in identity in the auth Redis DB so the
// middleware can resolve callers without a Mongo round trip. Failures are
// harmless; the middleware falls back to the repository.
func cacheIdentity(tokenHash string, u *models.User) {
	payload, err := json.Marshal(map[string]string{
		"id":       u.ID,
		"role":     u.Role,
		"username": u.Username,
		"email":    u.Email,
	})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetAuthCacheClient().Set(ctx, sessionKey(tokenHash), payload, tokenTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache auth session", zap.Error(err))
	}
}

func sessionKey(tokenHash string) string {
	return "session:" + tokenHash
}

func (s *DefaultUserService) sendWelcomeEmail(u *models.User) {
	if s.Queue == nil {
		return
	}
	payload := notification.EmailTaskPayload{
		Event: notification.TaskWelcomeEmail,
		Envelope: notification.EmailEnvelope{
			To:      u.Email,
			Subject: "Welcome to Home Portal",
			Body: fmt.Sprintf("Hi %s,\n\nYour account has been created. Sign in to start using Home Portal.\n\nThank you for joining!",
				u.FirstName),
		},
		SentAt: time.Now(),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if _, err := s.Queue.Enqueue(asynq.NewTask(notification.TaskWelcomeEmail, b), asynq.Queue(notification.QueueName)); err != nil {
		utils.GetLogger().Warn("welcome email dropped", zap.String("userID", u.ID), zap.Error(err))
	}
}
