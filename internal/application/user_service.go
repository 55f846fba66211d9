package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	repo "github.com/surershelf/task-manager-api/internal/domain/repository"
	"github.com/surershelf/task-manager-api/internal/observability"
	"github.com/surershelf/task-manager-api/pkg/helpers"
	"github.com/surershelf/task-manager-api/pkg/mailer"
	mailtpl "github.com/surershelf/task-manager-api/pkg/mailer/templates"
)

type UserService struct {
	Repo       repo.UserRepository
	Activities repo.ActivityRepository
	Logger     *logrus.Logger

	// optional integrations
	Tokens     *helpers.ResetTokenManager
	UsedTokens TokenStore
	Mail       EmailQueue
	Avatars    AvatarStore
	Stats      *StatsService

	AppName  string
	ResetURL string
	Clock    Clock
}

func NewUserService(users repo.UserRepository, activities repo.ActivityRepository, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:       users,
		Activities: activities,
		Logger:     logger,
		Clock:      SystemClock{},
	}
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	BirthDate *time.Time
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, invalidField("name", "is required")
	case email == "":
		return nil, invalidField("email", "is required")
	case in.Password == "":
		return nil, invalidField("password", "is required")
	case len(in.Password) < MinPasswordLength:
		return nil, ErrPasswordTooShort
	}

	exists, err := s.Repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		BirthDate:    dateOnly(in.BirthDate),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	observability.RecordRegistration()
	s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.AppName, u.Name, u.Email),
	})
	return u, nil
}

// Authenticate returns ErrInvalidCredentials for both unknown email and wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetProfileWithActivities(ctx context.Context, userID string) (*entity.UserSummary, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, active, err := s.Activities.CountByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &entity.UserSummary{User: u, TotalActivities: total, ActiveActivities: active}, nil
}

// UpdateProfileInput fields left nil or blank are not changed.
type UpdateProfileInput struct {
	Name      *string
	Email     *string
	BirthDate *time.Time
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			u.Name = name
		}
	}
	if in.Email != nil {
		if email := NormalizeEmail(*in.Email); email != "" && email != u.Email {
			taken, err := s.Repo.ExistsByEmailExcept(ctx, email, u.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrEmailConflict
			}
			u.Email = email
		}
	}
	if in.BirthDate != nil {
		u.BirthDate = dateOnly(in.BirthDate)
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrEmailConflict
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, current) {
		return ErrWrongPassword
	}
	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return s.storePassword(ctx, u, next)
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return false, nil
	}
	return s.Repo.ExistsByEmail(ctx, email)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// RequestPasswordReset never reveals whether email is registered.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.Tokens == nil {
		return errors.New("password reset not configured")
	}
	u, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			if s.Logger != nil {
				s.Logger.WithField("email", NormalizeEmail(email)).Debug("password reset for unknown email")
			}
			return nil
		}
		return err
	}

	token, exp, err := s.Tokens.Generate(u.ID, u.Email)
	if err != nil {
		return err
	}
	s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.PasswordReset,
		Data: mailtpl.NewPasswordResetData(s.AppName, u.Name, u.Email,
			mailtpl.ResetLink(s.ResetURL, token), exp),
	})
	return nil
}

// ResetPassword consumes token once and stores the new password.
func (s *UserService) ResetPassword(ctx context.Context, token, next string) error {
	if s.Tokens == nil {
		return errors.New("password reset not configured")
	}
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if NormalizeEmail(claims.Email) != u.Email {
		return ErrInvalidResetToken
	}
	if s.UsedTokens != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			return ErrInvalidResetToken
		}
		fresh, err := s.UsedTokens.Consume(ctx, claims.ID, ttl)
		if err != nil {
			return err
		}
		if !fresh {
			return ErrInvalidResetToken
		}
	}
	return s.storePassword(ctx, u, next)
}

func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.Avatars == nil {
		return "", errors.New("avatar storage not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", invalidField("avatar", "must be an image")
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	url, err := s.Avatars.Upload(ctx, u.ID, &limitedReader{r: r, left: MaxAvatarBytes}, filename, contentType)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateAvatar(ctx, u.ID, url); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return url, nil
}

// DeleteUser removes the user with all activities and progress.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Stats != nil {
		s.Stats.Invalidate(ctx, userID)
	}
	if s.Logger != nil {
		helpers.LogInfo(s.Logger, "user deleted", logrus.Fields{"user_id": userID})
	}
	return nil
}

func (s *UserService) storePassword(ctx context.Context, u *entity.User, plain string) error {
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	u.PasswordHash = hash
	s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.PasswordChanged,
		Data:     mailtpl.NewPasswordChangedData(s.AppName, u.Name, u.Email, s.Clock.Now()),
	})
	return nil
}

func (s *UserService) enqueueMail(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Mail.PublishJSON(c, job); err != nil {
		observability.RecordIntegrationError("rabbitmq")
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("template", job.Template).Warn("enqueue email failed")
		}
	}
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := helpers.DateOf(*t)
	return &d
}

// limitedReader fails with ErrAvatarTooLarge instead of truncating once the limit is crossed.
type limitedReader struct {
	r    io.Reader
	left int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.left < 0 {
		return 0, ErrAvatarTooLarge
	}
	if int64(len(p)) > l.left+1 {
		p = p[:l.left+1]
	}
	n, err := l.r.Read(p)
	l.left -= int64(n)
	if l.left < 0 {
		return n, ErrAvatarTooLarge
	}
	return n, err
}
