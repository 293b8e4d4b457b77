// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "gatehouse/internal/delivery/context"
	"gatehouse/internal/domain/entity"
	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/domain/repository"
	"gatehouse/internal/domain/service"
	"gatehouse/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
// The pre-checks give precise duplicate errors for the common cases; the
// unique constraints in the store remain the final arbiter under races.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if input == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "missing registration input")
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("email", input.Email))

	if err := validateRegistration(input); err != nil {
		srv.log(ctx).Warn("Registration validation failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	if err := srv.checkAvailability(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, srv.resolveCreateError(ctx, input, err)
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", newUser.ID))

	return &usecase.RegisterOutput{
		ID:       newUser.ID,
		Username: newUser.Username,
		Email:    newUser.Email,
	}, nil
}

// checkAvailability looks up both unique fields before any hashing work.
// Email is checked first, so a request that collides on both reports the
// email conflict.
func (srv *userService) checkAvailability(ctx context.Context, username, email string) error {
	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", email))

		return errors.Wrap(domainerrors.ErrDuplicateEmail, "registration failed")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check email availability")
	}

	if _, err := srv.userRepo.FindByUsername(ctx, username); err == nil {
		srv.log(ctx).Warn("Registration rejected, username already taken", slog.String("username", username))

		return errors.Wrap(domainerrors.ErrDuplicateUsername, "registration failed")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check username availability")
	}

	return nil
}

// resolveCreateError maps a rejected insert to the most precise duplicate
// error. A concurrent registration can slip past the pre-checks, and the
// constraint name does not always identify the field, so a generic duplicate
// triggers one re-query per field to see which value won the race.
func (srv *userService) resolveCreateError(ctx context.Context, input *usecase.RegisterInput, createErr error) error {
	if errors.Is(createErr, domainerrors.ErrDuplicateEmail) || errors.Is(createErr, domainerrors.ErrDuplicateUsername) {
		srv.log(ctx).Warn("Registration lost a concurrent insert", slog.String("username", input.Username), slog.Any("error", createErr))

		return createErr
	}

	if errors.Is(createErr, domainerrors.ErrDuplicateKey) {
		if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
			return errors.Wrap(domainerrors.ErrDuplicateEmail, "registration failed")
		}
		if _, err := srv.userRepo.FindByUsername(ctx, input.Username); err == nil {
			return errors.Wrap(domainerrors.ErrDuplicateUsername, "registration failed")
		}

		// Neither field resolves; report the generic duplicate.
		return createErr
	}

	srv.log(ctx).Error("Failed to create user during registration", slog.Any("error", createErr))

	return errors.Wrap(createErr, "failed to create user during registration")
}

// Login orchestrates the login process and issues a session token.
// An unknown email and a wrong password produce the identical error.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil {
		input = &usecase.LoginInput{}
	}

	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// Check password outside any storage call (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.IssueToken(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Int64("userID", user.ID))

	return &usecase.LoginOutput{
		Token: token,
		User:  user.Username,
	}, nil
}

// Profile returns the public fields of the authenticated account.
func (srv *userService) Profile(ctx context.Context, userID int64) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The token names an account that no longer resolves; fail closed.
			srv.log(ctx).Warn("Profile lookup for unknown user", slog.Int64("userID", userID))

			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load user profile")
	}

	return &usecase.ProfileOutput{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// validateRegistration enforces presence of all three fields and a plausible
// email shape. Full address validation is not attempted; the check only
// rejects values that cannot name a mailbox.
func validateRegistration(input *usecase.RegisterInput) error {
	if input.Username == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "username is required")
	}
	if input.Email == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "email is required")
	}
	if input.Password == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "password is required")
	}
	if !isPlausibleEmail(input.Email) {
		return errors.Wrap(domainerrors.ErrValidationFailed, "email address is not valid")
	}

	return nil
}

// isPlausibleEmail requires a local part, a single @, and a dotted domain
// where the dot is not at either edge.
func isPlausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")

	return dot > 0 && dot < len(domain)-1
}
