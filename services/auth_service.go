package services

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/order-dashboard/config"
	"github.com/yeremiapane/order-dashboard/database"
	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/utils"
)

const (
	DemoEmail        = "demo@restaurant.com"
	DemoPassword     = "password123"
	DemoRestaurantID = "demo-resto"

	minMockPasswordLength = 6
)

var (
	ErrAccountNotFound    = errors.New("Invalid email or account not found. Please check your credentials.")
	ErrInvalidPassword    = errors.New("Invalid password.")
	ErrEmailTaken         = errors.New("An account with this email already exists.")
	ErrActivationRejected = errors.New("Invalid retailer ID and secret code combination, or account already active.")
	ErrNoIdentity         = errors.New(msgSigninFailed)
	ErrAccountInactive    = errors.New("This account has not been activated yet. Please sign up first.")
)

// AuthBackend is the part of the order backend the auth flow needs.
type AuthBackend interface {
	SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error)
	SignUp(ctx context.Context, req SignUpRequest) (map[string]interface{}, error)
	ListRestaurants(ctx context.Context) ([]models.RestaurantOption, error)
}

type SignUpResult struct {
	Restaurant *models.Restaurant     `json:"restaurant,omitempty"`
	Result     map[string]interface{} `json:"result,omitempty"`
}

// AuthService resolves the signed-in identity, either against the backend or
// against the local directory, and records it in the Session.
type AuthService struct {
	mode      config.AuthMode
	backend   AuthBackend
	directory *database.Directory
	store     *database.LocalStore
	session   *Session
	now       func() time.Time
}

func NewAuthService(mode config.AuthMode, backend AuthBackend, directory *database.Directory, store *database.LocalStore, session *Session) *AuthService {
	return &AuthService{
		mode:      mode,
		backend:   backend,
		directory: directory,
		store:     store,
		session:   session,
		now:       time.Now,
	}
}

func (as *AuthService) Mode() config.AuthMode {
	return as.mode
}

// DemoRestaurant is the identity behind the demo credential pair.
func DemoRestaurant(now time.Time) models.Restaurant {
	return models.Restaurant{
		ID:         DemoRestaurantID,
		RetailerID: "resto003",
		Name:       "Demo Restaurant",
		Email:      DemoEmail,
		SecretCode: "DEMO2024",
		CreatedAt:  now.UTC(),
		IsActive:   true,
	}
}

func IsDemoCredentials(email, password string) bool {
	return email == DemoEmail && password == DemoPassword
}

func (as *AuthService) SignIn(ctx context.Context, form SignInForm) (*models.Restaurant, error) {
	if err := ValidateSignIn(form); err != nil {
		return nil, err
	}

	if IsDemoCredentials(form.Email, form.Password) {
		now := as.now()
		demo := DemoRestaurant(now)
		as.session.Set(demo)
		if as.store.InitializeSampleData(demo.PartitionKey(), now) {
			utils.InfoLogger.Printf("Seeded sample orders for %s", demo.PartitionKey())
		}
		utils.InfoLogger.Printf("Demo sign-in for %s", demo.Email)
		return &demo, nil
	}

	var identity models.Restaurant
	switch as.mode {
	case config.AuthModeMock:
		account, err := as.directory.FindActiveByEmail(form.Email)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, ErrAccountNotFound
		}
		if len(form.Password) < minMockPasswordLength {
			return nil, ErrInvalidPassword
		}
		identity = account.Identity()
	default:
		resp, err := as.backend.SignIn(ctx, SignInRequest{Email: form.Email, Password: form.Password})
		if err != nil {
			return nil, err
		}
		if resp.Restaurant == nil {
			return nil, ErrNoIdentity
		}
		if resp.Inactive {
			return nil, ErrAccountInactive
		}
		identity = *resp.Restaurant
	}

	as.session.Set(identity)
	utils.InfoLogger.Printf("Signed in as %s (retailer=%s)", identity.Email, identity.RetailerID)
	return &identity, nil
}

// SignUp activates a restaurant account. It never signs in.
func (as *AuthService) SignUp(ctx context.Context, form SignUpForm) (*SignUpResult, error) {
	if err := ValidateSignUp(form); err != nil {
		return nil, err
	}

	if as.mode != config.AuthModeMock {
		result, err := as.backend.SignUp(ctx, SignUpRequest{
			Email:      form.Email,
			Password:   form.Password,
			RetailerID: form.RetailerID,
			SecretCode: form.SecretCode,
		})
		if err != nil {
			return nil, err
		}
		utils.InfoLogger.Printf("Account activated for %s (retailer=%s)", form.Email, form.RetailerID)
		return &SignUpResult{Result: result}, nil
	}

	taken, err := as.directory.EmailExists(form.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	account, err := as.directory.FindActivatable(form.RetailerID, form.SecretCode)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrActivationRejected
	}
	if err := as.directory.Activate(account, form.Email, as.now().UTC()); err != nil {
		return nil, err
	}

	identity := account.Identity()
	utils.InfoLogger.Printf("Account activated for %s (retailer=%s)", identity.Email, identity.RetailerID)
	return &SignUpResult{Restaurant: &identity}, nil
}

// RestoreSession returns the identity persisted by an earlier run.
func (as *AuthService) RestoreSession() *models.Restaurant {
	return as.session.Load()
}

func (as *AuthService) SignOut() {
	as.session.Clear()
}

func (as *AuthService) CurrentUser() *models.Restaurant {
	return as.session.Current()
}

// Restaurants lists the restaurants a new account can be bound to.
func (as *AuthService) Restaurants(ctx context.Context) ([]models.RestaurantOption, error) {
	if as.mode == config.AuthModeMock {
		return as.directory.Options()
	}
	return as.backend.ListRestaurants(ctx)
}

// UsesLocalOrders reports whether orders for identity live in the local
// store rather than the backend.
func (as *AuthService) UsesLocalOrders(identity models.Restaurant) bool {
	return as.mode == config.AuthModeMock || identity.ID == DemoRestaurantID
}
