package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	// ErrNoEmail is returned when a verified ID token carries no email claim.
	ErrNoEmail = errors.New("firebase token has no email")
	// ErrEmailNotVerified is returned when the provider has not confirmed
	// that the token holder owns the email.
	ErrEmailNotVerified = errors.New("firebase token email is not verified")
)

// tokenVerifier is the part of *auth.Client used here.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// App holds the initialized Firebase app and auth client
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
	verifier    tokenVerifier
}

// InitFirebase initializes the Firebase application and authentication client
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	firebaseApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	return &App{FirebaseApp: firebaseApp, AuthClient: authClient, verifier: authClient}, nil
}

// VerifyEmail verifies a Firebase ID token and returns the email it was
// issued for. Tokens whose email_verified claim is not true are rejected.
func (a *App) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	return verifyEmail(ctx, a.verifier, idToken)
}

func verifyEmail(ctx context.Context, v tokenVerifier, idToken string) (string, error) {
	tok, err := v.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	email, _ := tok.Claims["email"].(string)
	if email == "" {
		return "", ErrNoEmail
	}
	if verified, _ := tok.Claims["email_verified"].(bool); !verified {
		return "", ErrEmailNotVerified
	}
	return email, nil
}
