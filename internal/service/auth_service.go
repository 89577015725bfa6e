package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/pkg/logger"
	"vc-copilot-be/internal/pkg/mailer"
)

var (
	// ErrInvalidCode is returned when the exchange code is wrong, expired,
	// or was never issued for the given email.
	ErrInvalidCode = errors.New("invalid or expired sign-in code")
)

const (
	magicCodeTTL = 15 * time.Minute
	tokenExpiry  = 24 * time.Hour
	codeCachePfx = "magiccode:"
)

type IAuthService interface {
	RequestMagicLink(ctx context.Context, req dto.MagicLinkRequest) (*dto.MagicLinkResponse, error)
	ExchangeCode(ctx context.Context, req dto.ExchangeCodeRequest) (*dto.ExchangeCodeResponse, error)
}

type authService struct {
	mailer    mailer.IEmailService
	codes     *gocache.Cache
	jwtSecret string
	log       logger.ILogger
}

func NewAuthService(emailService mailer.IEmailService, jwtSecret string, log logger.ILogger) IAuthService {
	return &authService{
		mailer:    emailService,
		codes:     gocache.New(magicCodeTTL, 5*time.Minute),
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// normalizeEmail lowercases and trims the address so the same founder always
// maps to the same identity.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *authService) RequestMagicLink(ctx context.Context, req dto.MagicLinkRequest) (*dto.MagicLinkResponse, error) {
	email := normalizeEmail(req.Email)

	code, err := generateCode()
	if err != nil {
		s.log.Error("auth_service", "failed to generate sign-in code", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to generate sign-in code: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash sign-in code: %w", err)
	}

	s.codes.Set(codeCachePfx+email, hashed, magicCodeTTL)

	if err := s.mailer.SendMagicLinkCode(email, code); err != nil {
		s.log.Error("auth_service", "failed to email sign-in code", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to send sign-in code: %w", err)
	}

	s.log.Info("auth_service", "sign-in code issued", map[string]interface{}{"email": email})

	return &dto.MagicLinkResponse{
		Email:     email,
		ExpiresAt: time.Now().Add(magicCodeTTL),
	}, nil
}

func (s *authService) ExchangeCode(ctx context.Context, req dto.ExchangeCodeRequest) (*dto.ExchangeCodeResponse, error) {
	email := normalizeEmail(req.Email)

	cached, found := s.codes.Get(codeCachePfx + email)
	if !found {
		return nil, ErrInvalidCode
	}

	hashed, ok := cached.([]byte)
	if !ok {
		return nil, ErrInvalidCode
	}

	if err := bcrypt.CompareHashAndPassword(hashed, []byte(req.Code)); err != nil {
		return nil, ErrInvalidCode
	}

	// One code, one exchange.
	s.codes.Delete(codeCachePfx + email)

	expiresAt := time.Now().Add(tokenExpiry)
	claims := jwt.MapClaims{
		"founder_id": email,
		"exp":        expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.log.Info("auth_service", "founder session issued", map[string]interface{}{"founder_id": email})

	return &dto.ExchangeCodeResponse{
		Token:     signed,
		FounderId: email,
		ExpiresAt: expiresAt,
	}, nil
}
