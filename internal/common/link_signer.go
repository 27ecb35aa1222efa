package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SignedLink represents a validated presigned link token.
type SignedLink struct {
	UserID         string
	OrganizationID string
	Subject        string
	TokenID        string
	ExpiresAt      time.Time
}

// LinkSignerService generates and validates presigned URLs for document
// downloads and dashboard access. Tokens are single-use: the jti is parked
// in Redis on first redemption.
type LinkSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewLinkSignerService creates a new link signer service
func NewLinkSignerService(secretKey []byte, redis *redis.Client) *LinkSignerService {
	return &LinkSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// SignLink generates a single-use presigned token for a subject (a document
// id or the literal "dashboard").
func (s *LinkSignerService) SignLink(
	userID, organizationID, subject string,
	ttl time.Duration,
) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"user_id": userID,
		"org_id":  organizationID,
		"sub":     subject,
		"jti":     tokenID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	// Sign with HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateLink validates a presigned token and consumes its jti.
func (s *LinkSignerService) ValidateLink(ctx context.Context, tokenString string) (*SignedLink, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := (*claims)["user_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid user_id claim")
	}

	orgID, ok := (*claims)["org_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid org_id claim")
	}

	subject, ok := (*claims)["sub"].(string)
	if !ok {
		return nil, errors.New("missing or invalid sub claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	// Consume the jti: SETNX fails if the token was already used.
	usedKey := "link:used:" + tokenID
	set, err := s.redis.SetNX(ctx, usedKey, "1", time.Until(expiresAt)+time.Minute).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check token reuse: %w", err)
	}
	if !set {
		return nil, errors.New("token already used")
	}

	return &SignedLink{
		UserID:         userID,
		OrganizationID: orgID,
		Subject:        subject,
		TokenID:        tokenID,
		ExpiresAt:      expiresAt,
	}, nil
}
