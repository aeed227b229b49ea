package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// StorageTokenService mints HS256 service tokens for the external game
// log store, which authenticates writers with signed JWTs.
type StorageTokenService struct {
	secret   string
	issuer   string
	audience string
}

const (
	StorageRoleService = "service_role"
	StorageRoleAnon    = "anon"

	storageTokenTTL = time.Hour
)

func NewStorageTokenService(secret, issuer, audience string) *StorageTokenService {
	return &StorageTokenService{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
	}
}

// GenerateToken mints a token for the given role.
func (s *StorageTokenService) GenerateToken(role string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("storage token service is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("storage token config is incomplete")
	}
	if role != StorageRoleService && role != StorageRoleAnon {
		return "", fmt.Errorf("unsupported storage role: %s", role)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(storageTokenTTL).Unix(),
	}
	if s.audience != "" {
		claims["aud"] = s.audience
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
