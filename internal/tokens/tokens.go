package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/legalease/legalease/backend/go-services/internal/config"
	"github.com/legalease/legalease/backend/go-services/internal/models"
	"github.com/legalease/legalease/backend/go-services/internal/sessions"
	"github.com/legalease/legalease/backend/go-services/pkg/middleware"
)

// GenerateAccessToken creates a signed JWT access token for the profile
func GenerateAccessToken(cfg *config.Config, p *models.Profile, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   p.ID,
		"name":  p.Name,
		"email": p.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// verifiedToken adapts parsed JWT claims to the middleware.Token interface
type verifiedToken struct {
	claims jwt.MapClaims
}

func (t *verifiedToken) Claims(v interface{}) error {
	m, ok := v.(*map[string]interface{})
	if !ok {
		return errors.New("unsupported claims target")
	}
	*m = map[string]interface{}(t.claims)
	return nil
}

// Verifier validates locally issued HS256 tokens and consults the
// session blacklist so revoked tokens stop working before expiry.
type Verifier struct {
	secret []byte
}

func NewVerifier(cfg *config.Config) *Verifier {
	return &Verifier{secret: []byte(cfg.JWT.Secret)}
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	blacklisted, err := sessions.IsAccessTokenBlacklisted(ctx, raw)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, errors.New("token revoked")
	}

	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return &verifiedToken{claims: claims}, nil
}
