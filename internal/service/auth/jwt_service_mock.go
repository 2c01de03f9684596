package auth

import "context"

// MockJWTService is a mock implementation of the JWTService interface for
// testing.
type MockJWTService struct {
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)
}

// Ensure MockJWTService implements JWTService
var _ JWTService = (*MockJWTService)(nil)

// ValidateToken delegates to ValidateTokenFunc when set.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	return nil, ErrInvalidToken
}
