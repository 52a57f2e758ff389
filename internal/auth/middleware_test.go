package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
)

func TestMiddleware_Authenticate(t *testing.T) {
	repo := NewMockRepository()
	createTestUser(t, repo, "a@x.com", "Abc12345!")
	svc := newTestServiceWithRepo(t, repo)
	middleware := NewMiddleware(svc)

	result, err := svc.Login("a@x.com", "Abc12345!")
	require.NoError(t, err)

	tests := []struct {
		name    string
		ctx     context.Context
		wantErr bool
	}{
		{
			name: "valid bearer token",
			ctx: metadata.NewIncomingContext(context.Background(),
				metadata.Pairs("authorization", "Bearer "+result.AccessToken)),
		},
		{
			name: "bare token without prefix",
			ctx: metadata.NewIncomingContext(context.Background(),
				metadata.Pairs("authorization", result.AccessToken)),
		},
		{
			name:    "missing metadata",
			ctx:     context.Background(),
			wantErr: true,
		},
		{
			name: "missing authorization header",
			ctx: metadata.NewIncomingContext(context.Background(),
				metadata.Pairs("other", "value")),
			wantErr: true,
		},
		{
			name: "garbage token",
			ctx: metadata.NewIncomingContext(context.Background(),
				metadata.Pairs("authorization", "Bearer garbage")),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newCtx, err := middleware.Authenticate(tt.ctx)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			user, err := UserFromContext(newCtx)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", user.Email)
		})
	}
}

func TestUserFromContext_Missing(t *testing.T) {
	_, err := UserFromContext(context.Background())
	assert.Error(t, err)
}
