package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/aquaflow/internal/middleware"
	"github.com/mmynk/aquaflow/pkg/api"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "Meter.Reader@Example.com",
		DisplayName: "Meter Reader",
		Password:    "correct-horse",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Msg.Token)
	assert.Equal(t, "meter.reader@example.com", reg.Msg.User.Email)

	login, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "meter.reader@example.com",
		Password: "correct-horse",
	}))
	require.NoError(t, err)
	assert.Equal(t, reg.Msg.User.ID, login.Msg.User.ID)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "meter.reader@example.com",
		Password: "wrong-password",
	}))
	assertCode(t, connect.CodeUnauthenticated, err)

	me, err := env.authSvc.GetCurrentUser(middleware.WithUserID(ctx, reg.Msg.User.ID), connect.NewRequest(&emptypb.Empty{}))
	require.NoError(t, err)
	assert.Equal(t, "Meter Reader", me.Msg.User.DisplayName)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "op@example.com", DisplayName: "Op", Password: "long-enough",
	}))
	require.NoError(t, err)

	tests := []struct {
		name string
		req  api.RegisterRequest
		want connect.Code
	}{
		{"duplicate email", api.RegisterRequest{Email: "OP@example.com", DisplayName: "Op", Password: "long-enough"}, connect.CodeAlreadyExists},
		{"weak password", api.RegisterRequest{Email: "new@example.com", DisplayName: "New", Password: "short"}, connect.CodeInvalidArgument},
		{"bad email", api.RegisterRequest{Email: "not-an-email", DisplayName: "New", Password: "long-enough"}, connect.CodeInvalidArgument},
		{"missing display name", api.RegisterRequest{Email: "new@example.com", Password: "long-enough"}, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.auth.Register(ctx, connect.NewRequest(&req))
			assertCode(t, tt.want, err)
		})
	}
}

func TestAuthService_GetCurrentUserUnknown(t *testing.T) {
	env := setupTestServer(t)

	// the test interceptor signs every call in as an operator with no account
	_, err := env.auth.GetCurrentUser(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	assertCode(t, connect.CodeUnauthenticated, err)

	_, err = env.authSvc.GetCurrentUser(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	assertCode(t, connect.CodeUnauthenticated, err)
}
