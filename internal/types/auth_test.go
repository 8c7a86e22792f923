//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: CreateUserRequest{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Password: "password123",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			request: CreateUserRequest{
				Email:    "jane@example.com",
				Password: "password123",
			},
			wantErr: true,
		},
		{
			name: "invalid email",
			request: CreateUserRequest{
				Name:     "Jane Doe",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantErr: true,
		},
		{
			name: "short password",
			request: CreateUserRequest{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Password: "short",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	valid := LoginRequest{Email: "jane@example.com", Password: "password123"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "jane@example.com"}
	assert.Error(t, missing.Validate())
}

func TestUser_JSONSerialization(t *testing.T) {
	u := User{
		ID:        uuid.New(),
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var back User
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, u.ID, back.ID)
	assert.Equal(t, u.Email, back.Email)
}
