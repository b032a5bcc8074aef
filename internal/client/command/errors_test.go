package command

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/darkworlds/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"usage", &UsageError{Usage: UsageSend}, UsageSend},
		{"auth", &AuthRequiredError{Message: MsgAuthInbox}, MsgAuthInbox},
		{"credentials hide cause", &CredentialError{Err: errors.New("connection refused")}, MsgInvalidCredentials},
		{"store", &StoreError{Err: errors.New("boom")}, "Error: boom"},
		{"unrecognized subcommand is silent", &UnrecognizedSubcommandError{Command: "show", Target: "x"}, ""},
		{"bare error treated as store error", context.DeadlineExceeded, "Error: context deadline exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(tt.err))
		})
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	err := &StoreError{Err: common.ErrorAlreadyExists}
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	cred := &CredentialError{Err: common.ErrorNotFound}
	assert.ErrorIs(t, cred, common.ErrorNotFound)
}
