package core

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain", err: errors.New("boom"), want: KindUnknown},
		{name: "not found", err: errors.Wrap(ErrItemNotFound, "todo 1"), want: KindItemNotFound},
		{name: "store", err: StoreError(errors.New("dial tcp: refused"), "listing todos"), want: KindStoreUnavailable},
		{name: "store keeps not found", err: StoreError(ErrItemNotFound, "patching"), want: KindItemNotFound},
		{name: "store keeps unauthenticated", err: StoreError(ErrUnauthenticated, "listing"), want: KindUnauthenticated},
		{name: "validation", err: NewValidationError(errors.New("invalid")), want: KindValidation},
		{name: "wrapped validation", err: errors.Wrap(NewValidationError(nil), "adding"), want: KindValidation},
		{name: "upload", err: errors.Wrapf(ErrUploadFailed, "cat.png: %v", context.DeadlineExceeded), want: KindUploadFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	assert.Nil(t, StoreError(nil, "op"))
	err := StoreError(errors.New("refused"), "listing todos")
	assert.EqualError(t, err, "listing todos: refused: remote store unavailable")
}

func TestShutdownError(t *testing.T) {
	assert.True(t, IsShutdown(errors.Wrap(NewShutdownError("integrity"), "db")))
	assert.False(t, IsShutdown(errors.New("integrity")))
}
