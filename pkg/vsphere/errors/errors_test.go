package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
)

func TestMessage(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("rpc session failed", vserrors.Message(codes.ErrSession))
	assert.Equal("watch timed out", vserrors.Message(codes.ErrTimedOut))
	assert.Equal("An unknown error occurred", vserrors.Message(9999))
}

func TestError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	ref := mo.NewReference(mo.TypeVirtualMachine, "vm-10")

	tests := []struct {
		name string
		err  *vserrors.Error
		msg  string
		is   error
	}{
		{
			name: "wrapped with ref",
			err:  vserrors.Wrap(cause, codes.ErrQueryFailed, "getProperties", ref),
			msg:  "getProperties VirtualMachine:vm-10: property query failed: connection reset by peer",
			is:   vserrors.ErrQueryFailed,
		},
		{
			name: "wrapped without ref",
			err:  vserrors.Wrap(cause, codes.ErrSession, "dial", nil),
			msg:  "dial: rpc session failed: connection reset by peer",
			is:   vserrors.ErrSession,
		},
		{
			name: "new with detail",
			err:  vserrors.New(codes.ErrObjectsNotFound, "powerOn", "%s", "vm-z"),
			msg:  "powerOn: one or more specified objects not found: vm-z",
			is:   vserrors.ErrObjectsNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tt.msg, tt.err.Error())
			assert.True(errors.Is(tt.err, tt.is))
			assert.False(errors.Is(tt.err, vserrors.ErrCancelled))
			assert.Equal(tt.is.(*vserrors.Error).Code, vserrors.Code(tt.err))
		})
	}

	wrapped := vserrors.Wrap(cause, codes.ErrSession, "dial", nil)
	assert.True(t, errors.Is(wrapped, cause))
	assert.Equal(t, codes.ErrUnspecified, vserrors.Code(cause))
}
