package xerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestInvalidSequenceMatchesSentinel(t *testing.T) {
	err := InvalidSequence(3, 7, "value out of range")

	assert.True(t, errors.Is(err, ErrInvalidSequence))
	assert.False(t, errors.Is(err, ErrSequenceTooLong))
	assert.Equal(t, SequenceMessage, err.Message)
	assert.Equal(t, 3, err.Context["index"])
	assert.Equal(t, 7, err.Context["value"])
	assert.NotEmpty(t, err.Stack)
}

func TestInvalidSequenceDoesNotShareContext(t *testing.T) {
	a := InvalidSequence(0, 0, "")
	b := InvalidSequence(1, 5, "")

	assert.Equal(t, 0, a.Context["index"])
	assert.Equal(t, 1, b.Context["index"])
	assert.Empty(t, ErrInvalidSequence.Context)
}

func TestFromErrorUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", SequenceTooLong(10, 5))

	e, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeSequenceTooLong, e.Code)
	assert.Equal(t, "length 10 exceeds limit 5", e.Detail)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
}

func TestStatusMapping(t *testing.T) {
	e := InvalidSequence(0, 0, "")
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus())
	assert.Equal(t, codes.InvalidArgument, e.GRPCCode())

	internal := Internal("boom", errors.New("cause"))
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus())
	assert.Equal(t, codes.Internal, internal.GRPCCode())
	assert.Contains(t, internal.Error(), "Cause: cause")
}

func TestWrapKeepsStructuredError(t *testing.T) {
	orig := InvalidSequence(2, 2, "duplicate value")
	assert.Same(t, orig, Wrap(orig, ErrInternal, "ignored"))
	assert.Nil(t, Wrap(nil, ErrInternal, "nil"))

	w := WrapInternal(errors.New("disk"), "cache failure")
	assert.Equal(t, ErrInternal, w.Type)
	assert.Equal(t, "cache failure", w.Message)
}
