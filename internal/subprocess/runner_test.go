package subprocess

import (
	"context"
	"testing"
	"time"

	"github.com/hackclub/imgopt/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_EchoesStdin(t *testing.T) {
	r := New(5 * time.Second)
	out, err := r.Run(context.Background(), []string{"cat"}, []byte("hello"), 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestRunner_AllowedExitCode(t *testing.T) {
	r := New(5 * time.Second)
	_, err := r.Run(context.Background(), []string{"sh", "-c", "exit 99"}, nil, 0, 99)
	assert.NoError(t, err)
}

func TestRunner_DisallowedExitCode(t *testing.T) {
	r := New(5 * time.Second)
	_, err := r.Run(context.Background(), []string{"sh", "-c", "echo boom >&2; exit 2"}, nil, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrOptimization)
}

func TestRunner_Timeout(t *testing.T) {
	r := New(5 * time.Second)
	_, err := r.Run(context.Background(), []string{"sleep", "5"}, nil, 50*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrToolTimeout)
}
