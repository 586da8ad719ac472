package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &out))
	assert.Contains(t, out.String(), "kactl user add")

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"--help"}, &out))
	assert.Contains(t, out.String(), "kactl migrate up")
}
