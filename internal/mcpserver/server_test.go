package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	server := New("1.2.3")
	require.NotNil(t, server)
}
