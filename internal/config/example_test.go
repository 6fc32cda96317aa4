package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load("../../configs/crowdsim.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Engine.ArrivalRadius)
	assert.True(t, cfg.Server.Enabled)
}
