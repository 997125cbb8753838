package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_RejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(nil, "every now and then", zap.NewNop())
	assert.Error(t, s.Start())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(nil, "@every 1h", zap.NewNop())
	require.NoError(t, s.Start())
	<-s.Stop().Done()
}
