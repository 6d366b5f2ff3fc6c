package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitachicherindev/playerpool/internal/domain"
	errs "github.com/nikitachicherindev/playerpool/internal/error"
)

func TestNew_Validation(t *testing.T) {
	p := newScriptedPool(t, 1)

	_, err := New(domain.SlotConfig{}, p, nil, nil)
	assert.ErrorIs(t, err, errs.ErrEmptyID)

	_, err = New(domain.SlotConfig{ID: "slot-1"}, nil, nil, nil)
	assert.ErrorIs(t, err, errs.ErrNilPool)
}

func TestNew_Defaults(t *testing.T) {
	p := newScriptedPool(t, 1)

	c, err := New(domain.SlotConfig{ID: "slot-1"}, p, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "slot-1", c.Name)
	assert.Equal(t, domain.DEFAULT_VISIBLE_FOR, c.VisibleFor)
	assert.Equal(t, domain.DEFAULT_TRANSITION_FOR, c.TransitionFor)
	assert.Equal(t, domain.DEFAULT_BETWEEN_ITEMS, c.BetweenItems)
	assert.Equal(t, domain.DEFAULT_FAILURE_DELAY, c.FailureDelay)
	assert.Equal(t, domain.DEFAULT_READY_TIMEOUT, c.ReadyTimeout)
	assert.Equal(t, domain.DEFAULT_GATE_CHUNK, c.GateChunk)
	assert.Equal(t, domain.Idle, c.Status())
}

func TestNew_KeepsExplicitValues(t *testing.T) {
	p := newScriptedPool(t, 1)

	cfg := fastConfig("slot-1")
	cfg.Name = "hero tile"
	c, err := New(cfg, p, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "hero tile", c.Name)
	assert.Equal(t, cfg.VisibleFor, c.VisibleFor)
	assert.Equal(t, cfg.ReadyTimeout, c.ReadyTimeout)
}
