package glapp_test

import (
	"strings"
	"testing"
	"time"

	"github.com/soypat/glshapes/glapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, glapp.DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	const doc = `
title = "prism"
width = 1024
fullscreen = true
clear_color = [0.0, 0.0, 0.0, 1.0]
delta_time_movement = true
move_speed = 5.0
log_level = "debug"
`
	cfg, err := glapp.LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "prism", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, glapp.DefaultConfig().Height, cfg.Height, "absent fields keep defaults")
	assert.True(t, cfg.Fullscreen)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.ClearColor)
	assert.InDelta(t, 0.5, cfg.Step(100*time.Millisecond), 1e-6)
}

func TestLoadConfigErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown field": `colour = "red"`,
		"bad syntax":    `width = `,
		"bad size":      `width = -1`,
		"bad fov":       `fov = 170.0`,
		"bad level":     `log_level = "loud"`,
		"wrong type":    `vsync = "yes"`,
	} {
		_, err := glapp.LoadConfig(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestFixedStep(t *testing.T) {
	cfg := glapp.DefaultConfig()
	assert.Equal(t, cfg.MoveStep, cfg.Step(time.Second))
	assert.Equal(t, cfg.MoveStep, cfg.Step(time.Millisecond))
}
