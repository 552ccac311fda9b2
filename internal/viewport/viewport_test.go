package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetFitsDataset(t *testing.T) {
	s := New(850, 100)
	s.SetBounds(0, 1000)
	s.Reset()

	assert.InDelta(t, 0.85, s.Zoom(), 1e-12)
	assert.Equal(t, 0.0, s.PositionX())
	assert.InDelta(t, 1000, s.RealView(), 1e-9)
	assert.InDelta(t, 850, s.TimeToPosition(1000), 1e-9)
}

func TestResetZeroWidthDataset(t *testing.T) {
	s := New(100, 10)
	s.SetBounds(5, 5)
	s.Reset()

	assert.Equal(t, 100.0, s.Zoom())
	assert.Equal(t, 5.0, s.PositionX())
	assert.Equal(t, 0.0, s.TimeToPosition(5))
}

func TestPanIsClamped(t *testing.T) {
	s := New(100, 10)
	s.SetBounds(0, 1000)
	s.Reset()

	assert.False(t, s.TryToChangePosition(50), "whole dataset is visible")

	s.SetZoom(1)
	assert.True(t, s.TryToChangePosition(300))
	assert.Equal(t, 300.0, s.PositionX())

	s.TryToChangePosition(10000)
	assert.Equal(t, 900.0, s.PositionX())

	s.TryToChangePosition(-10000)
	assert.Equal(t, 0.0, s.PositionX())
}

func TestZoomAtKeepsPinnedTime(t *testing.T) {
	s := New(100, 10)
	s.SetBounds(0, 1000)
	s.Reset()

	pinned := s.PixelToTime(50)
	assert.True(t, s.ZoomAt(50, 4))
	assert.InDelta(t, pinned, s.PixelToTime(50), 1e-9)
	assert.InDelta(t, 0.4, s.Zoom(), 1e-12)

	assert.False(t, s.ZoomAt(50, 0))
	assert.False(t, s.ZoomAt(50, -2))
}

func TestFocus(t *testing.T) {
	s := New(100, 10)
	s.SetBounds(0, 1000)
	s.Reset()

	s.Focus(200, 300, 0)
	assert.InDelta(t, 1.0, s.Zoom(), 1e-12)
	assert.InDelta(t, 200, s.PositionX(), 1e-9)

	s.Focus(500, 500, 10)
	assert.InDelta(t, 1.0, s.Zoom(), 1e-12)
	assert.InDelta(t, 490, s.PositionX(), 1e-9)
}

func TestResizeKeepsWindow(t *testing.T) {
	s := New(100, 10)
	s.SetBounds(0, 1000)
	s.Reset()

	s.Resize(200, 20)
	assert.InDelta(t, 1000, s.RealView(), 1e-9)
	assert.Equal(t, 200.0, s.Width())
	assert.Equal(t, 20.0, s.Height())
}
