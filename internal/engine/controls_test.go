package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickguess/internal/game"
	"github.com/roach88/tickguess/internal/stream"
)

func TestBind_MissingControls(t *testing.T) {
	surface := &fakeSurface{names: []string{ControlStart, ControlStop, ControlReset, ControlQuarter}}

	c, err := Bind(surface)
	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, IsMissingControlError(err))
	assert.Contains(t, err.Error(), "half, text")

	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "half,text", re.Details["missing"])
}

func TestBind_ExtraControlsIgnored(t *testing.T) {
	surface := &fakeSurface{names: append([]string{"quit"}, RequiredControls...)}
	_, err := Bind(surface)
	assert.NoError(t, err)
}

func TestControls_PressRoutesToStream(t *testing.T) {
	c, err := Bind(newFakeSurface())
	require.NoError(t, err)

	got := map[string]int{}
	for _, name := range []string{ControlStart, ControlHalf, ControlQuarter, ControlStop, ControlReset} {
		name := name
		sc, _ := c.button(name)
		sc.Stream().Subscribe(stream.Observer[Occurrence]{
			Next: func(Occurrence) { got[name]++ },
		})
	}

	require.NoError(t, c.Press(ControlHalf))
	require.NoError(t, c.Press(ControlHalf))
	require.NoError(t, c.Press(ControlStop))

	assert.Equal(t, map[string]int{ControlHalf: 2, ControlStop: 1}, got)
}

func TestControls_PressUnknown(t *testing.T) {
	c, err := Bind(newFakeSurface())
	require.NoError(t, err)

	err = c.Press(ControlText)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeUnknownControl, re.Code)
}

func TestControls_TypeCarriesFullText(t *testing.T) {
	c, err := Bind(newFakeSurface())
	require.NoError(t, err)

	var texts []string
	c.Text().Subscribe(stream.Observer[string]{Next: func(s string) { texts = append(texts, s) }})
	c.Type("1")
	c.Type("12")
	c.Type("")

	assert.Equal(t, []string{"1", "12", ""}, texts)
}

func TestControls_SpeedMapsToButton(t *testing.T) {
	c, err := Bind(newFakeSurface())
	require.NoError(t, err)

	for _, s := range game.Speeds {
		n := 0
		sub := c.Speed(s).Subscribe(stream.Observer[Occurrence]{Next: func(Occurrence) { n++ }})
		require.NoError(t, c.Press(string(s)))
		sub.Unsubscribe()
		assert.Equal(t, 1, n, "speed %s", s)
	}
}
