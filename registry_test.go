package hlog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveThreshold_Ancestors(t *testing.T) {
	assert := assert.New(t)
	ctx, _, _ := newTestContext()

	require.NoError(t, ctx.SetThreshold("x", ErrorIssuer))
	level, err := ctx.GetEffectiveThreshold("x.y.z")
	require.NoError(t, err)
	assert.Equal(ErrorIssuer, level)

	// the closer ancestor takes over once set
	require.NoError(t, ctx.SetThreshold("x.y", DebugIssuer))
	level, err = ctx.GetEffectiveThreshold("x.y.z")
	require.NoError(t, err)
	assert.Equal(DebugIssuer, level)

	// an explicit entry on the logger itself wins over every ancestor
	require.NoError(t, ctx.SetThreshold("x.y.z", FatalIssuer))
	level, err = ctx.GetEffectiveThreshold("x.y.z")
	require.NoError(t, err)
	assert.Equal(FatalIssuer, level)

	// unrelated names fall back to the default
	level, err = ctx.GetEffectiveThreshold("other.y.z")
	require.NoError(t, err)
	assert.Equal(InfoIssuer, level)
}

func TestEffectiveThreshold_PrefixIsNotSubstring(t *testing.T) {
	assert := assert.New(t)
	ctx, _, _ := newTestContext()

	require.NoError(t, ctx.SetThreshold("ab", ErrorIssuer))
	level, err := ctx.GetEffectiveThreshold("abc")
	require.NoError(t, err)
	assert.Equal(InfoIssuer, level)

	level, err = ctx.GetEffectiveThreshold("abc.d")
	require.NoError(t, err)
	assert.Equal(InfoIssuer, level)

	level, err = ctx.GetEffectiveThreshold("ab.c")
	require.NoError(t, err)
	assert.Equal(ErrorIssuer, level)
}

func TestEffectiveThreshold_EmptySegments(t *testing.T) {
	assert := assert.New(t)
	ctx, _, _ := newTestContext()

	require.NoError(t, ctx.SetThreshold("a", WarnIssuer))
	level, err := ctx.GetEffectiveThreshold("a..b")
	require.NoError(t, err)
	assert.Equal(WarnIssuer, level)

	require.NoError(t, ctx.SetThreshold("a.", ErrorIssuer))
	level, err = ctx.GetEffectiveThreshold("a..b")
	require.NoError(t, err)
	assert.Equal(ErrorIssuer, level, "\"a.\" is the closest ancestor of \"a..b\"")

	// a leading dot has the root as ancestor
	level, err = ctx.GetEffectiveThreshold(".a")
	require.NoError(t, err)
	assert.Equal(InfoIssuer, level)

	// a trailing dot has its own name without the dot as ancestor
	level, err = ctx.GetEffectiveThreshold("a.")
	require.NoError(t, err)
	assert.Equal(ErrorIssuer, level)
}

func TestEmptyName_IsDefaultThreshold(t *testing.T) {
	assert := assert.New(t)
	ctx, _, _ := newTestContext()

	require.NoError(t, ctx.SetThreshold("", WarnIssuer))
	assert.Equal(WarnIssuer, ctx.GetDefaultThreshold())

	level, err := ctx.GetThreshold("")
	require.NoError(t, err)
	assert.Equal(WarnIssuer, level)

	ctx.SetDefaultThreshold(ErrorIssuer)
	require.NoError(t, ctx.SetThreshold("a", DebugIssuer))
	level, err = ctx.GetEffectiveThreshold("")
	require.NoError(t, err)
	assert.Equal(ErrorIssuer, level)

	assert.ErrorIs(ctx.SetThreshold("", UnsetIssuer), ErrInvalidArgument)
	assert.Equal(ErrorIssuer, ctx.GetDefaultThreshold())
}

func TestGetThreshold_NoInheritance(t *testing.T) {
	assert := assert.New(t)
	ctx, _, _ := newTestContext()

	require.NoError(t, ctx.SetThreshold("a", ErrorIssuer))
	assert.Equal(1, ctx.registry.size())
	level, err := ctx.GetThreshold("a.b")
	require.NoError(t, err)
	assert.Equal(UnsetIssuer, level)

	level, err = ctx.GetThreshold("a")
	require.NoError(t, err)
	assert.Equal(ErrorIssuer, level)

	require.NoError(t, ctx.SetThreshold("a", UnsetIssuer))
	assert.Equal(0, ctx.registry.size(), "unset removes the entry")
	level, err = ctx.GetThreshold("a")
	require.NoError(t, err)
	assert.Equal(UnsetIssuer, level)
}

func TestSetThreshold_InvalidArguments(t *testing.T) {
	assert := assert.New(t)
	ctx, _, _ := newTestContext()
	require.NoError(t, ctx.SetThreshold("keep", WarnIssuer))

	assert.ErrorIs(ctx.SetThreshold("keep", Severity(15)), ErrInvalidArgument)
	assert.ErrorIs(ctx.SetThreshold("bad\x00name", WarnIssuer), ErrInvalidArgument)

	_, err := ctx.GetThreshold("bad\x00name")
	assert.ErrorIs(err, ErrInvalidArgument)
	_, err = ctx.GetEffectiveThreshold("bad\x00name")
	assert.ErrorIs(err, ErrInvalidArgument)

	// prior entries are untouched
	level, err := ctx.GetThreshold("keep")
	require.NoError(t, err)
	assert.Equal(WarnIssuer, level)

	var nilCtx *Context
	assert.ErrorIs(nilCtx.SetThreshold("a", WarnIssuer), ErrInvalidArgument)
	_, err = nilCtx.GetThreshold("a")
	assert.ErrorIs(err, ErrInvalidArgument)
	_, err = nilCtx.GetEffectiveThreshold("a")
	assert.ErrorIs(err, ErrInvalidArgument)
	assert.False(nilCtx.IsEnabledFor("a", FatalIssuer))
}

func TestRegistryCorruption(t *testing.T) {
	assert := assert.New(t)
	ctx, _, _ := newTestContext()
	require.NoError(t, ctx.Initialize())

	// bypass validation to simulate a damaged table
	ctx.registry.entries.Store("broken", Severity(7))

	_, err := ctx.GetThreshold("broken")
	assert.True(errors.Is(err, ErrRegistryCorruption))
	_, err = ctx.GetEffectiveThreshold("broken.child")
	assert.True(errors.Is(err, ErrRegistryCorruption))

	// filtering falls back to the default threshold
	assert.True(ctx.IsEnabledFor("broken.child", InfoIssuer))
	assert.False(ctx.IsEnabledFor("broken.child", DebugIssuer))
}

func TestIsEnabledFor_Monotonic(t *testing.T) {
	ctx, _, _ := newTestContext()
	require.NoError(t, ctx.SetThreshold("a", WarnIssuer))
	require.NoError(t, ctx.SetThreshold("a.b", DebugIssuer))
	require.NoError(t, ctx.SetThreshold("c", DisableIssuer))
	ctx.SetDefaultThreshold(ErrorIssuer)

	names := []string{"", "a", "a.b", "a.b.c", "a.x", "c", "c.d", "z"}
	levels := []Severity{UnsetIssuer, DebugIssuer, InfoIssuer, WarnIssuer, ErrorIssuer, FatalIssuer}
	for _, name := range names {
		for i, low := range levels {
			for _, high := range levels[i:] {
				if ctx.IsEnabledFor(name, low) && !ctx.IsEnabledFor(name, high) {
					t.Errorf("%q enabled for %v but not for %v", name, low, high)
				}
			}
		}
	}
}
