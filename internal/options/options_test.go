package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omf2/omf2/errs"
	"github.com/omf2/omf2/internal/options"
	"github.com/omf2/omf2/limits"
)

// session mirrors the configuration surface writer.Writer, reader.Reader
// and omf1.Converter share: safety limits plus a compression level, seeded
// with defaults and overridden by caller options.
type session struct {
	limits limits.Limits
	level  int
}

func withLimits(l limits.Limits) options.Option[*session] {
	return options.NoError(func(s *session) { s.limits = l })
}

func withLevel(level int) options.Option[*session] {
	return options.New(func(s *session) error {
		if level < -1 || level > 9 {
			return errs.Newf(errs.InvalidArgument, "compression level %d is outside -1..9", level)
		}
		s.level = level

		return nil
	})
}

func newSession(opts ...options.Option[*session]) (*session, error) {
	s := &session{limits: limits.Default(), level: -1}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

func TestApply_NoOptionsKeepsDefaults(t *testing.T) {
	s, err := newSession()
	require.NoError(t, err)

	assert.Equal(t, limits.Default(), s.limits)
	assert.Equal(t, -1, s.level)
}

func TestApply_OptionsOverrideDefaults(t *testing.T) {
	lim := limits.Limits{MaxIndexBytes: 4096, MaxMessages: 10}

	s, err := newSession(withLimits(lim), withLevel(9))
	require.NoError(t, err)

	assert.Equal(t, lim, s.limits)
	assert.Equal(t, 9, s.level)
}

func TestApply_RunsInOrderSoLastWins(t *testing.T) {
	s, err := newSession(withLevel(3), withLevel(7))
	require.NoError(t, err)

	assert.Equal(t, 7, s.level)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	applied := false
	spy := options.NoError(func(*session) { applied = true })

	_, err := newSession(withLevel(42), spy)
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.InvalidArgument, e.Code)
	assert.False(t, applied, "options after a failing one must not run")
}

func TestNoError_NeverFails(t *testing.T) {
	opt := options.NoError(func(s *session) { s.level = 5 })

	s := &session{}
	require.NoError(t, options.Apply(s, opt))
	assert.Equal(t, 5, s.level)
}
