package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext(t *testing.T) {
	assert.Equal(t, logrus.StandardLogger(), Logger(context.Background()))

	logger, hook := test.NewNullLogger()
	ctx := WithLogger(context.Background(), logger.WithField("fixture", "a"))
	Logger(ctx).Info("hello")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "a", hook.LastEntry().Data["fixture"])
}

func TestNewLevels(t *testing.T) {
	cases := []struct {
		name    string
		level   string
		verbose bool
		want    logrus.Level
	}{
		{name: "default", want: logrus.InfoLevel},
		{name: "explicit", level: "warn", want: logrus.WarnLevel},
		{name: "verbose", verbose: true, want: logrus.DebugLevel},
		{name: "verbose keeps trace", level: "trace", verbose: true, want: logrus.TraceLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := New(&bytes.Buffer{}, tc.level, tc.verbose)
			require.NoError(t, err)
			assert.Equal(t, tc.want, logger.GetLevel())
		})
	}

	_, err := New(&bytes.Buffer{}, "loud", false)
	assert.Error(t, err)
}
