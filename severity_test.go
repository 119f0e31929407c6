package hlog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSeverity_String(t *testing.T) {
	cases := map[Severity]string{
		UnsetIssuer:   "UNSET",
		DebugIssuer:   "DEBUG",
		InfoIssuer:    "INFO",
		WarnIssuer:    "WARN",
		ErrorIssuer:   "ERROR",
		FatalIssuer:   "FATAL",
		DisableIssuer: "DISABLE",
		Severity(35):  "35",
		Severity(-1):  "-1",
	}
	for s, want := range cases {
		assert.Equal(t, want, s.String())
	}
}

func TestSeverity_Classification(t *testing.T) {
	assert := assert.New(t)
	assert.True(DebugIssuer.IsLevel())
	assert.True(FatalIssuer.IsLevel())
	assert.False(UnsetIssuer.IsLevel())
	assert.False(DisableIssuer.IsLevel())
	assert.False(Severity(15).IsLevel())

	assert.True(UnsetIssuer.IsThreshold())
	assert.True(DisableIssuer.IsThreshold())
	assert.False(Severity(70).IsThreshold())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"", UnsetIssuer},
		{"debug", DebugIssuer},
		{"INFO", InfoIssuer},
		{" Warning ", WarnIssuer},
		{"err", ErrorIssuer},
		{"fatal", FatalIssuer},
		{"off", DisableIssuer},
		{"30", WarnIssuer},
		{"60", DisableIssuer},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"verbose", "25", "-10"} {
		_, err := ParseSeverity(bad)
		assert.True(t, errors.Is(err, ErrInvalidArgument), bad)
	}
}

func TestSeverity_TextAndYAML(t *testing.T) {
	text, err := ErrorIssuer.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ERROR", string(text))

	var doc struct {
		Level  Severity   `yaml:"level"`
		Levels []Severity `yaml:"levels"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("level: warn\nlevels: [debug, 50]\n"), &doc))
	assert.Equal(t, WarnIssuer, doc.Level)
	assert.Equal(t, []Severity{DebugIssuer, FatalIssuer}, doc.Levels)

	err = yaml.Unmarshal([]byte("level: {a: b}\n"), &doc)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	var s Severity
	assert.Error(t, s.SetValue("chatty"))
	require.NoError(t, s.SetValue("fatal"))
	assert.Equal(t, FatalIssuer, s)
}
