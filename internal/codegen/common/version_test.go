package common

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	old, oldRead := Version, readBuildInfo
	t.Cleanup(func() { Version, readBuildInfo = old, oldRead })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	Version = ""
	v, err := GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "0.0.1-dev", v)

	Version = "v1.4.2-dirty"
	v, err = GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.4.2-dirty", v)

	Version = "nightly"
	_, err = GetVersion()
	assert.Error(t, err)
}

func TestGetVersionFromBuildInfo(t *testing.T) {
	old, oldRead := Version, readBuildInfo
	t.Cleanup(func() { Version, readBuildInfo = old, oldRead })
	Version = ""

	cases := []struct {
		name string
		main string
		want string
	}{
		{"installed", "v0.3.1", "0.3.1"},
		{"devel", "(devel)", "0.0.1-dev"},
		{"pseudo", "v0.0.0-20260101000000-abcdef012345", "0.0.0-20260101000000-abcdef012345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			readBuildInfo = func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: tc.main}}, true
			}
			v, err := GetVersion()
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestGuardName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"can_cfg.h", "CAN_CFG_H"},
		{"out/motor-table.h", "MOTOR_TABLE_H"},
		{`gen\ecu.h`, "ECU_H"},
		{"2nd.h", "_2ND_H"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, GuardName(tc.in))
		})
	}
}
