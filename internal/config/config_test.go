// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points AWARE_CFG at a testdata file and resets Config so
// the next lookup reloads it.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err)

	t.Setenv(PathEnv, absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "us-east-1", cfg.Data["region"])
				assert.Equal(t, "sandbox", cfg.Data["profile"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				ec2, ok := cfg.Data["ec2"].(map[string]interface{})
				require.True(t, ok, "ec2 should be a map")
				assert.Equal(t, "us-west-2", ec2["region"])
				assert.Equal(t, 8, ec2["parallel"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "aware", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["enabled"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				assert.Len(t, cfg.Data["tags"], 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_KeepsNamespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")
	Config.Namespace = "ec2"

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ec2", cfg.Namespace)
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(PathEnv, "/nonexistent/path/aware.yaml")
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_PathIsDirectory(t *testing.T) {
	t.Setenv(PathEnv, "testdata")
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_SearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("region: ap-south-1\n"), 0o600))

	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Source)
	assert.Equal(t, "ap-south-1", cfg.Data["region"])
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "simple", testFile: "simple.yaml", key: "region", want: "us-east-1"},
		{name: "nested", testFile: "nested.yaml", key: "colors.title", want: "#ff9900"},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "colors.odd",
			defaultValue: []string{"#00c8f0"},
			want:         "#00c8f0",
		},
		{name: "missing key without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "non-string value", testFile: "mixed-types.yaml", key: "version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int", testFile: "mixed-types.yaml", key: "version", want: 1},
		{name: "float truncated", testFile: "mixed-types.yaml", key: "timeout", want: 30},
		{name: "nested", testFile: "nested.yaml", key: "ec2.parallel", want: 8},
		{name: "missing key with default", testFile: "simple.yaml", key: "padding", defaultValue: []int{1}, want: 1},
		{name: "missing key without default", testFile: "simple.yaml", key: "padding", wantErr: true},
		{name: "non-int value", testFile: "simple.yaml", key: "region", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			got, err := GetInt(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, "sets.yaml")

	got, err := GetStringSlice("ec2.defaults")
	require.NoError(t, err)
	assert.Equal(t, []string{"--region", "us-east-1", "--parallel", "4"}, got)

	got, err = GetStringSlice("ec2.prod")
	require.NoError(t, err)
	assert.Equal(t, []string{"--tag", "env=prod", "--group-by", "tag"}, got)

	_, err = GetStringSlice("ec2.bad")
	assert.Error(t, err)

	_, err = GetStringSlice("ec2.missing")
	assert.Error(t, err)

	got, err = GetStringSlice("ec2.missing", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)
}

func TestConfig_GetWithNamespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")
	_, err := Load()
	require.NoError(t, err)

	Config.Namespace = "ec2"

	// Namespaced value wins.
	val, err := Config.get("region")
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", val)

	val, err = Config.get("group-by")
	require.NoError(t, err)
	assert.Equal(t, "tag", val)

	// Falls back to the root.
	val, err = Config.get("padding")
	require.NoError(t, err)
	assert.Equal(t, 2, val)

	Config.Namespace = "cf"
	val, err = Config.get("region")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", val)

	val, err = Config.get("group-by")
	require.NoError(t, err)
	assert.Equal(t, "vpc", val)

	_, err = Config.get("nonexistent")
	assert.Error(t, err)
}

func TestConfig_GetNestedPath(t *testing.T) {
	setupTestConfig(t, "deep-nested.yaml")

	val, err := Config.get("level1.level2.level3.value")
	require.NoError(t, err)
	assert.Equal(t, "deep-value", val)

	_, err = Config.get("level1.level2.value")
	assert.Error(t, err)
}

func TestConfig_LazyLoad(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	val, err := GetString("region")
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", val)
	assert.NotEmpty(t, Config.Source, "Config should be loaded")
}
