package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileYAML(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "capture.yaml")
	require.NoError(os.WriteFile(path, []byte(`
output: /var/log/svc.log
stderr: /var/log/svc.err
buffer_size: 4096
strategy: size
value: "1048576"
max_archives: 5
max_age: 168h
compress: true
`), 0o600))

	conf := &config{}
	require.NoError(loadFile(conf, path))
	assert.Equal(t, "/var/log/svc.log", conf.Output)
	assert.Equal(t, "/var/log/svc.err", conf.Stderr)
	assert.Equal(t, 4096, conf.BufferSize)
	assert.Equal(t, "size", conf.Strategy)
	assert.Equal(t, "1048576", conf.Value)
	assert.Equal(t, 5, conf.MaxArchives)
	assert.Equal(t, 7*24*time.Hour, conf.MaxAge)
	assert.True(t, conf.Compress)
}

func TestLoadFileJSON(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "capture.json")
	require.NoError(os.WriteFile(path, []byte(`{"output":"svc.log","strategy":"time","value":"hourly"}`), 0o600))

	conf := &config{}
	require.NoError(loadFile(conf, path))
	assert.Equal(t, "svc.log", conf.Output)
	assert.Equal(t, "time", conf.Strategy)
	assert.Equal(t, "hourly", conf.Value)
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	conf := &config{}
	assert.Error(loadFile(conf, filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	assert.Error(loadFile(conf, path))
}

func TestStderrPath(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	conf := &config{Output: "/var/log/svc.log"}
	assert.Equal("/var/log/svc.err", conf.StderrPath())

	conf.Output = "/var/log/svc"
	assert.Equal("/var/log/svc.err", conf.StderrPath())

	conf.Stderr = "/var/log/other.err"
	assert.Equal("/var/log/other.err", conf.StderrPath())
}
