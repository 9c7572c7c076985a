package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
cloud:
  cloud_name: test123
  api_secret: b
auth_token:
  key: "00112233FF99"
logging:
  level: error
`

const testDefinitions = `
transformation "avatar" {
  stage {
    crop   = "thumb"
    width  = var.size
    height = var.size
  }
}

transformation "sepia" {
  stage {
    effect = "sepia"
  }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// execute runs the root command once; each test uses a different subcommand
// since cobra keeps flag state between runs.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "cldurl.yaml", testConfigYAML)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestURLCommand(t *testing.T) {
	defs := writeFile(t, t.TempDir(), "defs.hcl", testDefinitions)

	out := execute(t, "url", "sample", "--file", defs, "--name", "avatar", "--var", "size=50",
		"-o", "angle=90", "--format", "jpg", "--secure")
	assert.Equal(t, "https://res.cloudinary.com/test123/image/upload/c_thumb,h_50,w_50/a_90/sample.jpg\n", out)
}

func TestTransformCommand(t *testing.T) {
	defs := writeFile(t, t.TempDir(), "defs.hcl", testDefinitions)

	out := execute(t, "transform", defs, "--var", "size=40")
	assert.Equal(t, "avatar: c_thumb,h_40,w_40\nsepia: e_sepia\n", out)
}

func TestTokenCommand(t *testing.T) {
	out := execute(t, "token", "--acl", "/image/*", "--start-time", "1111111111", "--expiration", "1111111411")
	assert.Equal(t, "__cld_token__=st=1111111111~exp=1111111411~acl=%2fimage%2f*~hmac=1751370bcc6cfe9e03f30dd1a9722ba0f2cdca283fa3e6df3342a00a7528cc51\n", out)
}

func TestConfigCommandMasksSecrets(t *testing.T) {
	out := execute(t, "config")
	assert.Contains(t, out, "cloud_name: test123")
	assert.NotContains(t, out, "00112233FF99")
	assert.Contains(t, out, "********FF99")
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.True(t, strings.HasPrefix(out, "cldurl version "), out)
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{
		"width=100",
		"quality=0.4",
		"crop=fill",
		"secure=true",
		"size=10x10",
		"effect=sepia:50",
		"color=#ff0000",
		"transformation={crop: fill, width: 10}",
		"flags=[layer_apply, relative]",
		"empty=",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"width":          100,
		"quality":        0.4,
		"crop":           "fill",
		"secure":         true,
		"size":           "10x10",
		"effect":         "sepia:50",
		"color":          "#ff0000",
		"transformation": map[string]interface{}{"crop": "fill", "width": 10},
		"flags":          []interface{}{"layer_apply", "relative"},
		"empty":          "",
	}, got)

	_, err = parseAssignments([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"=x"})
	assert.Error(t, err)
}
