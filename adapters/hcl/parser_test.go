package hcl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	cerrors "cldurl/internal/errors"
)

const definitions = `
variables {
  thumb = 150
}

transformation "avatar" {
  stage {
    crop    = "thumb"
    gravity = "face"
    width   = var.thumb
    height  = var.thumb
  }
  stage {
    radius = "max"
  }
}

transformation "branded" {
  stage {
    quality = 0.5
    effect  = ["sepia", 50]
  }
  stage {
    overlay = { public_id = "logo" }
    flags   = ["layer_apply"]
  }
  raw = "fl_attachment"
}

transformation "stored" {
  stage {
    transformation = ["avatar", "branded"]
  }
}
`

func TestParse(t *testing.T) {
	file, err := NewParser(nil).Parse([]byte(definitions), "defs.hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{"avatar", "branded", "stored"}, file.Names())

	tests := map[string]string{
		"avatar":  "c_thumb,g_face,h_150,w_150/r_max",
		"branded": "e_sepia:50,q_0.5/fl_layer_apply,l_logo/fl_attachment",
		"stored":  "t_avatar.branded",
	}
	for name, want := range tests {
		def, err := file.Get(name)
		require.NoError(t, err, name)
		tr, err := def.Transformation()
		require.NoError(t, err, name)
		assert.Equal(t, want, tr.String(), name)
	}

	avatar, _ := file.Get("avatar")
	assert.Equal(t, "defs.hcl", avatar.SourceFile)
	assert.Equal(t, 6, avatar.SourceLine)
	assert.Equal(t, int64(150), avatar.Stages[0]["width"])
}

func TestParseVariablesOverride(t *testing.T) {
	file, err := NewParser(map[string]interface{}{"thumb": 200}).Parse([]byte(definitions), "defs.hcl")
	require.NoError(t, err)

	def, err := file.Get("avatar")
	require.NoError(t, err)
	tr, err := def.Transformation()
	require.NoError(t, err)
	assert.Equal(t, "c_thumb,g_face,h_200,w_200/r_max", tr.String())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.hcl")
	require.NoError(t, os.WriteFile(path, []byte(definitions), 0600))

	file, err := NewParser(nil).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, file.Path)

	_, err = NewParser(nil).ParseFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.True(t, cerrors.IsType(err, cerrors.TypeInput))
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":            `transformation "a" {`,
		"unknown block":     `layer "a" {}`,
		"missing label":     `transformation { }`,
		"undefined var":     `transformation "a" { stage { width = var.nope } }`,
		"duplicate":         "transformation \"a\" {}\ntransformation \"a\" {}",
		"unknown attribute": `transformation "a" { width = 10 }`,
		"raw not a string":  `transformation "a" { raw = 10 }`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewParser(nil).Parse([]byte(src), "bad.hcl")
			require.Error(t, err)
			assert.True(t, cerrors.IsType(err, cerrors.TypeInput), err.Error())
		})
	}
}

func TestGetUndefined(t *testing.T) {
	file, err := NewParser(nil).Parse([]byte(definitions), "defs.hcl")
	require.NoError(t, err)
	_, err = file.Get("nope")
	assert.True(t, cerrors.IsType(err, cerrors.TypeInput))
}

func TestCtyToGo(t *testing.T) {
	v, err := ctyToGo(cty.ObjectVal(map[string]cty.Value{
		"n":    cty.NumberIntVal(3),
		"f":    cty.NumberFloatVal(1.5),
		"list": cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		"null": cty.NullVal(cty.String),
		"ok":   cty.True,
	}), "test")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"n":    int64(3),
		"f":    1.5,
		"list": []interface{}{"a", "b"},
		"null": nil,
		"ok":   true,
	}, v)

	_, err = ctyToGo(cty.UnknownVal(cty.String), "test")
	var unknown *UnknownValueError
	assert.ErrorAs(t, err, &unknown)
}
