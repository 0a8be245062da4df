package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zincware/zninit"
	"github.com/zincware/zninit/descriptor"
)

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zninit.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeModelFile(t, `
models:
  - name: Animal
    attributes:
      - name: age
        kind: params
        required: true
  - name: Cat
    extends: Animal
    attributes:
      - name: name
        default: Billy
        frozen: true
checks:
  - model: Cat
    kwargs:
      age: 4
`)
		file, err := Load(path)
		require.NoError(t, err)
		require.Len(t, file.Models, 2)
		assert.Equal(t, "Animal", file.Models[0].Name)
		assert.Equal(t, "Animal", file.Models[1].Extends)
		assert.True(t, file.Models[0].Attributes[0].Required)
		assert.Equal(t, "Billy", file.Models[1].Attributes[0].Default)
		require.Len(t, file.Checks, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})

	t.Run("unknown parent", func(t *testing.T) {
		path := writeModelFile(t, `
models:
  - name: Cat
    extends: Animal
`)
		_, err := Load(path)
		require.ErrorContains(t, err, "extends unknown model")
	})

	t.Run("duplicate model", func(t *testing.T) {
		path := writeModelFile(t, `
models:
  - name: Cat
  - name: Cat
`)
		_, err := Load(path)
		require.ErrorContains(t, err, "declared twice")
	})

	t.Run("required with default", func(t *testing.T) {
		path := writeModelFile(t, `
models:
  - name: Cat
    attributes:
      - name: age
        required: true
        default: 4
`)
		_, err := Load(path)
		require.ErrorContains(t, err, "required but has a default")
	})

	t.Run("check references unknown model", func(t *testing.T) {
		path := writeModelFile(t, `
models:
  - name: Cat
checks:
  - model: Dog
`)
		_, err := Load(path)
		require.ErrorContains(t, err, "unknown model")
	})
}

func TestBuild(t *testing.T) {
	t.Cleanup(zninit.Reset)

	path := writeModelFile(t, `
models:
  - name: BuildAnimal
    attributes:
      - name: age
        kind: params
        required: true
  - name: BuildCat
    extends: BuildAnimal
    init_kinds: [params]
    attributes:
      - name: name
        kind: params
        required: true
      - name: sound
        default: meow
        kind: outs
`)
	file, err := Load(path)
	require.NoError(t, err)

	classes, err := file.Build()
	require.NoError(t, err)
	require.Len(t, classes, 2)

	cat, ok := zninit.Lookup("BuildCat")
	require.True(t, ok)
	assert.Same(t, classes[1], cat)
	assert.Equal(t, "BuildAnimal", cat.Parent().Name())

	inst, err := cat.New(zninit.Kwargs{"age": 4, "name": "Billy"})
	require.NoError(t, err)
	age, err := inst.Get("age")
	require.NoError(t, err)
	assert.Equal(t, 4, age)

	// sound has kind outs and is excluded by init_kinds
	_, err = cat.New(zninit.Kwargs{"age": 4, "name": "Billy", "sound": "purr"})
	require.Error(t, err)

	attrs := cat.Attributes(descriptor.Kind("outs"))
	require.Len(t, attrs, 1)
	assert.Equal(t, "sound", attrs[0].Name())
}
