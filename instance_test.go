package zninit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zincware/zninit/descriptor"
	"github.com/zincware/zninit/zerrors"
)

func TestInstanceAccess(t *testing.T) {
	t.Cleanup(Reset)

	cls := MustNewClass("Access",
		WithAttribute("value", descriptor.New()),
	)

	t.Run("get and set go through the descriptor", func(t *testing.T) {
		inst, err := cls.New(Kwargs{"value": 1})
		require.NoError(t, err)
		require.NoError(t, inst.Set("value", 2))
		value, err := inst.Get("value")
		require.NoError(t, err)
		assert.Equal(t, 2, value)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		inst, err := cls.New(Kwargs{"value": 1})
		require.NoError(t, err)

		var cfgErr *zerrors.ConfigurationError
		_, err = inst.Get("missing")
		require.ErrorAs(t, err, &cfgErr)
		err = inst.Set("missing", 1)
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestAsDict(t *testing.T) {
	t.Cleanup(Reset)

	cls := MustNewClass("DictExample",
		WithAttribute("parameter", descriptor.New()),
		WithAttribute("pinned", descriptor.New(descriptor.WithDefault(nil), descriptor.WithFrozen())),
	)

	t.Run("round trips keywords plus defaults", func(t *testing.T) {
		inst, err := cls.New(Kwargs{"parameter": 25})
		require.NoError(t, err)

		dict, err := inst.AsDict()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"parameter": 25, "pinned": nil}, dict)
	})

	t.Run("unset attribute without default fails", func(t *testing.T) {
		bare := MustNewClass("DictBare",
			WithInitKinds(kindParams),
			WithAttribute("hidden", descriptor.New(descriptor.WithKind(kindOuts))),
		)
		inst, err := bare.New(Kwargs{})
		require.NoError(t, err)

		_, err = inst.AsDict()
		var unsetErr *zerrors.UnsetAttributeError
		require.ErrorAs(t, err, &unsetErr)
	})
}

func TestRepr(t *testing.T) {
	t.Cleanup(Reset)

	t.Run("declaration order with defaults", func(t *testing.T) {
		human := MustNewClass("ReprHuman",
			WithAttribute("name", descriptor.New()),
			WithAttribute("language", descriptor.New(descriptor.WithDefault("EN"))),
		)
		inst, err := human.New(Kwargs{"name": "Fabian"})
		require.NoError(t, err)
		assert.Equal(t, `ReprHuman(name="Fabian", language="EN")`, inst.String())
	})

	t.Run("is parseable as a constructor call", func(t *testing.T) {
		cls := MustNewClass("ReprRoundTrip",
			WithAttribute("a", descriptor.New()),
			WithAttribute("b", descriptor.New()),
		)
		inst, err := cls.New(Kwargs{"a": 1, "b": "two"})
		require.NoError(t, err)
		assert.Equal(t, `ReprRoundTrip(a=1, b="two")`, inst.String())
	})

	t.Run("hidden attributes are omitted", func(t *testing.T) {
		cls := MustNewClass("ReprHidden",
			WithAttribute("visible", descriptor.New()),
			WithAttribute("secret", descriptor.New(descriptor.WithRepr(false))),
		)
		inst, err := cls.New(Kwargs{"visible": 1, "secret": 2})
		require.NoError(t, err)
		assert.Equal(t, "ReprHidden(visible=1)", inst.String())
	})

	t.Run("custom repr func", func(t *testing.T) {
		cls := MustNewClass("ReprCustom",
			WithAttribute("data", descriptor.New(
				descriptor.WithReprFunc(func(value any) string {
					return fmt.Sprintf("<%d items>", len(value.([]int)))
				}),
			)),
		)
		inst, err := cls.New(Kwargs{"data": []int{1, 2, 3}})
		require.NoError(t, err)
		assert.Equal(t, "ReprCustom(data=<3 items>)", inst.String())
	})

	t.Run("class level repr disabled", func(t *testing.T) {
		cls := MustNewClass("ReprDisabled",
			WithoutRepr(),
			WithAttribute("value", descriptor.New()),
		)
		inst, err := cls.New(Kwargs{"value": 1})
		require.NoError(t, err)
		assert.Contains(t, inst.String(), "<ReprDisabled instance at ")
	})

	t.Run("unset attributes are omitted", func(t *testing.T) {
		cls := MustNewClass("ReprUnset",
			WithInitKinds(kindParams),
			WithAttribute("parameter", descriptor.New(descriptor.WithKind(kindParams))),
			WithAttribute("output", descriptor.New(descriptor.WithKind(kindOuts))),
		)
		inst, err := cls.New(Kwargs{"parameter": 1})
		require.NoError(t, err)
		assert.Equal(t, "ReprUnset(parameter=1)", inst.String())
	})
}

func TestEqual(t *testing.T) {
	t.Cleanup(Reset)

	cls := MustNewClass("EqualExample",
		WithAttribute("a", descriptor.New()),
		WithAttribute("b", descriptor.New(descriptor.WithDefault("x"))),
	)
	other := MustNewClass("EqualOther",
		WithAttribute("a", descriptor.New()),
		WithAttribute("b", descriptor.New(descriptor.WithDefault("x"))),
	)

	t.Run("equal values", func(t *testing.T) {
		first, err := cls.New(Kwargs{"a": 1})
		require.NoError(t, err)
		second, err := cls.New(Kwargs{"a": 1, "b": "x"})
		require.NoError(t, err)
		assert.True(t, first.Equal(second))
	})

	t.Run("different values", func(t *testing.T) {
		first, err := cls.New(Kwargs{"a": 1})
		require.NoError(t, err)
		second, err := cls.New(Kwargs{"a": 2})
		require.NoError(t, err)
		assert.False(t, first.Equal(second))
	})

	t.Run("different classes", func(t *testing.T) {
		first, err := cls.New(Kwargs{"a": 1})
		require.NoError(t, err)
		second, err := other.New(Kwargs{"a": 1})
		require.NoError(t, err)
		assert.False(t, first.Equal(second))
		assert.False(t, first.Equal(nil))
	})

	t.Run("deep values compare structurally", func(t *testing.T) {
		first, err := cls.New(Kwargs{"a": []int{1, 2}})
		require.NoError(t, err)
		second, err := cls.New(Kwargs{"a": []int{1, 2}})
		require.NoError(t, err)
		assert.True(t, first.Equal(second))
	})
}
