package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/zincware/zninit"
	"github.com/zincware/zninit/internal/cli/ui"
)

// describeClass renders one class as a heading plus an attribute table in
// declaration order.
func describeClass(w io.Writer, cls *zninit.Class, noColor bool) {
	heading := cls.Name()
	if parent := cls.Parent(); parent != nil {
		heading = fmt.Sprintf("%s (extends %s)", cls.Name(), parent.Name())
	}
	ui.Heading(w, heading, noColor)

	table := ui.NewTable(w, []string{"ATTRIBUTE", "KIND", "DEFAULT", "FROZEN", "REPR"}, noColor)
	for _, d := range cls.Attributes() {
		def := "(required)"
		if value, ok := d.Default(); ok {
			def = d.Repr(value)
		}
		table.AddRow(
			d.Name(),
			string(d.Kind()),
			def,
			strconv.FormatBool(d.IsFrozen()),
			strconv.FormatBool(d.UseRepr()),
		)
	}
	table.Render()
}
