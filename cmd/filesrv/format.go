package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ideamans/go-l10n"
	"github.com/olekukonko/tablewriter"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/blocks"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")
	table.SetCenterSeparator("┼")
	table.SetRowSeparator("─")
	table.SetAutoWrapText(false)
	return table
}

func renderEntries(w io.Writer, entries []filesrv.Entry) {
	table := newTable(w, l10n.T("Name"), l10n.T("Type"), l10n.T("Size"))
	for _, e := range entries {
		size := "-"
		if !e.IsDir() && e.Type != "" {
			size = humanize.Bytes(uint64(e.Size))
		}
		name := e.Name
		if e.IsDir() {
			name += "/"
		}
		table.Append([]string{name, e.Type, size})
	}
	table.Render()
}

func renderDescriptors(w io.Writer, descs []blocks.Descriptor) {
	fmt.Fprintf(w, "%s (%s) %s %s\n", blocks.ExtensionName, blocks.ExtensionID, blocks.PrimaryColor, blocks.AccentColor)
	table := newTable(w, l10n.T("Opcode"), l10n.T("Type"), l10n.T("Arguments"))
	for _, d := range descs {
		args := make([]string, 0, len(d.Arguments))
		for _, a := range d.Arguments {
			args = append(args, a.Name+"="+a.Default)
		}
		table.Append([]string{d.Opcode, string(d.Type), strings.Join(args, " ")})
	}
	table.Render()
}
