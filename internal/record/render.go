package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

func Render(w io.Writer, rec Record, format string) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(orderedNode(rec)); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		return renderTable(w, rec)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func orderedNode(rec Record) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range rec.Keys() {
		var v yaml.Node
		_ = v.Encode(rec[k])
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &v)
	}
	return n
}

func renderTable(w io.Writer, rec Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range rec.Keys() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", k, colorize(k, rec)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func colorize(key string, rec Record) string {
	v := fmt.Sprint(rec[key])
	switch key {
	case KeyResponseCode:
		code, _ := rec[key].(int)
		switch {
		case code >= 500:
			return color.New(color.FgRed, color.Bold).Sprint(v)
		case code >= 400:
			return color.RedString(v)
		case code >= 300:
			return color.YellowString(v)
		default:
			return color.GreenString(v)
		}
	case KeyTimedOut:
		if b, _ := rec[key].(bool); b {
			return color.RedString(v)
		}
		return v
	case KeyHasExpectedString:
		if v == "true" {
			return color.GreenString(v)
		}
		return color.RedString(v)
	}
	if strings.HasPrefix(key, HeaderPrefix) {
		return color.HiBlackString(v)
	}
	return v
}
