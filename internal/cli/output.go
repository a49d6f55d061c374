package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/liangyou/gotool/internal/config"
)

// render 按配置的输出格式写出 v；text 模式调用 text 渲染可读输出。
func (a *App) render(v any, text func(w io.Writer)) error {
	format := config.OutputText
	if a.cfg != nil {
		format = a.cfg.Output
	}

	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("cli: encode json: %w", err)
		}
		return nil
	case config.OutputYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("cli: encode yaml: %w", err)
		}
		return enc.Close()
	default:
		text(a.out)
		return nil
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// renderFields 以两列表格输出键值对。
func renderFields(w io.Writer, rows ...table.Row) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows(rows)
	t.Render()
}
