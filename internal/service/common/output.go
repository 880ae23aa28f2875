package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Stdout は表示関数の出力先（テストで差し替え可能）
var Stdout io.Writer = os.Stdout

// PrintSimpleList はシンプルな箇条書きリストを表示
func PrintSimpleList(output ListOutput) {
	fmt.Fprintf(Stdout, "%s:\n", output.Title)

	if len(output.Items) == 0 {
		fmt.Fprintf(Stdout, "該当する%sはありませんでした\n", output.ResourceName)
		return
	}

	for _, item := range output.Items {
		fmt.Fprintf(Stdout, "  - %s\n", item)
	}

	if output.ShowCount {
		fmt.Fprintf(Stdout, "\n合計: %d個の%s\n", len(output.Items), output.ResourceName)
	}
}

// PrintTable はテーブル形式でデータを表示する
// 列幅は表示幅で計算するため、日本語のヘッダーやセルでも桁が揃う
func PrintTable(title string, columns []TableColumn, data [][]string) {
	if title != "" {
		fmt.Fprintf(Stdout, "\n%s:\n", title)
	}

	// 各列の最大幅を計算（ヘッダーとデータの中で最大値を取得）
	colWidths := make([]int, len(columns))
	for i, col := range columns {
		colWidths[i] = max(col.Width, runewidth.StringWidth(col.Header))
	}
	for _, row := range data {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
			}
		}
	}

	// ヘッダー表示
	for i, col := range columns {
		fmt.Fprintf(Stdout, "%s ", runewidth.FillRight(col.Header, colWidths[i]))
	}
	fmt.Fprintln(Stdout)

	// 区切り線
	for i := range columns {
		fmt.Fprintf(Stdout, "%s ", strings.Repeat("-", colWidths[i]))
	}
	fmt.Fprintln(Stdout)

	// データ行
	for _, row := range data {
		for i, cell := range row {
			if i < len(columns) {
				fmt.Fprintf(Stdout, "%s ", runewidth.FillRight(cell, colWidths[i]))
			}
		}
		fmt.Fprintln(Stdout)
	}
}

// DisplayList は汎用的なリスト表示関数
func DisplayList[T any](
	items []T,
	title string,
	toTableData func([]T) ([]TableColumn, [][]string),
	opts *DisplayOptions,
) {
	if opts == nil {
		opts = &DisplayOptions{}
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = "リソースが見つかりませんでした"
	}

	if len(items) == 0 {
		fmt.Fprintln(Stdout, opts.EmptyMessage)
		return
	}

	columns, data := toTableData(items)
	PrintTable(title, columns, data)

	if opts.ShowCount {
		fmt.Fprintf(Stdout, "\n合計: %d件\n", len(items))
	}
}
