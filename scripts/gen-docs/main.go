package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"empsync/cmd"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	docsDir := "./docs"

	// 既存のdocsディレクトリをクリーン
	if err := os.RemoveAll(docsDir); err != nil {
		log.Fatalf("Failed to clean docs directory: %v", err)
	}
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		log.Fatalf("Failed to create docs directory: %v", err)
	}

	// ルートコマンドはdocs/README.mdとして生成
	if err := genMarkdown(cmd.RootCmd, filepath.Join(docsDir, "README.md")); err != nil {
		log.Fatalf("Failed to generate root documentation: %v", err)
	}

	fileCount := 1
	for _, subCmd := range cmd.RootCmd.Commands() {
		if !subCmd.IsAvailableCommand() || subCmd.IsAdditionalHelpTopicCommand() {
			continue
		}
		filename := filepath.Join(docsDir, subCmd.Name()+".md")
		if err := genMarkdown(subCmd, filename); err != nil {
			log.Printf("Failed to generate documentation for %s: %v", subCmd.Name(), err)
			continue
		}
		fileCount++
	}

	fmt.Printf("✅ Documentation generated in %s (%d files)\n", docsDir, fileCount)
}

// linkHandler はドキュメント内のリンクをファイル名に合わせる
// empsync.md -> README.md, empsync_sync.md -> sync.md
func linkHandler(name string) string {
	base := strings.TrimSuffix(name, ".md")
	if base == cmd.AppName {
		return "README.md"
	}
	return strings.TrimPrefix(base, cmd.AppName+"_") + ".md"
}

// genMarkdown は単一のコマンドのドキュメントを生成
func genMarkdown(c *cobra.Command, filename string) error {
	buf := new(bytes.Buffer)
	if err := doc.GenMarkdownCustom(c, buf, linkHandler); err != nil {
		return err
	}

	content := buf.String()
	// versionコマンドにはAWS関連の継承フラグは不要
	if c.Name() == "version" {
		content = removeInheritedFlagsSection(content)
	}
	return os.WriteFile(filename, []byte(content), 0644)
}

// removeInheritedFlagsSection は継承フラグセクションを削除
func removeInheritedFlagsSection(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	inInheritedSection := false

	for _, line := range lines {
		if strings.HasPrefix(line, "### Options inherited from parent commands") {
			inInheritedSection = true
			continue
		}
		// 次のセクションに到達したら除外モードを解除
		if inInheritedSection && strings.HasPrefix(line, "##") {
			inInheritedSection = false
		}
		if !inInheritedSection {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
