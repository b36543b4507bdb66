package topic

import (
	"fmt"
	"strings"
)

const (
	maxShortCommandRunes = 30
	maxSearchRunes       = 20
)

// phrases holds the localized templates for tool-use descriptions.
type phrases struct {
	readFile      string
	readUnknown   string
	createFile    string
	createUnknown string
	editFile      string
	editUnknown   string
	runUnknown    string
	longCommand   string
	shortCommand  string
	search        string
	searchUnknown string
	todoWrite     string
	todoRead      string
	toolUsed      string
	placeholder   string
}

var phraseTables = map[Language]phrases{
	English: {
		readFile:      "Read %s",
		readUnknown:   "Read file",
		createFile:    "Create %s",
		createUnknown: "Create new file",
		editFile:      "Edit %s",
		editUnknown:   "Edit file",
		runUnknown:    "Run command",
		longCommand:   "%s command",
		shortCommand:  "Run `%s`",
		search:        "Search for `%s`",
		searchUnknown: "Search code",
		todoWrite:     "Update TODO list",
		todoRead:      "Check TODO list",
		toolUsed:      "%s used",
		placeholder:   "Performing work",
	},
	Japanese: {
		readFile:      "%s を読み込み",
		readUnknown:   "ファイルを読み込み",
		createFile:    "%s を新規作成",
		createUnknown: "新規ファイルを作成",
		editFile:      "%s を編集",
		editUnknown:   "ファイルを編集",
		runUnknown:    "コマンドを実行",
		longCommand:   "%s コマンドを実行",
		shortCommand:  "「%s」を実行",
		search:        "「%s」を検索",
		searchUnknown: "コード内を検索",
		todoWrite:     "TODOリストを更新",
		todoRead:      "TODOリストを確認",
		toolUsed:      "%s ツールを使用",
		placeholder:   "作業を実行中",
	},
}

func phrasesFor(lang Language) phrases {
	if p, ok := phraseTables[lang]; ok {
		return p
	}
	return phraseTables[English]
}

// bashRule maps a command prefix to a fixed description.
type bashRule struct {
	prefix []string
	en     string
	ja     string
}

// Checked in order; the first matching prefix wins.
var bashRules = []bashRule{
	{[]string{"cargo", "build"}, "Build Rust project", "Rustプロジェクトをビルド"},
	{[]string{"cargo", "test"}, "Run Rust tests", "Rustのテストを実行"},
	{[]string{"cargo", "run"}, "Run program", "プログラムを実行"},
	{[]string{"go", "build"}, "Build Go project", "Goプロジェクトをビルド"},
	{[]string{"go", "test"}, "Run Go tests", "Goのテストを実行"},
	{[]string{"go", "run"}, "Run program", "プログラムを実行"},
	{[]string{"npm", "install"}, "Install npm dependencies", "npm依存関係をインストール"},
	{[]string{"npm", "test"}, "Run npm tests", "npmのテストを実行"},
	{[]string{"npm", "run", "build"}, "Build npm project", "npmプロジェクトをビルド"},
	{[]string{"git", "commit"}, "Commit changes to Git", "変更をGitにコミット"},
	{[]string{"git", "status"}, "Check Git status", "Gitステータスを確認"},
	{[]string{"mkdir"}, "Create directory", "ディレクトリを作成"},
	{[]string{"echo"}, "Print message", "メッセージを出力"},
}

func (r bashRule) matches(fields []string) bool {
	if len(fields) < len(r.prefix) {
		return false
	}
	for i, p := range r.prefix {
		if fields[i] != p {
			return false
		}
	}
	return true
}

func (r bashRule) phrase(lang Language) string {
	if lang == Japanese {
		return r.ja
	}
	return r.en
}

// DescribeToolUse renders a human-readable description of one tool invocation.
func DescribeToolUse(name string, input interface{}, lang Language) string {
	p := phrasesFor(lang)
	switch name {
	case "Read":
		return withFile(p.readFile, p.readUnknown, inputStr(input, "file_path"))
	case "Write":
		return withFile(p.createFile, p.createUnknown, inputStr(input, "file_path"))
	case "Edit", "MultiEdit":
		return withFile(p.editFile, p.editUnknown, inputStr(input, "file_path"))
	case "NotebookEdit":
		return withFile(p.editFile, p.editUnknown, inputStr(input, "notebook_path"))
	case "Bash":
		return describeCommand(inputStr(input, "command"), p, lang)
	case "Grep":
		pattern := inputStr(input, "pattern")
		if pattern == "" {
			return p.searchUnknown
		}
		return fmt.Sprintf(p.search, truncateRunes(pattern, maxSearchRunes))
	case "TodoWrite":
		return p.todoWrite
	case "TodoRead":
		return p.todoRead
	default:
		return fmt.Sprintf(p.toolUsed, name)
	}
}

func withFile(format, unknown, path string) string {
	if path == "" {
		return unknown
	}
	return fmt.Sprintf(format, baseName(path))
}

func describeCommand(cmd string, p phrases, lang Language) string {
	cmd = strings.TrimSpace(cmd)
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return p.runUnknown
	}
	for _, rule := range bashRules {
		if rule.matches(fields) {
			return rule.phrase(lang)
		}
	}
	if runeLen(cmd) > maxShortCommandRunes {
		return fmt.Sprintf(p.longCommand, fields[0])
	}
	return fmt.Sprintf(p.shortCommand, cmd)
}

// baseName returns the last path component for either separator style.
func baseName(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" {
		return path
	}
	return trimmed
}

func inputStr(input interface{}, key string) string {
	m, ok := input.(map[string]interface{})
	if !ok {
		return ""
	}
	v, _ := m[key].(string)
	return v
}
