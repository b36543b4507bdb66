package topic

import "testing"

func TestDescribeToolUse(t *testing.T) {
	file := func(p string) map[string]interface{} { return map[string]interface{}{"file_path": p} }
	cmd := func(c string) map[string]interface{} { return map[string]interface{}{"command": c} }

	tests := []struct {
		name  string
		tool  string
		input interface{}
		lang  Language
		want  string
	}{
		{"read", "Read", file("/a/b/main.go"), English, "Read main.go"},
		{"read without path", "Read", nil, English, "Read file"},
		{"write", "Write", file("src/auth.rs"), English, "Create auth.rs"},
		{"write without path", "Write", map[string]interface{}{}, English, "Create new file"},
		{"edit", "Edit", file(`C:\src\x.go`), English, "Edit x.go"},
		{"multiedit", "MultiEdit", file("/p/y.go"), English, "Edit y.go"},
		{"cargo test", "Bash", cmd("cargo test --all"), English, "Run Rust tests"},
		{"go build", "Bash", cmd("go build ./..."), English, "Build Go project"},
		{"git commit", "Bash", cmd("git commit -m 'x'"), English, "Commit changes to Git"},
		{"npm install", "Bash", cmd("npm install"), English, "Install npm dependencies"},
		{"mkdir", "Bash", cmd("mkdir -p out"), English, "Create directory"},
		{"short command", "Bash", cmd("ls -la"), English, "Run `ls -la`"},
		{"long command", "Bash", cmd("find . -name '*.go' -exec grep -l foo {} +"), English, "find command"},
		{"empty command", "Bash", cmd("  "), English, "Run command"},
		{"grep", "Grep", map[string]interface{}{"pattern": "func (s *Server) handleRequest"}, English, "Search for `func (s *Server) han...`"},
		{"todo write", "TodoWrite", nil, English, "Update TODO list"},
		{"todo read", "TodoRead", nil, English, "Check TODO list"},
		{"unknown tool", "WebFetch", nil, English, "WebFetch used"},
		{"japanese read", "Read", file("/a/main.go"), Japanese, "main.go を読み込み"},
		{"japanese bash", "Bash", cmd("cargo build"), Japanese, "Rustプロジェクトをビルド"},
		{"unknown language", "TodoWrite", nil, Language("fr"), "Update TODO list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeToolUse(tt.tool, tt.input, tt.lang); got != tt.want {
				t.Errorf("DescribeToolUse(%s) = %q, want %q", tt.tool, got, tt.want)
			}
		})
	}
}

func TestPhraseTables_Complete(t *testing.T) {
	for lang, p := range phraseTables {
		for name, v := range map[string]string{
			"readFile": p.readFile, "createFile": p.createFile, "editFile": p.editFile,
			"shortCommand": p.shortCommand, "search": p.search, "toolUsed": p.toolUsed,
			"placeholder": p.placeholder,
		} {
			if v == "" {
				t.Errorf("%s phrase %s is empty", lang, name)
			}
		}
	}
	for _, r := range bashRules {
		if r.en == "" || r.ja == "" {
			t.Errorf("bash rule %v is missing a phrase", r.prefix)
		}
	}
}
