package report

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suykerbuyk/vibe-digest/internal/distill"
	"github.com/suykerbuyk/vibe-digest/internal/enrichment"
	"github.com/suykerbuyk/vibe-digest/internal/topic"
)

const logDir = "/logs"

var day14 = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type line map[string]interface{}

func userText(ts, session, text string) line {
	return line{"type": "user", "timestamp": ts, "sessionId": session,
		"message": line{"role": "user", "content": text}}
}

func toolResult(ts, session, id, content string) line {
	return line{"type": "user", "timestamp": ts, "sessionId": session,
		"message": line{"role": "user", "content": []line{
			{"type": "tool_result", "tool_use_id": id, "content": content},
		}}}
}

func toolUse(ts, session, id, name string, input line) line {
	return line{"type": "assistant", "timestamp": ts, "sessionId": session, "costUSD": 0.5,
		"message": line{"role": "assistant", "content": []line{
			{"type": "tool_use", "id": id, "name": name, "input": input},
		}}}
}

func writeJSONL(t *testing.T, fs afero.Fs, path string, lines ...line) {
	t.Helper()
	var b strings.Builder
	for _, l := range lines {
		data, err := json.Marshal(l)
		if err != nil {
			t.Fatal(err)
		}
		b.Write(data)
		b.WriteString("\n")
	}
	b.WriteString("not json at all\n")
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

// fixture holds one project with a completed and a failed topic on
// 2026-10-14, plus an older entry outside the default range.
func fixture(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeJSONL(t, fs, filepath.Join(logDir, "-home-alice-src-app", "s1.jsonl"),
		userText("2026-10-10T09:00:00Z", "s0", "Please add the docs."),
		userText("2026-10-14T09:00:00Z", "s1", "Please implement the login page."),
		toolUse("2026-10-14T09:01:00Z", "s1", "t1", "Write", line{"file_path": "/src/login.go"}),
		toolResult("2026-10-14T09:02:00Z", "s1", "t1", "File created"),
		userText("2026-10-14T10:00:00Z", "s1", "Can you fix the failing test?"),
		toolUse("2026-10-14T10:01:00Z", "s1", "t2", "Bash", line{"command": "go test ./..."}),
		toolResult("2026-10-14T10:02:00Z", "s1", "t2", "--- FAIL: TestLogin\nError: want 200"),
	)
	return fs
}

func dayRange(t *testing.T) DateRange {
	t.Helper()
	r, err := Filter{Date: "2026-10-14"}.Resolve(day14)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func baseOptions(t *testing.T) Options {
	return Options{
		LogDir:   logDir,
		Range:    dayRange(t),
		Parallel: 2,
		Topic:    topic.Options{PairToolResults: true},
	}
}

func TestRun(t *testing.T) {
	rep, err := Run(context.Background(), fixture(t), baseOptions(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.Period != "2026-10-14" {
		t.Errorf("Period = %q, want 2026-10-14", rep.Period)
	}
	if len(rep.Projects) != 1 {
		t.Fatalf("projects = %d, want 1", len(rep.Projects))
	}

	p := rep.Projects[0]
	if p.Project != "~/alice/src/app" {
		t.Errorf("Project = %q", p.Project)
	}
	if p.Source != distill.SourceHeuristic {
		t.Errorf("Source = %q, want heuristic", p.Source)
	}
	if len(p.Blockers) != 1 || p.Blockers[0].Status != distill.Blocked {
		t.Fatalf("Blockers = %+v, want one blocked", p.Blockers)
	}
	if !strings.HasSuffix(p.Blockers[0].Issue, ": all steps failed") {
		t.Errorf("blocker issue = %q", p.Blockers[0].Issue)
	}

	want := Metrics{
		Sessions:      1,
		Messages:      4,
		CostUSD:       1.0,
		ToolUses:      2,
		Tools:         []ToolCount{{Name: "Bash", Count: 1}, {Name: "Write", Count: 1}},
		FirstActivity: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
		LastActivity:  time.Date(2026, 10, 14, 10, 2, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, rep.Metrics); diff != "" {
		t.Errorf("Metrics mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(rep.Insights, "Completed 1 projects with") {
		t.Errorf("Insights = %q", rep.Insights)
	}
}

func TestRun_AllDates(t *testing.T) {
	opts := baseOptions(t)
	opts.Range = DateRange{}

	rep, err := Run(context.Background(), fixture(t), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Period != "All dates" {
		t.Errorf("Period = %q", rep.Period)
	}
	if rep.Metrics.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", rep.Metrics.Sessions)
	}
}

func TestRun_OutOfRangeProjectOmitted(t *testing.T) {
	opts := baseOptions(t)
	r, err := Filter{Date: "2026-10-01"}.Resolve(day14)
	if err != nil {
		t.Fatal(err)
	}
	opts.Range = r

	rep, err := Run(context.Background(), fixture(t), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Projects) != 0 {
		t.Errorf("projects = %d, want 0", len(rep.Projects))
	}
	if rep.Projects == nil {
		t.Error("Projects should be empty, not nil")
	}
}

func TestRun_DiscoveryOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, dir := range []string{"-srv-c", "-srv-a", "-srv-b"} {
		writeJSONL(t, fs, filepath.Join(logDir, dir, "s.jsonl"),
			userText("2026-10-14T09:00:00Z", dir, "Please implement caching."))
	}

	opts := baseOptions(t)
	opts.Parallel = 3
	rep, err := Run(context.Background(), fs, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var got []string
	for _, p := range rep.Projects {
		got = append(got, p.Project)
	}
	if strings.Join(got, ",") != "/srv/a,/srv/b,/srv/c" {
		t.Errorf("order = %v", got)
	}
}

func TestRun_NoLogDir(t *testing.T) {
	_, err := Run(context.Background(), afero.NewMemMapFs(), baseOptions(t))
	if !errors.Is(err, ErrNoLogDir) {
		t.Errorf("err = %v, want ErrNoLogDir", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, fixture(t), baseOptions(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRun_UnreadableLogSkipped(t *testing.T) {
	fs := fixture(t)
	bad := filepath.Join(logDir, "-home-alice-src-app", "s0.jsonl.zst")
	if err := afero.WriteFile(fs, bad, []byte("definitely not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	opts := baseOptions(t)
	opts.Logger = zap.New(core)

	rep, err := Run(context.Background(), fs, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Projects) != 1 {
		t.Errorf("projects = %d, want 1", len(rep.Projects))
	}
	if n := logs.FilterMessage("skipping unreadable log").Len(); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}
}

type fakeSummarizer struct {
	summary distill.ProjectSummary
	err     error
	seen    []enrichment.ConversationData
}

func (f *fakeSummarizer) Summarize(_ context.Context, data enrichment.ConversationData) (distill.ProjectSummary, error) {
	f.seen = append(f.seen, data)
	if f.err != nil {
		return distill.ProjectSummary{}, f.err
	}
	s := f.summary
	s.Project = data.Project
	return s, nil
}

func TestRun_ModelSummary(t *testing.T) {
	fake := &fakeSummarizer{summary: distill.ProjectSummary{Title: "Login Work", Source: distill.SourceModel}}
	opts := baseOptions(t)
	opts.Parallel = 1
	opts.Summarizer = fake

	rep, err := Run(context.Background(), fixture(t), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := rep.Projects[0]; got.Title != "Login Work" || got.Source != distill.SourceModel {
		t.Errorf("summary = %+v", got)
	}
	if len(fake.seen) != 1 || len(fake.seen[0].UserMessages) != 2 {
		t.Errorf("summarizer input = %+v", fake.seen)
	}
}

func TestRun_ModelFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	opts := baseOptions(t)
	opts.Summarizer = &fakeSummarizer{err: errors.New("command exited 1")}
	opts.Logger = zap.New(core)

	rep, err := Run(context.Background(), fixture(t), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Projects[0].Source != distill.SourceHeuristic {
		t.Errorf("Source = %q, want heuristic", rep.Projects[0].Source)
	}
	warned := logs.FilterMessage("model summary failed, using heuristic distillation").All()
	if len(warned) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warned))
	}
	if got := warned[0].ContextMap()["project"]; got != "~/alice/src/app" {
		t.Errorf("project field = %v", got)
	}
}

func TestTopTools(t *testing.T) {
	counts := map[string]int{"Read": 4, "Bash": 7, "Edit": 4, "Grep": 1, "Write": 2, "Glob": 1}
	got := topTools(counts, 3)
	want := []ToolCount{{"Bash", 7}, {"Edit", 4}, {"Read", 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("topTools mismatch (-want +got):\n%s", diff)
	}
	if got := topTools(nil, 3); len(got) != 0 {
		t.Errorf("topTools(nil) = %v, want empty", got)
	}
}
