package topic

import (
	"regexp"
	"strings"
)

const (
	minActionRunes      = 10
	maxActionRunes      = 80
	maxColonClauseRunes = 200
)

var fillerPrefixes = []string{
	"i'll", "i’ll", "i will", "let me", "i'm going to", "i’m going to",
	"i need to", "let's", "let’s",
	"お手伝い", "させていただき", "しましょう", "します", "ですね",
}

// actionStems are English verb stems matched at a word start with a short
// inflection suffix, so "add" matches "adding" but not "address".
var actionStems = []string{
	"add", "analys", "analyz", "build", "built", "chang", "check", "compil",
	"complet", "configur", "creat", "debug", "deploy", "design", "document",
	"enhanc", "execut", "extract", "find", "fix", "found", "generat", "handl",
	"implement", "improv", "install", "investigat", "merg", "migrat", "modif",
	"optimiz", "plan", "ran", "refactor", "remov", "renam", "resolv", "run",
	"search", "set up", "setup", "solv", "test", "updat", "verif", "writ", "wrote",
}

var actionVerbPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(actionStems, "|") +
	`)(?:e|es|ed|d|s|y|ied|ies|ing|ings|ion|ions|ation|ations|ication|er|ers|ned|ning|ged|ging|ten|is|ment|ments|ement)?\b`)

// japaneseActionKeywords are matched as substrings.
var japaneseActionKeywords = []string{
	"作成", "実装", "修正", "追加", "更新", "変更", "改善", "解決",
	"完了", "分析", "調査", "テスト", "検証", "設定", "インストール",
	"デプロイ", "ビルド", "削除", "リファクタ", "最適化", "統合",
	"移行", "生成", "抽出", "確認", "対応", "書き換え", "置き換え", "導入",
	"検索", "実行", "設計", "計画", "記述", "デバッグ", "セットアップ", "処理",
}

func hasActionVerb(sentence string) bool {
	return actionVerbPattern.MatchString(sentence) || containsAny(sentence, japaneseActionKeywords)
}

type actionVerdict int

const (
	actionPass actionVerdict = iota
	actionAccept
	actionReject
)

// actionRule inspects assistant text and either accepts a description,
// rejects the text outright, or passes to the next rule.
type actionRule func(text string) (string, actionVerdict)

var actionRules = []actionRule{
	rejectShortText,
	fillerSecondClause,
	keywordSentence,
	colonClause,
}

// MeaningfulAction extracts a step description from free assistant text,
// skipping conversational filler.
func MeaningfulAction(text string) (string, bool) {
	for _, rule := range actionRules {
		action, verdict := rule(text)
		switch verdict {
		case actionAccept:
			return action, true
		case actionReject:
			return "", false
		}
	}
	return "", false
}

func rejectShortText(text string) (string, actionVerdict) {
	if runeLen(strings.TrimSpace(text)) < minActionRunes {
		return "", actionReject
	}
	return "", actionPass
}

// fillerSecondClause handles text that opens with filler: the clause after it
// is the action if long enough, otherwise the text is rejected.
func fillerSecondClause(text string) (string, actionVerdict) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if !hasAnyPrefix(lower, fillerPrefixes) {
		return "", actionPass
	}
	parts := splitAny(strings.TrimSpace(text), ".。:：")
	if len(parts) > 1 {
		clause := strings.TrimSpace(parts[1])
		if runeLen(clause) >= minActionRunes {
			return truncateRunes(clause, maxActionRunes), actionAccept
		}
	}
	return "", actionReject
}

func keywordSentence(text string) (string, actionVerdict) {
	for _, sentence := range splitAny(text, ".。\n") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if hasActionVerb(sentence) {
			return truncateRunes(sentence, maxActionRunes), actionAccept
		}
	}
	return "", actionPass
}

func colonClause(text string) (string, actionVerdict) {
	if !strings.ContainsAny(text, ":：") {
		return "", actionPass
	}
	parts := splitAny(text, ":：")
	clause := strings.TrimSpace(parts[1])
	if n := runeLen(clause); n >= minActionRunes && n <= maxColonClauseRunes {
		return clause, actionAccept
	}
	return "", actionPass
}
