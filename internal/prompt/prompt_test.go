package prompt

import (
	"strings"
	"testing"
)

func TestBuildReturnsSystemThenUser(t *testing.T) {
	msgs := Build("CREATE TABLE employees ();", "من هم الموظفون؟")
	if len(msgs) != 2 {
		t.Fatalf("Build() returned %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Fatalf("roles = %q, %q; want system, user", msgs[0].Role, msgs[1].Role)
	}
}

func TestBuildUserMessageLayout(t *testing.T) {
	schema := "CREATE TABLE employees (\n    employee_id int NOT NULL PRIMARY KEY\n);"
	query := "اعرض جميع الموظفين"
	msgs := Build(schema, query)

	want := "## DB-Schema:\n" + schema + "\n\n## User-Prompt:\n" + query + "\n# Output SQL:\n```SQL"
	if msgs[1].Content != want {
		t.Fatalf("user message = %q, want %q", msgs[1].Content, want)
	}
}

func TestBuildSystemMessageCarriesTranslationRules(t *testing.T) {
	msgs := Build("schema", "query")
	sys := msgs[0].Content

	for _, fragment := range []string{
		"Arabic text-to-SQL converter",
		"ORDER BY hire_date ASC",
		"ORDER BY hire_date DESC",
		"NEVER translate department names",
		"always derive them from the provided schema",
		// Worked examples reinforcing the Arabic-literal LIKE rule.
		"LIKE '%الأمن%'",
		"NOT '%Security%'",
	} {
		if !strings.Contains(sys, fragment) {
			t.Fatalf("system message missing %q", fragment)
		}
	}
}

func TestBuildKeepsArabicQueryVerbatim(t *testing.T) {
	query := "كم عدد الموظفين في قسم الإشراف؟"
	msgs := Build("schema", query)
	if !strings.Contains(msgs[1].Content, query) {
		t.Fatalf("user message does not contain the literal query %q", query)
	}
}
