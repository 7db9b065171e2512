package extract

import "testing"

func TestSQLFencedBlock(t *testing.T) {
	in := "Here is the query:\n```sql\nSELECT * FROM employees;\n```\nHope that helps."
	if got := SQL(in); got != "SELECT * FROM employees;" {
		t.Fatalf("SQL() = %q", got)
	}
}

func TestSQLFencedBlockUppercaseTag(t *testing.T) {
	in := "```SQL\nSELECT first_name_ar FROM employees;\n```"
	if got := SQL(in); got != "SELECT first_name_ar FROM employees;" {
		t.Fatalf("SQL() = %q", got)
	}
}

func TestSQLFencedBlockWinsOverOtherSQLText(t *testing.T) {
	// SQL-like text outside the fence must be ignored once a fence is found.
	in := "You could also run SELECT 1; but the answer is:\n```sql\nSELECT salary FROM employees ORDER BY hire_date DESC;\n```"
	want := "SELECT salary FROM employees ORDER BY hire_date DESC;"
	if got := SQL(in); got != want {
		t.Fatalf("SQL() = %q, want %q", got, want)
	}
}

func TestSQLBareSelectSpan(t *testing.T) {
	in := "The query you need is select employee_id,\n  hire_date from employees; and nothing else."
	want := "select employee_id,\n  hire_date from employees;"
	if got := SQL(in); got != want {
		t.Fatalf("SQL() = %q, want %q", got, want)
	}
}

func TestSQLSelectSpanStopsAtFirstSemicolon(t *testing.T) {
	in := "SELECT a FROM t; SELECT b FROM u;"
	if got := SQL(in); got != "SELECT a FROM t;" {
		t.Fatalf("SQL() = %q", got)
	}
}

func TestSQLPassthroughFallback(t *testing.T) {
	if got := SQL("no sql here"); got != "no sql here" {
		t.Fatalf("SQL() = %q", got)
	}
}

func TestSQLPassthroughTrims(t *testing.T) {
	if got := SQL("  SHOW TABLES  \n"); got != "SHOW TABLES" {
		t.Fatalf("SQL() = %q", got)
	}
}
