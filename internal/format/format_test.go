package format

import (
	"testing"

	"github.com/rawihq/rawi/internal/database"
)

func TestResponseEmptyResult(t *testing.T) {
	result := database.Result{Columns: []string{"a", "b"}}
	if got := Response(result); got != "لم أجد أي نتائج لهذا الاستعلام." {
		t.Fatalf("Response() = %q", got)
	}
}

func TestResponseEmptyIgnoresColumns(t *testing.T) {
	// The no-results sentence does not depend on the column list at all.
	if Response(database.Result{}) != Response(database.Result{Columns: []string{"x"}}) {
		t.Fatalf("no-results message should not vary with columns")
	}
}

func TestResponseSingleRow(t *testing.T) {
	result := database.Result{
		Columns: []string{"product_name", "price", "category"},
		Rows:    [][]any{{"Product A", 100, "Electronics"}},
	}
	want := "وجدت النتائج التالية:\nproduct_name: Product A, price: 100, category: Electronics\n"
	if got := Response(result); got != want {
		t.Fatalf("Response() = %q, want %q", got, want)
	}
}

func TestResponseMultipleRowsOneLineEach(t *testing.T) {
	result := database.Result{
		Columns: []string{"name", "dept"},
		Rows: [][]any{
			{"أحمد", "قسم الأمن"},
			{"سارة", "قسم الإشراف"},
		},
	}
	want := "وجدت النتائج التالية:\n" +
		"name: أحمد, dept: قسم الأمن\n" +
		"name: سارة, dept: قسم الإشراف\n"
	if got := Response(result); got != want {
		t.Fatalf("Response() = %q, want %q", got, want)
	}
}
