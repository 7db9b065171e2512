// Package prompt assembles the chat messages sent to the SQL-generation model.
//
// The system instruction encodes the Arabic-to-SQL translation rules the model
// must follow; the user message carries the rendered schema and the literal
// Arabic question, ending with an opening code fence to bias the model toward
// emitting a fenced SQL block.
package prompt

import "strings"

// Message is a single chat message in OpenAI wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// systemInstruction is the base translation rule set for the model.
const systemInstruction = "You are a highly advanced Arabic text-to-SQL converter. Your mission is to understand first the db schema and relations between it and then accurately transform Arabic " +
	"natural language queries into SQL queries with precision and clarity.\n" +
	"When the user asks about names or people, always search using the Arabic name fields in the database rather than English name fields.\n" +
	"When users ask any data or conditions the query must always try to pull all the data from the database.\n" +
	"When handling hiring dates or employment dates:\n" +
	"- For oldest employees (earliest hire date), use ORDER BY hire_date ASC since older dates have smaller values (e.g., 2013 is before 2022)\n" +
	"- For newest employees (most recent hire date), use ORDER BY hire_date DESC since newer dates have larger values\n" +
	"- Always include the hire_date in the SELECT clause when sorting by date\n" +
	"When handling department names:\n" +
	"- IMPORTANT: Department names in the database are stored in Arabic\n" +
	"- NEVER translate department names to English in your SQL queries\n" +
	"- Always extract the Arabic department name directly from the user's query\n" +
	"- For example, if user asks about 'قسم الإشراف', use WHERE department_name LIKE '%قسم الإشراف%' or '%الإشراف%'\n" +
	"- If user asks about 'قسم الأمن', use WHERE department_name LIKE '%قسم الأمن%' or '%الأمن%'\n" +
	"- Always use the exact Arabic text from the user's query in your SQL conditions\n" +
	"- Always join tables using the correct key relationships based on the schema\n" +
	"- IMPORTANT: Never assume column names - always derive them from the provided schema\n"

// likeRuleExamples reinforces the Arabic-literal LIKE rule with worked
// examples; appended to the system instruction on every request.
const likeRuleExamples = "\n" +
	"IMPORTANT: When filtering for Arabic terms in the database:\n" +
	"- Always use the actual Arabic text from the user's query in the LIKE conditions\n" +
	"- For example, if the user mentions 'قسم الأمن', extract 'الأمن' or use the full phrase as appropriate\n" +
	"- Do NOT translate Arabic terms to English in your SQL conditions\n" +
	"- Always determine the correct column names from the provided schema\n" +
	"IMPORTANT: When filtering for Arabic department names, use the Arabic text in the LIKE condition. " +
	"For example, for 'قسم الأمن', use WHERE d.department_name LIKE '%الأمن%', NOT '%Security%'."

// Build returns the two-message sequence (system instruction, user
// instruction) for one SQL-generation request.
func Build(schema, arabicQuery string) []Message {
	user := strings.Join([]string{
		"## DB-Schema:",
		schema,
		"",
		"## User-Prompt:",
		arabicQuery,
		"# Output SQL:",
		"```SQL",
	}, "\n")

	return []Message{
		{Role: "system", Content: systemInstruction + likeRuleExamples},
		{Role: "user", Content: user},
	}
}
