package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"win98todo/internal/news"
	"win98todo/internal/task"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task task.Task
		want string
	}{
		{"plain", task.Task{Text: "buy milk", Priority: task.PriorityNormal}, "   1  [ ] buy milk\n"},
		{"done high", task.Task{Text: "ship it", Completed: true, Priority: task.PriorityHigh}, "   1  [x] ship it (high)\n"},
		{"due", task.Task{Text: "taxes", Priority: task.PriorityLow, DueDate: "2025-04-15"}, "   1  [ ] taxes (low) due 2025-04-15\n"},
		{"empty text", task.Task{Text: "  ", Priority: task.PriorityNormal}, "   1  [ ] (untitled)\n"},
		{"newlines", task.Task{Text: "a\nb", Priority: task.PriorityNormal}, "   1  [ ] a b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, 1, tt.task)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatEmpty(&buf, false)
	assert.Equal(t, "No tasks yet. Add one above!\n", buf.String())

	buf.Reset()
	FormatEmpty(&buf, true)
	assert.Equal(t, "No matching tasks found!\n", buf.String())
}

func TestFormatStatusBar(t *testing.T) {
	var buf bytes.Buffer
	FormatStatusBar(&buf, "1 active | 0 completed", "Filter: All", "1 total tasks")
	assert.Equal(t, "------------\n1 active | 0 completed\nFilter: All\n1 total tasks\n", buf.String())
}

func TestFormatArticle(t *testing.T) {
	var buf bytes.Buffer
	FormatArticle(&buf, 2, news.Article{
		Title:       "Floppy disks make a comeback",
		Source:      news.Source{Name: "Retro Weekly"},
		PublishedAt: "not a date",
	})
	want := "2. Floppy disks make a comeback\n" +
		"     Retro Weekly - not a date\n" +
		"     " + news.NoDescription + "\n"
	assert.Equal(t, want, buf.String())
}
