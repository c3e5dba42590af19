package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
	}{
		{
			name:     "replaces every occurrence",
			template: "{{a}} and {{a}}",
			vars:     map[string]string{"a": "x"},
			want:     "x and x",
		},
		{
			name:     "leaves unknown placeholders",
			template: "{{a}} {{b}}",
			vars:     map[string]string{"a": "x"},
			want:     "x {{b}}",
		},
		{
			name:     "no templating syntax beyond literal keys",
			template: "{{ a }} {{a}}",
			vars:     map[string]string{"a": "x"},
			want:     "{{ a }} x",
		},
		{
			name:     "substituted values are not rendered again",
			template: "{{context}} | {{sentiment_analytics}}",
			vars:     map[string]string{"context": "see {{sentiment_analytics}}", "sentiment_analytics": "S"},
			want:     "see {{sentiment_analytics}} | S",
		},
		{
			name:     "nil vars",
			template: "plain",
			want:     "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.vars))
		})
	}
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "hello", Stringify("hello"))
	assert.Equal(t, "technology, finance", Stringify([]any{"technology", "finance"}))
	assert.Equal(t, "3", Stringify(float64(3)))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, `{"k":"v"}`, Stringify(map[string]any{"k": "v"}))
	assert.Equal(t, "", Stringify(nil))
}

func TestLoad(t *testing.T) {
	tmpl, err := Load("")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(tmpl, "{{recent_news}}"))
	assert.Equal(t, true, strings.Contains(tmpl, "{{sentiment_analytics}}"))

	path := filepath.Join(t.TempDir(), "prompt.txt")
	os.WriteFile(path, []byte("custom {{recent_news}}"), 0o644)

	tmpl, err = Load(path)
	assert.Equal(t, nil, err)
	assert.Equal(t, "custom {{recent_news}}", tmpl)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.NotEqual(t, nil, err)
}
