package htmlsanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"strips tags", "<script>alert(1)</script>hi", "hi"},
		{"keeps cyrillic", "Тестовый пост о разном", "Тестовый пост о разном"},
		{"newlines become breaks", "one\ntwo", "one<br>two"},
		{"windows newlines", "one\r\ntwo", "one<br>two"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Text(tt.input))
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
