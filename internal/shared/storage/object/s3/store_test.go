package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "reports/abc.json", want: "reports/abc.json"},
		{name: "simple prefix", prefix: "root", key: "reports/abc.json", want: "root/reports/abc.json"},
		{name: "prefix trailing slash", prefix: "root/", key: "reports/abc.json", want: "root/reports/abc.json"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/reports/abc.json", want: "root/reports/abc.json"},
		{name: "nested prefix", prefix: "root/sub", key: "reports/abc.json", want: "root/sub/reports/abc.json"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
