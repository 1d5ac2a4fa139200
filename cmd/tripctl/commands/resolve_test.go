package commands

import "testing"

func TestResolveID(t *testing.T) {
	ids := []string{"3f2a9c10-aaaa", "3f2b0000-bbbb", "77aa0000-cccc"}

	tests := []struct {
		name    string
		prefix  string
		want    string
		wantErr bool
	}{
		{"unique prefix", "77", "77aa0000-cccc", false},
		{"longer prefix", "3f2a", "3f2a9c10-aaaa", false},
		{"exact id", "3f2b0000-bbbb", "3f2b0000-bbbb", false},
		{"ambiguous", "3f2", "", true},
		{"no match", "zz", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveID("expense", tt.prefix, ids)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveID() = %q, want %q", got, tt.want)
			}
		})
	}
}
