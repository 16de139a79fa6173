package extract

import "testing"

func TestMoneyRepr(t *testing.T) {
	tests := []struct {
		word   string
		want   float64
		wantOK bool
	}{
		{"1.000,00", 1000, true},
		{"10", 10, true},
		{"1.000.00", 1000, true},
		{"2.250.01", 2250.01, true},
		{"2.650", 2650, true},
		{"1.200", 1200, true},
		{"1,5", 15, true},
		{"12,50", 12.5, true},
		{"abc", 0, false},
		{"€", 0, false},
		{"", 0, false},
		{"12a", 0, false},
		{"ab,cd", 0, false},
		{".,", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := MoneyRepr(tt.word)
			if ok != tt.wantOK {
				t.Fatalf("MoneyRepr(%q) ok = %v, want %v", tt.word, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("MoneyRepr(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}
