package rates

import (
	"testing"

	"guardpost/backend/internal/entity"
)

func fp(v float64) *float64 { return &v }

func TestNewResolver(t *testing.T) {
	tests := []struct {
		name    string
		pay     float64
		bill    float64
		wantErr bool
	}{
		{name: "both positive", pay: 18, bill: 40, wantErr: false},
		{name: "zero pay default", pay: 0, bill: 40, wantErr: true},
		{name: "negative bill default", pay: 18, bill: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.pay, tt.bill)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewResolver(%v, %v) error = %v, wantErr %v", tt.pay, tt.bill, err, tt.wantErr)
			}
		})
	}
}

func TestPayRate_Precedence(t *testing.T) {
	r, err := NewResolver(15, 35)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	officer := &entity.Officer{Financials: &entity.OfficerFinancials{BaseRate: fp(20)}}

	tests := []struct {
		name    string
		entry   *entity.TimeEntry
		shift   *entity.Shift
		officer *entity.Officer
		want    float64
	}{
		{
			name:    "entry snapshot wins over everything",
			entry:   &entity.TimeEntry{PayRate: fp(22)},
			shift:   &entity.Shift{PayRate: fp(25)},
			officer: officer,
			want:    22,
		},
		{
			name:    "shift override beats officer base rate",
			shift:   &entity.Shift{PayRate: fp(25)},
			officer: officer,
			want:    25,
		},
		{
			name:    "officer base rate beats default",
			shift:   &entity.Shift{},
			officer: officer,
			want:    20,
		},
		{
			name: "default when nothing else set",
			want: 15,
		},
		{
			name:    "zero officer base rate treated as absent",
			officer: &entity.Officer{Financials: &entity.OfficerFinancials{BaseRate: fp(0)}},
			want:    15,
		},
		{
			name:    "negative shift override treated as absent",
			shift:   &entity.Shift{PayRate: fp(-5)},
			officer: officer,
			want:    20,
		},
		{
			name:  "explicit zero shift override honored as free",
			shift: &entity.Shift{PayRate: fp(0)},
			want:  0,
		},
		{
			name:  "explicit zero entry snapshot honored",
			entry: &entity.TimeEntry{PayRate: fp(0)},
			shift: &entity.Shift{PayRate: fp(25)},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.PayRate(tt.entry, tt.shift, tt.officer)
			if err != nil {
				t.Fatalf("PayRate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("PayRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOvertimeRate(t *testing.T) {
	r, err := NewResolver(15, 35)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	t.Run("officer overtime rate wins", func(t *testing.T) {
		officer := &entity.Officer{Financials: &entity.OfficerFinancials{BaseRate: fp(20), OvertimeRate: fp(32)}}
		got, err := r.OvertimeRate(nil, nil, officer)
		if err != nil {
			t.Fatalf("OvertimeRate() error = %v", err)
		}
		if got != 32 {
			t.Errorf("OvertimeRate() = %v, want 32", got)
		}
	})

	t.Run("falls back to 1.5x resolved pay", func(t *testing.T) {
		officer := &entity.Officer{Financials: &entity.OfficerFinancials{BaseRate: fp(20)}}
		got, err := r.OvertimeRate(nil, nil, officer)
		if err != nil {
			t.Fatalf("OvertimeRate() error = %v", err)
		}
		if got != 30 {
			t.Errorf("OvertimeRate() = %v, want 30", got)
		}
	})

	t.Run("1.5x applies to shift override", func(t *testing.T) {
		shift := &entity.Shift{PayRate: fp(24)}
		got, err := r.OvertimeRate(nil, shift, nil)
		if err != nil {
			t.Fatalf("OvertimeRate() error = %v", err)
		}
		if got != 36 {
			t.Errorf("OvertimeRate() = %v, want 36", got)
		}
	})
}

func TestBillRate_Precedence(t *testing.T) {
	r, err := NewResolver(15, 35)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	client := &entity.Client{BillingSettings: &entity.BillingSettings{StandardRate: fp(45)}}

	tests := []struct {
		name   string
		entry  *entity.TimeEntry
		shift  *entity.Shift
		client *entity.Client
		want   float64
	}{
		{
			name:   "entry snapshot wins",
			entry:  &entity.TimeEntry{BillRate: fp(50)},
			shift:  &entity.Shift{BillRate: fp(55)},
			client: client,
			want:   50,
		},
		{
			name:   "shift override beats client standard",
			shift:  &entity.Shift{BillRate: fp(55)},
			client: client,
			want:   55,
		},
		{
			name:   "client standard rate",
			client: client,
			want:   45,
		},
		{
			name: "default as last tier",
			want: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.BillRate(tt.entry, tt.shift, tt.client)
			if err != nil {
				t.Fatalf("BillRate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BillRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_NoRateAnywhere(t *testing.T) {
	// A zero-value Resolver has no usable defaults; the chain must fail
	// loudly instead of resolving to zero.
	var r Resolver
	if _, err := r.PayRate(nil, nil, nil); err == nil {
		t.Fatal("PayRate() with empty chain: want ErrNoRate, got nil")
	}
}
