package domain

import (
	"testing"
)

func TestComputeLoanTerms_Exact(t *testing.T) {
	terms, err := ComputeLoanTerms(100000, 20, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if terms.TotalAmount != 120000 {
		t.Errorf("expected total 120000, got %v", terms.TotalAmount)
	}
	if terms.InstallmentAmount != 4000 {
		t.Errorf("expected installment 4000, got %v", terms.InstallmentAmount)
	}
}

func TestComputeLoanTerms_InstallmentRoundsUp(t *testing.T) {
	// 100000 * 1.10 = 110000, over 30 days = 3666.67 → ceil 3667
	terms, err := ComputeLoanTerms(100000, 10, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if terms.InstallmentAmount != 3667 {
		t.Errorf("expected installment 3667, got %v", terms.InstallmentAmount)
	}
	// The schedule may overshoot the total, never undershoot it.
	if terms.InstallmentAmount*30 < terms.TotalAmount {
		t.Errorf("installments * count (%v) must cover total (%v)",
			terms.InstallmentAmount*30, terms.TotalAmount)
	}
}

func TestComputeLoanTerms_ZeroRate(t *testing.T) {
	terms, err := ComputeLoanTerms(9000, 0, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if terms.TotalAmount != 9000 {
		t.Errorf("expected total 9000, got %v", terms.TotalAmount)
	}
	if terms.InstallmentAmount != 300 {
		t.Errorf("expected installment 300, got %v", terms.InstallmentAmount)
	}
}

func TestComputeLoanTerms_Invalid(t *testing.T) {
	cases := []struct {
		name         string
		principal    float64
		rate         float64
		installments int
	}{
		{"zero principal", 0, 20, 30},
		{"negative principal", -100, 20, 30},
		{"zero installments", 100000, 20, 0},
		{"negative rate", 100000, -5, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ComputeLoanTerms(tc.principal, tc.rate, tc.installments); err != ErrInvalidLoanTerms {
				t.Errorf("expected ErrInvalidLoanTerms, got %v", err)
			}
		})
	}
}

func TestLoan_RecordPayment_Accumulates(t *testing.T) {
	loan := &Loan{TotalAmount: 120000, Status: LoanActive}

	for i := 1; i <= 3; i++ {
		if err := loan.RecordPayment(4000); err != nil {
			t.Fatalf("payment %d: %v", i, err)
		}
	}
	if loan.PaidAmount != 12000 {
		t.Errorf("expected paid 12000, got %v", loan.PaidAmount)
	}
	if loan.PaidInstallments != 3 {
		t.Errorf("expected 3 installments, got %d", loan.PaidInstallments)
	}
	if loan.Status != LoanActive {
		t.Errorf("loan must stay active, got %s", loan.Status)
	}
}

func TestLoan_RecordPayment_CompletesOnFullAmount(t *testing.T) {
	loan := &Loan{TotalAmount: 120000, Status: LoanActive}

	for i := 0; i < 30; i++ {
		if err := loan.RecordPayment(4000); err != nil {
			t.Fatalf("payment %d: %v", i+1, err)
		}
	}
	if loan.Status != LoanCompleted {
		t.Errorf("expected completed after paying in full, got %s", loan.Status)
	}
	if loan.Pending() != 0 {
		t.Errorf("expected 0 pending, got %v", loan.Pending())
	}
}

func TestLoan_RecordPayment_OverpaymentCompletes(t *testing.T) {
	loan := &Loan{TotalAmount: 120000, PaidAmount: 116000, PaidInstallments: 29, Status: LoanActive}

	if err := loan.RecordPayment(10000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loan.PaidAmount != 126000 {
		t.Errorf("expected paid 126000, got %v", loan.PaidAmount)
	}
	if loan.Status != LoanCompleted {
		t.Errorf("expected completed, got %s", loan.Status)
	}
	if loan.Pending() != 0 {
		t.Errorf("pending must not go negative, got %v", loan.Pending())
	}
}

func TestLoan_RecordPayment_SingleOverpaymentUncapped(t *testing.T) {
	loan := &Loan{TotalAmount: 120000, Status: LoanActive}

	if err := loan.RecordPayment(150000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loan.PaidAmount != 150000 {
		t.Errorf("paid amount must not be capped, got %v", loan.PaidAmount)
	}
	if loan.PaidInstallments != 1 {
		t.Errorf("expected 1 installment, got %d", loan.PaidInstallments)
	}
	if loan.Status != LoanCompleted {
		t.Errorf("expected completed, got %s", loan.Status)
	}
}

func TestLoan_RecordPayment_CompletionIsOneWay(t *testing.T) {
	loan := &Loan{TotalAmount: 1000, PaidAmount: 1000, Status: LoanCompleted}

	if err := loan.RecordPayment(50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loan.Status != LoanCompleted {
		t.Errorf("completed loans must stay completed, got %s", loan.Status)
	}
}

func TestLoan_RecordPayment_RejectsNonPositive(t *testing.T) {
	loan := &Loan{TotalAmount: 1000, Status: LoanActive}

	if err := loan.RecordPayment(0); err != ErrInvalidPayment {
		t.Errorf("expected ErrInvalidPayment for zero, got %v", err)
	}
	if err := loan.RecordPayment(-10); err != ErrInvalidPayment {
		t.Errorf("expected ErrInvalidPayment for negative, got %v", err)
	}
	if loan.PaidAmount != 0 || loan.PaidInstallments != 0 {
		t.Errorf("rejected payments must not mutate the loan")
	}
}
