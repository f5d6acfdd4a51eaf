package validator

import "testing"

type sampleTransaction struct {
	WalletID string `json:"wallet_id" validate:"required,uuid"`
	Type     string `json:"type" validate:"required,txtype"`
	Amount   string `json:"amount" validate:"required"`
	Category string `json:"category" validate:"omitempty,expense_category"`
}

func TestValidateAcceptsValidTransaction(t *testing.T) {
	errs := Validate(&sampleTransaction{
		WalletID: "7e0b59d5-4f54-4a81-ae57-5ab4e9a3dd11",
		Type:     "expense",
		Amount:   "19.99",
		Category: "groceries",
	})
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRejectsBadTransactionType(t *testing.T) {
	errs := Validate(&sampleTransaction{
		WalletID: "7e0b59d5-4f54-4a81-ae57-5ab4e9a3dd11",
		Type:     "transfer",
		Amount:   "10",
	})
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	if _, ok := errs["type"]; !ok {
		t.Fatalf("expected error keyed by json field name, got %v", errs)
	}
}

func TestValidateRejectsUnknownCategory(t *testing.T) {
	errs := Validate(&sampleTransaction{
		WalletID: "7e0b59d5-4f54-4a81-ae57-5ab4e9a3dd11",
		Type:     "expense",
		Amount:   "10",
		Category: "spaceships",
	})
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	if _, ok := errs["category"]; !ok {
		t.Fatalf("expected category error, got %v", errs)
	}
}

func TestValidateAllowsEmptyCategory(t *testing.T) {
	errs := Validate(&sampleTransaction{
		WalletID: "7e0b59d5-4f54-4a81-ae57-5ab4e9a3dd11",
		Type:     "income",
		Amount:   "10",
	})
	if errs != nil {
		t.Fatalf("expected no errors for empty category, got %v", errs)
	}
}

func TestValidateReportsMissingRequiredFields(t *testing.T) {
	errs := Validate(&sampleTransaction{})
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"wallet_id", "type", "amount"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}
