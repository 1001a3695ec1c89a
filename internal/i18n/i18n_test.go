package i18n

import "testing"

func TestDetectLocale(t *testing.T) {
	if DetectLocale("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLocale("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLocale("de-AT,de;q=0.8") != "de" {
		t.Fatalf("expected de for de-AT")
	}
	if DetectLocale("fr-FR,fr;q=0.8") != "de" {
		t.Fatalf("expected de fallback for fr")
	}
	if DetectLocale("") != "de" {
		t.Fatalf("expected default de")
	}
	if DetectLocale("not a header") != "de" {
		t.Fatalf("expected de for garbage header")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "property_not_found") != "Property not found" {
		t.Fatalf("unexpected en translation")
	}
	if T("de", "property_not_found") != "Immobilie nicht gefunden" {
		t.Fatalf("unexpected de translation")
	}
	// unknown key -> fallback to key
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to key")
	}
	// unknown locale -> fallback to de
	if T("fr", "credit_not_found") != "Kredit nicht gefunden" {
		t.Fatalf("expected de fallback for fr locale")
	}
}

func TestCategoryLabel(t *testing.T) {
	if CategoryLabel("de", "loan_payment") != "Kreditrate" {
		t.Fatalf("unexpected de label")
	}
	if CategoryLabel("en", "operating_costs") != "Operating Costs" {
		t.Fatalf("unexpected en label")
	}
}
