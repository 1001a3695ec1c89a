// Package i18n resolves user-facing message keys into German or English
// text. German is the default; the locale is negotiated from the
// Accept-Language header. Catalogs are static — there is no runtime
// mutation of translation tables.
package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLocale is used when no supported language matches.
const DefaultLocale = "de"

var supported = []language.Tag{
	language.German, // default
	language.English,
}

var matcher = language.NewMatcher(supported)

// DetectLocale negotiates the response locale from an Accept-Language
// header value. An empty or unparseable header falls back to German.
func DetectLocale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	if idx == 1 {
		return "en"
	}
	return "de"
}

// T returns the translation of key for the given locale. Unknown locales
// fall back to German; unknown keys are returned verbatim so a missing
// catalog entry never hides the error kind.
func T(locale, key string) string {
	catalog, ok := catalogs[locale]
	if !ok {
		catalog = catalogs[DefaultLocale]
	}
	if msg, ok := catalog[key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

var catalogs = map[string]map[string]string{
	"de": {
		// not found
		"property_not_found":    "Immobilie nicht gefunden",
		"credit_not_found":      "Kredit nicht gefunden",
		"transaction_not_found": "Transaktion nicht gefunden",
		"document_not_found":    "Dokument nicht gefunden",
		"file_not_found":        "Datei nicht auf dem Datenträger gefunden",

		// validation
		"name_required":                    "Name ist erforderlich",
		"address_required":                 "Adresse ist erforderlich",
		"purchase_price_negative":          "Kaufpreis darf nicht negativ sein",
		"original_amount_not_positive":     "Kreditsumme muss größer als null sein",
		"interest_rate_out_of_range":       "Zinssatz muss zwischen 0 und 100 liegen",
		"monthly_payment_exceeds_original": "Monatsrate darf die Kreditsumme nicht übersteigen",
		"start_date_in_future":             "Startdatum darf nicht in der Zukunft liegen",
		"end_date_before_start":            "Enddatum muss nach dem Startdatum liegen",
		"amount_not_positive":              "Betrag muss größer als null sein",
		"date_too_far_in_future":           "Datum liegt zu weit in der Zukunft",
		"credit_wrong_property":            "Kredit gehört zu einer anderen Immobilie",
		"transaction_wrong_property":       "Transaktion gehört zu einer anderen Immobilie",
		"loan_payment_requires_credit":     "Kreditrate erfordert einen verknüpften Kredit",
		"loan_payment_must_be_expense":     "Kreditrate muss eine Ausgabe sein",
		"credit_link_requires_loan_payment": "Mit einem Kredit verknüpfte Transaktion muss eine Kreditrate sein",
		"document_link_exclusive":          "Dokument kann nicht gleichzeitig mit Transaktion und Kredit verknüpft werden",
		"no_file_selected":                 "Keine Datei ausgewählt",
		"file_type_not_allowed":            "Dateityp ist nicht erlaubt",
		"file_too_large":                   "Datei überschreitet die maximal erlaubte Größe",
		"invalid_type":                     "Ungültiger Typ",
		"invalid_category":                 "Ungültige Kategorie",
		"invalid_date":                     "Ungültiges Datum",
		"invalid_id":                       "Ungültige ID",
		"invalid_json":                     "Ungültiger Anfrageinhalt",

		// conflict
		"property_has_dependents": "Immobilie kann nicht gelöscht werden, solange Kredite, Transaktionen oder Dokumente existieren",

		// storage
		"storage_error": "Interner Fehler bei der Datenspeicherung",

		// transaction categories
		"rent":            "Miete",
		"operating_costs": "Betriebskosten",
		"repair":          "Reparatur",
		"loan_payment":    "Kreditrate",
		"tax":             "Steuer",
		"other":           "Sonstiges",

		// document categories
		"rental_contract":     "Mietvertrag",
		"invoice":             "Rechnung",
		"property_management": "Hausverwaltung",
		"loan":                "Kredit",
	},
	"en": {
		"property_not_found":    "Property not found",
		"credit_not_found":      "Credit not found",
		"transaction_not_found": "Transaction not found",
		"document_not_found":    "Document not found",
		"file_not_found":        "File not found on disk",

		"name_required":                    "Name is required",
		"address_required":                 "Address is required",
		"purchase_price_negative":          "Purchase price must not be negative",
		"original_amount_not_positive":     "Original amount must be greater than zero",
		"interest_rate_out_of_range":       "Interest rate must be between 0 and 100",
		"monthly_payment_exceeds_original": "Monthly payment must not exceed the original amount",
		"start_date_in_future":             "Start date must not be in the future",
		"end_date_before_start":            "End date must be after the start date",
		"amount_not_positive":              "Amount must be greater than zero",
		"date_too_far_in_future":           "Date is too far in the future",
		"credit_wrong_property":            "Credit belongs to a different property",
		"transaction_wrong_property":       "Transaction belongs to a different property",
		"loan_payment_requires_credit":     "Loan payment requires a linked credit",
		"loan_payment_must_be_expense":     "Loan payment must be an expense",
		"credit_link_requires_loan_payment": "Transaction linked to a credit must be a loan payment",
		"document_link_exclusive":          "Document cannot be linked to both transaction and credit",
		"no_file_selected":                 "No file selected",
		"file_type_not_allowed":            "File type not allowed",
		"file_too_large":                   "File size exceeds maximum allowed size",
		"invalid_type":                     "Invalid type",
		"invalid_category":                 "Invalid category",
		"invalid_date":                     "Invalid date",
		"invalid_id":                       "Invalid ID",
		"invalid_json":                     "Invalid request body",

		"property_has_dependents": "Property cannot be deleted while credits, transactions or documents exist",

		"storage_error": "Internal storage error",

		"rent":            "Rent",
		"operating_costs": "Operating Costs",
		"repair":          "Repair",
		"loan_payment":    "Loan Payment",
		"tax":             "Tax",
		"other":           "Other",

		"rental_contract":     "Rental Contract",
		"invoice":             "Invoice",
		"property_management": "Property Management",
		"loan":                "Loan",
	},
}

// CategoryLabel returns the display label of a transaction or document
// category for the given locale. It is a thin alias for T since category
// tags share the message catalogs.
func CategoryLabel(locale, category string) string {
	return T(locale, category)
}
