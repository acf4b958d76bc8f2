package email

const (
	subjectInvoiceCreatedFmt   = "Factuur %s is aangemaakt"
	subjectQuotationCreatedFmt = "Offerte %s is aangemaakt"
)
