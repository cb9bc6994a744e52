package billing

import "github.com/mamadbah2/feedbook/internal/domain/models"

// Rejection reasons. Each one is a distinct models.ValidationError.
var (
	ErrInvalidCategory = &models.ValidationError{Field: "category", Title: "Invalid Category", Message: "Please choose feed, medicine or chick."}
	ErrInvalidDate     = &models.ValidationError{Field: "date", Title: "Invalid Date", Message: "Please enter the date as YYYY-MM-DD."}
	ErrNoItems         = &models.ValidationError{Field: "items", Title: "No Items Added", Message: "Please add at least one item."}
	ErrItemRequired    = &models.ValidationError{Field: "items.item", Title: "Invalid Items", Message: "Please select a valid item for all entries."}
	ErrNegativeAmount  = &models.ValidationError{Field: "items", Title: "Invalid Amount", Message: "Quantities and rates cannot be negative."}

	ErrBillNoRequired     = &models.ValidationError{Field: "billNo", Title: "Bill Number Required", Message: "Please enter a valid bill number."}
	ErrRecipientRequired  = &models.ValidationError{Field: "to", Title: "Recipient Required", Message: "Please specify who the bill is for."}
	ErrDuplicateBillNo    = &models.ValidationError{Field: "billNo", Title: "Duplicate Bill Number", Message: "A bill with this number already exists. Please use a different number."}
	ErrInvalidPaymentType = &models.ValidationError{Field: "paymentType", Title: "Invalid Payment Type", Message: "Payment type must be credit or cash."}

	ErrInvoiceNoRequired  = &models.ValidationError{Field: "invoiceNo", Title: "Invoice Number Required", Message: "Please enter a valid invoice number."}
	ErrPartyRequired      = &models.ValidationError{Field: "partyName", Title: "Party Required", Message: "Please specify the supplier."}
	ErrDuplicateInvoiceNo = &models.ValidationError{Field: "invoiceNo", Title: "Duplicate Invoice Number", Message: "An invoice with this number already exists. Please use a different number."}
	ErrInvalidDiscount    = &models.ValidationError{Field: "items.discountPercentage", Title: "Invalid Discount", Message: "Discount must be between 0 and 100 percent."}
	ErrNegativeFreight    = &models.ValidationError{Field: "freightCharges", Title: "Invalid Freight", Message: "Freight charges cannot be negative."}
)
