package constant

const (
	MESSAGE_SENT       = "Message sent successfully"
	SESSION_LOGGED_OUT = "WhatsApp session cleared successfully"
	QR_NOT_AVAILABLE   = "QR code not available yet"

	ADDED   = "Added successfully"
	UPDATED = "Updated successfully"
	DELETED = "Deleted successfully"

	INVALID_PAGE_NUMBER      = "invalid page number"
	PAGE_NUMBER_OUT_OF_RANGE = "page number out of range"

	NUMBER_ALREADY_REGISTERED = "number is already registered"
	INVALID_PHONE_NUMBER      = "invalid phone number format"
	KEYWORD_ALREADY_EXISTS    = "keyword already exists"
)
