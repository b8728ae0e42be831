package constant

const (
	DATE_REQUIRED            = "Date query parameter is required."
	DATE_RANGE_REQUIRED      = "Both startDate and endDate query parameters are required."
	INVALID_DATE             = "Dates must use the YYYY-MM-DD format."
	INVALID_DATE_RANGE       = "endDate must not be before startDate."
	RESERVATION_FIELDS       = "Party size and reservation time are required."
	INVALID_PARTY_SIZE       = "Party size must be a positive number."
	INVALID_RESERVATION_TIME = "Reservation time could not be parsed."
	RESERVATION_CREATED      = "Reservation created successfully."
	USER_DETAILS_UNAVAILABLE = "Could not retrieve user details."
	MISSING_PHONE            = "User profile is missing a phone number."
	SETTINGS_UNAVAILABLE     = "Could not retrieve restaurant settings."
	SLOT_FULL                = "The requested time slot is fully booked."
)
