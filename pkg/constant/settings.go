package constant

const (
	SETTING_MAX_TABLES       = "max_tables"
	SETTING_MAX_RESERVATIONS = "max_reservations"

	TEMPLATE_RESERVATION_CONFIRMATION = "reservation_confirmation"
)
