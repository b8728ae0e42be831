package constant

const (
	ALREADY_EXISTS       = "%s already exists"
	CREATED              = "%s created successfully"
	INVALID_REQUEST      = "Invalid request payload"
	SOMETHING_WENT_WRONG = "something went wrong"

	REGISTER_FIELDS_REQUIRED = "Please provide name, email, password, and phone number."
	LOGIN_FIELDS_REQUIRED    = "Please provide email and password."
	EMAIL_IN_USE             = "Email already in use."
	INVALID_CREDENTIALS      = "Invalid credentials."

	TOKEN_REQUIRED  = "Token is required"
	MALFORMED_TOKEN = "Invalid/Malformed auth token"
	INVALID_TOKEN   = "Invalid or expired token"
	STAFF_ONLY      = "Access denied. Staff only."
)
