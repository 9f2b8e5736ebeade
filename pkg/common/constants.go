package common

import "time"

const (
	// UsersTable is the table the command reads.
	UsersTable = "usuarios"
	// AllColumns selects every column of the table.
	AllColumns = "*"

	DefaultSchema      = "public"
	DefaultHTTPTimeout = 30 * time.Second

	BackendREST     = "rest"
	BackendPostgres = "postgres"

	RESTPath = "/rest/v1"

	APIKeyHeader        = "apikey"
	AuthorizationHeader = "Authorization"
	ClientInfoHeader    = "X-Client-Info"
	AcceptProfileHeader = "Accept-Profile"
	PreferHeader        = "Prefer"
	ContentRangeHeader  = "Content-Range"
)
