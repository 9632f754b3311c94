package responses

// APIError interface for custom API errors
type APIError interface {
	Error() string
	StatusCode() int
}

type BadRequestError struct {
	Msg string
}

func (e BadRequestError) Error() string {
	return e.Msg
}

func (BadRequestError) StatusCode() int {
	return 400
}

type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	return e.Msg
}

func (UnauthorizedError) StatusCode() int {
	return 401
}

type NotFoundError struct {
	Msg string
}

func (e NotFoundError) Error() string {
	return e.Msg
}

func (NotFoundError) StatusCode() int {
	return 404
}

type MethodNotAllowedError struct {
	Msg string
}

func (e MethodNotAllowedError) Error() string {
	return e.Msg
}

func (MethodNotAllowedError) StatusCode() int {
	return 405
}

// ConflictError reports a uniqueness violation such as a taken username.
type ConflictError struct {
	Msg string
}

func (e ConflictError) Error() string {
	return e.Msg
}

func (ConflictError) StatusCode() int {
	return 409
}

type InternalServerError struct {
	Msg string
}

func (e InternalServerError) Error() string {
	return e.Msg
}

func (InternalServerError) StatusCode() int {
	return 500
}

// BadGatewayError reports a failed call to an upstream API.
type BadGatewayError struct {
	Msg string
}

func (e BadGatewayError) Error() string {
	return e.Msg
}

func (BadGatewayError) StatusCode() int {
	return 502
}

type ServiceUnavailableError struct {
	Msg string
}

func (e ServiceUnavailableError) Error() string {
	return e.Msg
}

func (ServiceUnavailableError) StatusCode() int {
	return 503
}
