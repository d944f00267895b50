package responses

type BaseResponse struct {
	ErrorMessage string      `json:"error_message,omitempty"`
	ErrorKind    string      `json:"error_kind,omitempty"`
	Result       interface{} `json:"result"`
}

const (
	HealthOK = "ok"

	// ContentDisposition is the header value template for roster downloads
	ContentDisposition = `attachment; filename="%s"`
)
