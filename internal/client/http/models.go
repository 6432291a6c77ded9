package client

type heartbeatModel struct {
	Entity          string  `json:"entity"`
	Type            string  `json:"type"`
	Category        *string `json:"category"`
	Project         string  `json:"project"`
	Branch          string  `json:"branch"`
	Language        string  `json:"language"`
	IsWrite         bool    `json:"is_write"`
	Editor          string  `json:"editor"`
	OperatingSystem string  `json:"operating_system"`
	Machine         string  `json:"machine"`
	Time            int64   `json:"time"`
}

type heartbeatResponseModel struct {
	ID     string  `json:"id"`
	Entity string  `json:"entity"`
	Type   string  `json:"type"`
	Time   float64 `json:"time"`
}

type messageResponse[T any] struct {
	Error *string `json:"error"`
	Data  *T      `json:"data"`
}
