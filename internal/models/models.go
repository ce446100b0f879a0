package models

// Processing lifecycle statuses reported to callers and webhook
// consumers. The wire values follow the platform's existing contract.
const (
	StatusStarted    = "iniciado"
	StatusCompleted  = "concluido"
	StatusFailed     = "erro"
	StatusInProgress = "em_processamento"
)

// ProcessRequest is the intake payload for one processing submission.
type ProcessRequest struct {
	IDProjeto string `json:"id_projeto"`
	IDTalhao  string `json:"id_talhao"`
}

// ProcessAck is the synchronous acknowledgement returned by POST
// /processar. It only confirms that the run was scheduled; the real
// outcome arrives through the webhook channel.
type ProcessAck struct {
	IDProjeto string `json:"id_projeto"`
	IDTalhao  string `json:"id_talhao"`
	Status    string `json:"status"`
	Mensagem  string `json:"mensagem,omitempty"`
}

// StatusQueryResponse is returned by GET /status/:id_projeto.
type StatusQueryResponse struct {
	IDProjeto string `json:"id_projeto"`
	Status    string `json:"status"`
	Mensagem  string `json:"mensagem,omitempty"`
}

// StatusEvent is one lifecycle transition, delivered to the webhook
// destination and, when configured, to the status exchange.
type StatusEvent struct {
	IDProjeto string `json:"id_projeto"`
	IDTalhao  string `json:"id_talhao"`
	Status    string `json:"status"`
	Mensagem  string `json:"mensagem,omitempty"`
}

// ErrorResponse carries an error message on 4xx/5xx responses.
type ErrorResponse struct {
	Mensagem string `json:"mensagem"`
}
