package models

// AgentStatus is the lifecycle state of a pipeline stage (spec.md §3).
type AgentStatus string

const (
	Idle      AgentStatus = "Idle"
	Running   AgentStatus = "Running"
	Succeeded AgentStatus = "Succeeded"
	Failed    AgentStatus = "Failed"
)

// AgentState is the per-stage status record the Orchestrator tracks
// (spec.md §3). Context holds an opaque key/value summary, discarded
// after the run's response is produced.
type AgentState struct {
	Name       string                 `json:"name"`
	Status     AgentStatus            `json:"status"`
	LastAction string                 `json:"last_action"`
	Context    map[string]interface{} `json:"context"`
}

func NewAgentState(name string) *AgentState {
	return &AgentState{Name: name, Status: Idle, Context: make(map[string]interface{})}
}

func (s *AgentState) SetStatus(status AgentStatus) {
	s.Status = status
}

func (s *AgentState) SetAction(action string) {
	s.LastAction = action
}
