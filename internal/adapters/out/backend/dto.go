package backend

type entityDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type transitionRequestDTO struct {
	EntityID     string `json:"entityId"`
	TargetStatus string `json:"targetStatus"`
	Notes        string `json:"notes,omitempty"`
}

type errorDTO struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorDTO) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
