package tasks

type Submitted struct {
	TaskId string `json:"task_id"`
	Status string `json:"status"`
}

type Detail struct {
	TaskId string `json:"task_id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
