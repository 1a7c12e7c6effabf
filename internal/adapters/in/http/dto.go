package http

import (
	"time"

	"statusflow/internal/core/application/usecases/queries"
	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/core/domain/services"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type StatusInfo struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Phase       string `json:"phase,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	Terminal    bool   `json:"terminal"`
	Known       bool   `json:"known"`
}

type Action struct {
	Status StatusInfo `json:"status"`
	Kind   string     `json:"kind"`
}

type WorkflowSummary struct {
	Name            string   `json:"name"`
	Phases          []string `json:"phases"`
	InitialStatuses []string `json:"initialStatuses"`
	EscapeStatus    string   `json:"escapeStatus"`
}

type WorkflowStatus struct {
	StatusInfo
	Next []string `json:"next"`
}

type Workflow struct {
	WorkflowSummary
	Statuses []WorkflowStatus `json:"statuses"`
}

type NextStatuses struct {
	Current StatusInfo `json:"current"`
	Actions []Action   `json:"actions"`
}

type TransitionCheck struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Allowed bool   `json:"allowed"`
	Kind    string `json:"kind,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type EntityStatus struct {
	ID         openapi_types.UUID `json:"id"`
	Domain     string             `json:"domain"`
	Status     StatusInfo         `json:"status"`
	PhaseIndex int                `json:"phaseIndex"`
	Actions    []Action           `json:"actions"`
	InFlight   bool               `json:"inFlight"`
	SyncedAt   *time.Time         `json:"syncedAt,omitempty"`
	LastError  string             `json:"lastError,omitempty"`
}

type TransitionRequest struct {
	TargetStatus string `json:"targetStatus"`
	Notes        string `json:"notes,omitempty"`
}

type TransitionResult struct {
	Entity   EntityStatus `json:"entity"`
	Resynced bool         `json:"resynced"`
}

type CheckTransitionParams struct {
	From string `form:"from" json:"from"`
	To   string `form:"to" json:"to"`
}

type GetEntityStatusParams struct {
	Refresh *bool `form:"refresh,omitempty" json:"refresh,omitempty"`
}

func toStatusInfo(info workflow.StatusInfo) StatusInfo {
	return StatusInfo{
		Code:        info.Code,
		Label:       info.Label,
		Phase:       info.Phase.String(),
		Description: info.Description,
		Color:       info.Color.String(),
		Terminal:    info.Terminal,
		Known:       info.Known,
	}
}

func toActions(actions []services.Action) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		out = append(out, Action{Status: toStatusInfo(a.Target), Kind: string(a.Kind)})
	}
	return out
}

func toPhases(phases []workflow.Phase) []string {
	out := make([]string, 0, len(phases))
	for _, p := range phases {
		out = append(out, p.String())
	}
	return out
}

func toWorkflow(resp queries.GetWorkflowQueryResponse) Workflow {
	w := Workflow{
		WorkflowSummary: WorkflowSummary{
			Name:            resp.Name,
			Phases:          toPhases(resp.Phases),
			InitialStatuses: resp.InitialStatuses,
			EscapeStatus:    resp.EscapeStatus,
		},
		Statuses: make([]WorkflowStatus, 0, len(resp.Statuses)),
	}
	for _, s := range resp.Statuses {
		w.Statuses = append(w.Statuses, WorkflowStatus{StatusInfo: toStatusInfo(s.Info), Next: s.Next})
	}
	return w
}

func toEntityStatus(resp queries.GetEntityStatusQueryResponse) EntityStatus {
	e := EntityStatus{
		ID:         resp.EntityID.Bytes(),
		Domain:     resp.Domain,
		Status:     toStatusInfo(resp.Status),
		PhaseIndex: resp.PhaseIndex,
		Actions:    toActions(resp.Actions),
		InFlight:   resp.InFlight,
		LastError:  resp.LastError,
	}
	if !resp.SyncedAt.IsZero() {
		syncedAt := resp.SyncedAt.UTC()
		e.SyncedAt = &syncedAt
	}
	return e
}
