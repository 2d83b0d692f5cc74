package formatting

import (
	"time"

	"nightking/internal/reconciler"
)

// statusView is the serializable form of an InstanceStatus.
type statusView struct {
	Name              string `json:"name" yaml:"name"`
	Zone              string `json:"zone" yaml:"zone"`
	Status            string `json:"status,omitempty" yaml:"status,omitempty"`
	StatusMessage     string `json:"statusMessage,omitempty" yaml:"statusMessage,omitempty"`
	Preemptible       bool   `json:"preemptible" yaml:"preemptible"`
	ProvisioningModel string `json:"provisioningModel,omitempty" yaml:"provisioningModel,omitempty"`
	LastStop          string `json:"lastStopTimestamp,omitempty" yaml:"lastStopTimestamp,omitempty"`
	Error             string `json:"error,omitempty" yaml:"error,omitempty"`
}

func toStatusView(row InstanceStatus) statusView {
	v := statusView{Name: row.Reference.Name, Zone: row.Reference.Zone}
	if row.Error != nil {
		v.Error = row.Error.Error()
	}
	if inst := row.Instance; inst != nil {
		v.Status = string(inst.Status)
		v.StatusMessage = inst.StatusMessage
		v.Preemptible = inst.Preemptible
		v.ProvisioningModel = inst.ProvisioningModel
		v.LastStop = inst.LastStopTimestamp
	}
	return v
}

// resurrectionView is the serializable form of a Resurrection.
type resurrectionView struct {
	Name       string `json:"name" yaml:"name"`
	Zone       string `json:"zone" yaml:"zone"`
	Outcome    string `json:"outcome" yaml:"outcome"`
	LastStatus string `json:"lastStatus,omitempty" yaml:"lastStatus,omitempty"`
	Polls      int    `json:"polls" yaml:"polls"`
	Waited     string `json:"waited" yaml:"waited"`
	Operation  string `json:"operation,omitempty" yaml:"operation,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

func toResurrectionView(row Resurrection) resurrectionView {
	r := row.Result
	v := resurrectionView{
		Name:       row.Reference.Name,
		Zone:       row.Reference.Zone,
		Outcome:    string(r.Outcome),
		LastStatus: string(r.LastStatus),
		Polls:      r.Polls,
		Waited:     r.Waited.Round(time.Second).String(),
	}
	if r.Operation != nil {
		v.Operation = r.Operation.Name
	}
	if r.Error != nil {
		v.Error = r.Error.Error()
	}
	return v
}

// outcomeSucceeded reports whether a resurrection request led to a start.
func outcomeSucceeded(r reconciler.Result) bool {
	return r.Outcome == reconciler.OutcomeResurrected && r.Error == nil
}
