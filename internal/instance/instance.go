// Package instance holds the value types nightking passes between the
// Pub/Sub intake, the reconciler and the Compute API adapter.
package instance

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Compute API adapters when the referenced
// instance does not exist.
var ErrNotFound = errors.New("instance not found")

// Reference identifies one Compute Engine instance.
type Reference struct {
	Name string `json:"name"`
	Zone string `json:"zone"`
}

// String returns the reference as "zone/name".
func (r Reference) String() string {
	return r.Zone + "/" + r.Name
}

// Validate checks that both fields are set.
func (r Reference) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if r.Zone == "" {
		return fmt.Errorf("%w: zone", ErrMissingField)
	}
	return nil
}

// Status is the lifecycle state reported by the Compute API.
type Status string

const (
	StatusProvisioning Status = "PROVISIONING"
	StatusStaging      Status = "STAGING"
	StatusRunning      Status = "RUNNING"
	StatusStopping     Status = "STOPPING"
	StatusSuspending   Status = "SUSPENDING"
	StatusSuspended    Status = "SUSPENDED"
	StatusRepairing    Status = "REPAIRING"
	StatusTerminated   Status = "TERMINATED"
)

// Instance is the subset of a Compute Engine instance nightking looks at.
type Instance struct {
	ID                uint64
	Name              string
	Zone              string
	Status            Status
	StatusMessage     string
	Preemptible       bool
	ProvisioningModel string
	LastStopTimestamp string
}

// Operation is the subset of a Compute Engine zonal operation returned by a
// start request. It is only ever logged.
type Operation struct {
	ID            uint64
	Name          string
	OperationType string
	Status        string
	TargetLink    string
	InsertTime    string
}

// String renders the operation for log output.
func (o *Operation) String() string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s (%s) target=%s inserted=%s", o.OperationType, o.Name, o.Status, o.TargetLink, o.InsertTime)
}
