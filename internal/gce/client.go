// Package gce adapts the Compute Engine v1 API to the reconciler.
package gce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"nightking/internal/instance"
	"nightking/pkg/logging"
)

const subsystem = "Compute"

// Client talks to the Compute Engine instances API of a single project.
// It holds no mutable state and is shared by all reconciliations.
type Client struct {
	project   string
	instances *compute.InstancesService
}

// NewClient creates a Client for project.
func NewClient(ctx context.Context, project string, opts ...option.ClientOption) (*Client, error) {
	if project == "" {
		return nil, errors.New("project is required")
	}

	svc, err := compute.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Compute service: %w", err)
	}

	logging.Debug(subsystem, "Created Compute client for project %q", project)
	return &Client{
		project:   project,
		instances: compute.NewInstancesService(svc),
	}, nil
}

// Project returns the project the client operates on.
func (c *Client) Project() string {
	return c.project
}

// GetInstance returns the current state of an instance. A missing instance
// yields an error wrapping instance.ErrNotFound.
func (c *Client) GetInstance(ctx context.Context, zone, name string) (*instance.Instance, error) {
	inst, err := c.instances.Get(c.project, zone, name).Context(ctx).Do()
	if err != nil {
		return nil, classify(err, "get", zone, name)
	}

	out := &instance.Instance{
		ID:                inst.Id,
		Name:              inst.Name,
		Zone:              path.Base(inst.Zone),
		Status:            instance.Status(inst.Status),
		StatusMessage:     inst.StatusMessage,
		LastStopTimestamp: inst.LastStopTimestamp,
	}
	if inst.Scheduling != nil {
		out.Preemptible = inst.Scheduling.Preemptible
		out.ProvisioningModel = inst.Scheduling.ProvisioningModel
	}
	if out.Zone == "." || out.Zone == "" {
		out.Zone = zone
	}
	return out, nil
}

// StartInstance requests that an instance be started and returns the
// resulting zonal operation without waiting for it.
func (c *Client) StartInstance(ctx context.Context, zone, name string) (*instance.Operation, error) {
	op, err := c.instances.Start(c.project, zone, name).Context(ctx).Do()
	if err != nil {
		return nil, classify(err, "start", zone, name)
	}

	return &instance.Operation{
		ID:            op.Id,
		Name:          op.Name,
		OperationType: op.OperationType,
		Status:        op.Status,
		TargetLink:    op.TargetLink,
		InsertTime:    op.InsertTime,
	}, nil
}

// classify wraps err, marking HTTP 404 responses as instance.ErrNotFound.
func classify(err error, verb, zone, name string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s/%s: %v", instance.ErrNotFound, zone, name, err)
	}
	return fmt.Errorf("failed to %s instance %s/%s: %w", verb, zone, name, err)
}
