// Package cleanup tears down AWS resources that fixture cases created,
// including the wait loops some deletions need before they can proceed.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/awsops"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/extract"
)

// Sessions must leave PROVISIONING before delete_session is accepted, and
// stopped job runs take a while to reach a terminal state.
var (
	pollInterval    = 5 * time.Second
	maxPollAttempts = 36
)

// sessionDeletableStates are the Glue session states delete_session accepts.
var sessionDeletableStates = map[string]struct{}{
	"READY":   {},
	"FAILED":  {},
	"TIMEOUT": {},
	"STOPPED": {},
}

// DeleteAWSResources deletes the resource a tool call created by invoking
// DeleteAPI directly against the service. When ResourceField is set, the
// resource identifier is pulled from the tool response rather than from
// static parameters.
type DeleteAWSResources struct {
	Ops       awsops.Invoker
	DeleteAPI string

	// Params are the delete operation's static parameters, fixture-table
	// snake_case.
	Params map[string]any

	// ResourceField names the response field holding the resource ID,
	// extracted from result.content[0].text.<ResourceField>.
	ResourceField string

	// TargetParamKey is the delete parameter the extracted ID is assigned
	// to. ParamIsList wraps the ID in a single-element list, for batch APIs.
	TargetParamKey string
	ParamIsList    bool
}

// CleanUp implements testcase.Cleanup.
func (d DeleteAWSResources) CleanUp(ctx context.Context, _ map[string]any, response map[string]any) error {
	params := make(map[string]any, len(d.Params)+1)
	for k, v := range d.Params {
		params[k] = v
	}

	var resourceID string
	if d.ResourceField != "" {
		raw, err := extract.Extract(response, "result.content[0].text."+d.ResourceField)
		if err != nil {
			logrus.WithError(err).WithField("field", d.ResourceField).
				Warn("no resource ID in response, skipping cleanup")
			return nil
		}

		resourceID = fmt.Sprintf("%v", raw)
		if d.ParamIsList {
			params[d.TargetParamKey] = []any{resourceID}
		} else {
			params[d.TargetParamKey] = resourceID
		}
	}

	if d.DeleteAPI == "delete_session" && resourceID != "" {
		if err := d.waitForSessionDeletable(ctx, resourceID); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"api":    d.DeleteAPI,
		"params": params,
	}).Info("cleaning up AWS resource")

	if _, err := d.Ops.Invoke(ctx, d.DeleteAPI, awsops.CamelCaseParams(awsops.NormalizeParams(params))); err != nil {
		if awsops.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("%s failed: %w", d.DeleteAPI, err)
	}

	if d.DeleteAPI == "batch_stop_job_run" && resourceID != "" {
		jobName, _ := params["job_name"].(string)
		return d.waitForJobRunStopped(ctx, jobName, resourceID)
	}

	return nil
}

// waitForSessionDeletable polls get_session until the session reaches a
// state delete_session accepts.
func (d DeleteAWSResources) waitForSessionDeletable(ctx context.Context, sessionID string) error {
	for attempt := 0; attempt < maxPollAttempts; attempt++ {
		out, err := d.Ops.Invoke(ctx, "get_session", map[string]any{"Id": sessionID})
		if err != nil {
			if awsops.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("get_session failed while waiting to delete %s: %w", sessionID, err)
		}

		if state, err := extract.Extract(out, "Session.Status"); err == nil {
			if s, ok := state.(string); ok {
				if _, deletable := sessionDeletableStates[s]; deletable {
					return nil
				}
				logrus.WithFields(logrus.Fields{"session": sessionID, "status": s}).
					Debug("waiting for session to become deletable")
			}
		}

		if err := sleep(ctx); err != nil {
			return err
		}
	}
	return fmt.Errorf("session %s did not reach a deletable state", sessionID)
}

// waitForJobRunStopped polls get_job_run after batch_stop_job_run until the
// run reaches STOPPED.
func (d DeleteAWSResources) waitForJobRunStopped(ctx context.Context, jobName, runID string) error {
	for attempt := 0; attempt < maxPollAttempts; attempt++ {
		out, err := d.Ops.Invoke(ctx, "get_job_run", map[string]any{
			"JobName": jobName,
			"RunId":   runID,
		})
		if err != nil {
			if awsops.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("get_job_run failed while waiting for %s to stop: %w", runID, err)
		}

		if state, err := extract.Extract(out, "JobRun.JobRunState"); err == nil {
			switch state {
			case "STOPPED", "SUCCEEDED", "FAILED", "TIMEOUT":
				return nil
			}
			logrus.WithFields(logrus.Fields{"run": runID, "state": state}).
				Debug("waiting for job run to stop")
		}

		if err := sleep(ctx); err != nil {
			return err
		}
	}
	return fmt.Errorf("job run %s did not stop", runID)
}

func sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(pollInterval):
		return nil
	}
}
