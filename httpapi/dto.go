package httpapi

import (
	"fmt"
	"time"

	"github.com/fluxcron/dispatcher/cronspec"
	"github.com/fluxcron/dispatcher/jobservice"
	"github.com/fluxcron/dispatcher/jobstore"
)

// wallLayout is the zone-less wall-clock format used on the wire.
// The accompanying time_zone field tells the scheduler how to read it.
const wallLayout = "2006-01-02T15:04:05"

// JobRequest is the POST /api/jobs body.
type JobRequest struct {
	ClientID     string `json:"client_id"      validate:"required"`
	ScheduleType string `json:"schedule_type"  validate:"required,oneof=IMMEDIATE ONE_TIME RECURRING"`

	// StartTime is a zone-less local timestamp, interpreted in TimeZone.
	StartTime string `json:"start_time,omitempty"`
	TimeZone  string `json:"time_zone,omitempty"`

	CronExpression      string `json:"cron_expression,omitempty"`
	DaysOfWeek          []int  `json:"days_of_week,omitempty"   validate:"omitempty,dive,min=1,max=7"`
	DaysOfMonth         []int  `json:"days_of_month,omitempty"  validate:"omitempty,dive,min=1,max=31"`
	HourlyInterval      int    `json:"hourly_interval,omitempty" validate:"min=0"`
	RecurringTimeHour   int    `json:"recurring_time_hour,omitempty"   validate:"min=0,max=23"`
	RecurringTimeMinute int    `json:"recurring_time_minute,omitempty" validate:"min=0,max=59"`
}

// toCreateRequest translates the wire form into the service's request.
func (r *JobRequest) toCreateRequest() (jobservice.CreateRequest, error) {
	req := jobservice.CreateRequest{
		TenantID:       r.ClientID,
		Kind:           jobstore.ScheduleKind(r.ScheduleType),
		Zone:           r.TimeZone,
		CronExpression: r.CronExpression,
	}

	if r.StartTime != "" {
		wall, err := time.Parse(wallLayout, r.StartTime)
		if err != nil {
			return jobservice.CreateRequest{}, fmt.Errorf("start_time must be formatted %s: %w", wallLayout, err)
		}
		req.WallStart = &wall
	}

	if r.CronExpression == "" &&
		(r.HourlyInterval > 0 || len(r.DaysOfWeek) > 0 || len(r.DaysOfMonth) > 0 ||
			r.RecurringTimeHour > 0 || r.RecurringTimeMinute > 0) {
		req.Descriptor = &cronspec.Descriptor{
			HourlyInterval: r.HourlyInterval,
			DaysOfWeek:     r.DaysOfWeek,
			DaysOfMonth:    r.DaysOfMonth,
			Hour:           r.RecurringTimeHour,
			Minute:         r.RecurringTimeMinute,
		}
	}

	return req, nil
}

// JobResponse is the wire projection of a job.
type JobResponse struct {
	ID             string `json:"id"`
	ClientID       string `json:"client_id"`
	ScheduleType   string `json:"schedule_type"`
	CronExpression string `json:"cron_expression,omitempty"`
	TimeZone       string `json:"time_zone"`
	StartTime      string `json:"start_time,omitempty"`
	NextFireTime   string `json:"next_fire_time,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	Error          string `json:"error,omitempty"`
}

func toJobResponse(job *jobstore.Job) JobResponse {
	resp := JobResponse{
		ID:             job.ID.String(),
		ClientID:       job.TenantID,
		ScheduleType:   string(job.ScheduleKind),
		CronExpression: job.Cron,
		TimeZone:       job.Zone,
		Status:         string(job.Status),
		CreatedAt:      job.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      job.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if job.WallStart != nil {
		resp.StartTime = job.WallStart.Format(wallLayout)
	}
	if job.NextFire != nil {
		resp.NextFireTime = job.NextFire.Format(wallLayout)
	}
	return resp
}
