// Package queue provides the durable job queue and its worker pool. Jobs
// are JSON documents on a redis list, drained at-least-once by a bounded
// pool of handler goroutines, independent of the request/response cycle.
package queue

import (
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// JobName dispatches a job to its registered handler.
type JobName string

const (
	JobUpdateContractStatus JobName = "updateContractStatus"
	JobAutoDebitPremiums    JobName = "autoDebitPremiums"
)

// Data keys carried by job payloads.
const (
	DataContractID     = "contractId"
	DataPhoneNumber    = "phoneNumber"
	DataSubscriptionID = "subscriptionId"
	DataPremiumPlan    = "premiumPlan"
	DataCycleMonth     = "cycleMonth"
)

// Job is an immutable work item.
type Job struct {
	ID         string            `json:"id"`
	Name       JobName           `json:"name"`
	Data       map[string]string `json:"data"`
	EnqueuedAt time.Time         `json:"enqueuedAt"`
}

// NewUpdateContractStatusJob builds the job that re-reconciles one contract.
func NewUpdateContractStatusJob(contractID snowflake.ID) Job {
	return Job{
		ID:   uuid.NewString(),
		Name: JobUpdateContractStatus,
		Data: map[string]string{
			DataContractID: contractID.String(),
		},
	}
}

// NewAutoDebitJob builds the job that collects one monthly premium by
// auto-debit. cycleMonth names the billing cycle being collected: the
// monthly sweep passes the current month, the retry sweep the month the
// original debit failed in, so a cross-month retry still settles the
// missed cycle.
func NewAutoDebitJob(phoneNumber string, subscriptionID snowflake.ID, premiumPlan int64, cycleMonth string) Job {
	return Job{
		ID:   uuid.NewString(),
		Name: JobAutoDebitPremiums,
		Data: map[string]string{
			DataPhoneNumber:    phoneNumber,
			DataSubscriptionID: subscriptionID.String(),
			DataPremiumPlan:    strconv.FormatInt(premiumPlan, 10),
			DataCycleMonth:     cycleMonth,
		},
	}
}

// SnowflakeData parses a snowflake id out of the job payload.
func (j Job) SnowflakeData(key string) (snowflake.ID, error) {
	raw, err := strconv.ParseInt(j.Data[key], 10, 64)
	if err != nil {
		return 0, err
	}
	return snowflake.ID(raw), nil
}

// Int64Data parses an integer amount out of the job payload.
func (j Job) Int64Data(key string) (int64, error) {
	return strconv.ParseInt(j.Data[key], 10, 64)
}
