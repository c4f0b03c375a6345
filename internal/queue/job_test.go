package queue

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAutoDebitJob_Payload(t *testing.T) {
	job := NewAutoDebitJob("0501020304", snowflake.ID(101), 5000, "2024-03")

	assert.Equal(t, JobAutoDebitPremiums, job.Name)
	assert.NotEmpty(t, job.ID)

	id, err := job.SnowflakeData(DataSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(101), id)

	amount, err := job.Int64Data(DataPremiumPlan)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), amount)

	assert.Equal(t, "0501020304", job.Data[DataPhoneNumber])
	assert.Equal(t, "2024-03", job.Data[DataCycleMonth])
}

func TestNewUpdateContractStatusJob_Payload(t *testing.T) {
	job := NewUpdateContractStatusJob(snowflake.ID(42))

	assert.Equal(t, JobUpdateContractStatus, job.Name)

	id, err := job.SnowflakeData(DataContractID)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(42), id)
}

func TestJob_MalformedPayload(t *testing.T) {
	job := Job{Name: JobUpdateContractStatus, Data: map[string]string{DataContractID: "not-a-number"}}

	_, err := job.SnowflakeData(DataContractID)
	assert.Error(t, err)

	_, err = job.Int64Data("missing")
	assert.Error(t, err)
}
