package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
)

const creditJSON = `{
  "number": "CR-2024-001",
  "principal": "100000",
  "currency": "USD",
  "calculationMethod": "annuity",
  "startDate": "2024-01-15",
  "paymentDay": 15,
  "termMonths": 12,
  "rate": "0.12"
}`

const paymentsJSON = `[
  {"periodNumber": 1, "dueDate": "2024-02-15", "principalDue": "7884.88", "interestDue": "1000.00", "totalDue": "8884.88", "status": "PAID"},
  {"periodNumber": 2, "dueDate": "2024-03-15", "principalDue": "7963.73", "interestDue": "921.15", "totalDue": "8884.88", "status": "PAID"}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCompute(t *testing.T) {
	out, err := run(t, "compute", "-f", writeFile(t, "credit.json", creditJSON))
	require.NoError(t, err)

	var resp dto.ScheduleResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Schedule, 12)
	assert.Equal(t, "classic_annuity", resp.Loan.CalculationMethod)
	assert.Equal(t, "2024-02-15", resp.Schedule[0].DueDate)
	assert.Equal(t, "8884.88", resp.Schedule[0].TotalDue.StringFixed(2))
	assert.Equal(t, "6618.53", resp.Totals.Overpayment.StringFixed(2))
}

func TestCompute_RequiresFile(t *testing.T) {
	_, err := run(t, "compute")
	require.Error(t, err)
}

func TestUnprocessed(t *testing.T) {
	out, err := run(t, "unprocessed",
		"-f", writeFile(t, "credit.json", creditJSON),
		"-p", writeFile(t, "payments.json", paymentsJSON),
		"--today", "2024-04-01",
	)
	require.NoError(t, err)

	var resp dto.UnprocessedPeriodsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "CR-2024-001", resp.CreditID)
	assert.Equal(t, "2024-04-01", resp.Today)
	require.Len(t, resp.Periods, 10)
	assert.Equal(t, 3, resp.Periods[0].PeriodNumber)
	assert.Equal(t, "OVERDUE", resp.Periods[0].Status)
	assert.Equal(t, "SCHEDULED", resp.Periods[1].Status)
}

func TestUnprocessed_WithoutPayments(t *testing.T) {
	out, err := run(t, "unprocessed", "-f", writeFile(t, "credit.json", creditJSON), "--today", "2024-01-20")
	require.NoError(t, err)

	var resp dto.UnprocessedPeriodsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Periods, 12)
}

func TestUnprocessed_RejectsUnknownTimezone(t *testing.T) {
	_, err := run(t, "unprocessed", "-f", writeFile(t, "credit.json", creditJSON), "--timezone", "Nowhere/Land")
	require.Error(t, err)
}
