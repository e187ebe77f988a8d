package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/application/usecase"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
)

const offlineTenant = "offline"

func newUnprocessedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unprocessed",
		Short:   "List schedule periods with no recorded payment",
		Example: `  schedulectl unprocessed -f credit.json -p payments.json --today 2024-06-01`,
		Args:    cobra.NoArgs,
		RunE:    runUnprocessed,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the credit JSON file")
	cmd.Flags().StringP("payments", "p", "", "Path to a JSON array of recorded payments")
	cmd.Flags().String("today", "", "Reference date (YYYY-MM-DD); defaults to the current date")
	cmd.Flags().String("timezone", "Europe/Chisinau", "Time zone used to derive today")
	return cmd
}

func runUnprocessed(cmd *cobra.Command, _ []string) error {
	creditPath, _ := cmd.Flags().GetString("file")
	paymentsPath, _ := cmd.Flags().GetString("payments")
	today, _ := cmd.Flags().GetString("today")
	tz, _ := cmd.Flags().GetString("timezone")

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return err
	}

	var credit dto.CreditInput
	if err := readJSONFile(creditPath, &credit); err != nil {
		return err
	}
	var payments []dto.PaymentRecordInput
	if paymentsPath != "" {
		if err := readJSONFile(paymentsPath, &payments); err != nil {
			return err
		}
	}

	snap, err := usecase.BuildSnapshot(offlineTenant, credit, payments, usecase.SystemClock())
	if err != nil {
		return err
	}

	uc := usecase.NewListUnprocessedPeriodsUseCase(
		usecase.StaticSnapshotLoader{Snapshot: snap},
		service.NewScheduleEngine(),
		service.NewPeriodReconciler(),
		usecase.SystemClock,
		loc,
	)
	resp, err := uc.Execute(cmd.Context(), dto.ListUnprocessedRequest{
		TenantID: offlineTenant,
		CreditID: snap.Credit.ID(),
		Today:    today,
	})
	if err != nil {
		return err
	}
	// The generated credit ID means nothing outside this run.
	resp.CreditID = credit.Number
	return writeJSON(cmd, resp)
}

type noopMetrics struct{}

func (noopMetrics) ObserveComputation(context.Context, string, string, int, time.Duration, error) {}
func (noopMetrics) AddPaymentsCreated(context.Context, int) {}
