package cli

import (
	"github.com/spf13/cobra"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/application/usecase"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
)

func newComputeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compute",
		Short:   "Print the repayment schedule for a credit file",
		Example: `  schedulectl compute -f credit.json`,
		Args:    cobra.NoArgs,
		RunE:    runCompute,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the credit JSON file")
	return cmd
}

func runCompute(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")

	var credit dto.CreditInput
	if err := readJSONFile(path, &credit); err != nil {
		return err
	}

	uc := usecase.NewPreviewScheduleUseCase(service.NewScheduleEngine(), noopMetrics{})
	resp, err := uc.Execute(cmd.Context(), dto.PreviewScheduleRequest{Credit: credit})
	if err != nil {
		return err
	}
	return writeJSON(cmd, resp)
}
