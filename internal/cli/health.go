package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/bibbank/credit-schedule-service/pkg/tlsutil"
)

func newHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Query the gRPC health service of a running credit-schedule-service",
		Example: `  schedulectl health --addr schedule.internal:9091 --ca-file ca.pem
  schedulectl health --addr localhost:9091 --insecure`,
		Args: cobra.NoArgs,
		RunE: runHealth,
	}
	cmd.Flags().String("addr", "localhost:9091", "Service gRPC address")
	cmd.Flags().String("service", "credit-schedule-service", "Health service name to check")
	cmd.Flags().String("ca-file", "", "PEM CA bundle; empty uses the system roots")
	cmd.Flags().String("server-name", "", "Override the name verified against the server certificate")
	cmd.Flags().Bool("insecure", false, "Connect without TLS")
	cmd.Flags().Duration("timeout", 5*time.Second, "Deadline for the check")
	return cmd
}

func runHealth(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	service, _ := cmd.Flags().GetString("service")
	caFile, _ := cmd.Flags().GetString("ca-file")
	serverName, _ := cmd.Flags().GetString("server-name")
	plaintext, _ := cmd.Flags().GetBool("insecure")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	var creds credentials.TransportCredentials
	if plaintext {
		creds = insecure.NewCredentials()
	} else {
		var err error
		creds, err = tlsutil.ClientTLSConfig(caFile, serverName)
		if err != nil {
			return err
		}
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return fmt.Errorf("health check %s: %w", addr, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.GetStatus().String())
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("service %q is %s", service, resp.GetStatus())
	}
	return nil
}
