// Command executer runs the executer side of a distributed Dijkstra
// fleet: it connects to every registered worker and serves
// ExecuterService.ShortestPathQuery for external clients. Grounded on
// original_source/executer/src/main.rs, rendered in the teacher's cobra
// bootstrap style (cmd/warren/main.go).
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/allvpv/GraphWorker/pkg/config"
	"github.com/allvpv/GraphWorker/pkg/executer"
	"github.com/allvpv/GraphWorker/pkg/log"
	"github.com/allvpv/GraphWorker/pkg/metrics"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var rootCmd = &cobra.Command{
	Use:   "executer",
	Short: "Serve shortest-path queries over a distributed Dijkstra graph fleet",
	RunE:  run,
}

func init() {
	rootCmd.Flags().String("manager-addr", "127.0.0.1:7000", "Manager gRPC address")
	rootCmd.Flags().String("listen-addr", "0.0.0.0:49999", "Address this executer listens on for client queries")
	rootCmd.Flags().String("metrics-addr", "127.0.0.1:9092", "Address for the /metrics and /healthz HTTP endpoints")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOutput, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonOutput})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	managerAddr := config.StringOrEnv(cmd, "manager-addr", "PARTITIONER_IP", "127.0.0.1:7000")
	listenAddr, _ := cmd.Flags().GetString("listen-addr")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	instanceID := uuid.NewString()
	logger := log.WithComponent("executer").With().Str("instance_id", instanceID).Logger()
	logger.Info().Str("manager_addr", managerAddr).Msg("connecting to manager")

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, proto.DialOptions()...)
	managerConn, err := grpc.Dial(managerAddr, dialOpts...)
	if err != nil {
		return fmt.Errorf("connecting to manager: %w", err)
	}
	defer managerConn.Close()

	mgr := proto.NewManagerServiceClient(managerConn)

	ctx := context.Background()
	entries, err := executer.SortedWorkerAddresses(ctx, mgr)
	if err != nil {
		return fmt.Errorf("listing workers: %w", err)
	}
	logger.Info().Int("worker_count", len(entries)).Msg("fetched worker list")

	workers, err := executer.ConnectToAllWorkers(entries)
	if err != nil {
		return fmt.Errorf("connecting to workers: %w", err)
	}
	defer func() {
		for _, w := range workers {
			_ = w.Close()
		}
	}()

	service := executer.NewService(workers, logger)

	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", listenAddr, err)
	}
	logger.Info().Str("addr", lis.Addr().String()).Msg("listening for queries")

	grpcServer := grpc.NewServer(proto.ServerOptions()...)
	proto.RegisterExecuterServiceServer(grpcServer, service)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	logger.Info().Str("addr", metricsAddr).Msg("metrics endpoint listening")

	errCh := make(chan error, 1)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		return fmt.Errorf("gRPC server error: %w", err)
	}

	grpcServer.GracefulStop()
	return nil
}
