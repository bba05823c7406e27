// Command worker runs the worker side of a distributed Dijkstra fleet:
// it registers with the manager, downloads its graph partition, and
// serves WorkerService until signaled to stop. Grounded on
// original_source/worker/src/main.rs, rendered in the teacher's cobra
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
	"github.com/allvpv/GraphWorker/pkg/log"
	"github.com/allvpv/GraphWorker/pkg/managerclient"
	"github.com/allvpv/GraphWorker/pkg/metrics"
	"github.com/allvpv/GraphWorker/pkg/worker"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "Serve one partition of a distributed-Dijkstra graph fleet",
	RunE:  run,
}

func init() {
	rootCmd.Flags().String("manager-addr", "127.0.0.1:7000", "Manager gRPC address")
	rootCmd.Flags().String("listen-addr", "127.0.0.1:0", "Address this worker listens on for the executer and its peers")
	rootCmd.Flags().String("metrics-addr", "127.0.0.1:9091", "Address for the /metrics and /healthz HTTP endpoints")
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
	logger := log.WithComponent("worker").With().Str("instance_id", instanceID).Logger()
	logger.Info().Str("manager_addr", managerAddr).Msg("connecting to manager")

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, proto.DialOptions()...)
	managerConn, err := grpc.Dial(managerAddr, dialOpts...)
	if err != nil {
		return fmt.Errorf("connecting to manager: %w", err)
	}
	defer managerConn.Close()

	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", listenAddr, err)
	}
	logger.Info().Str("addr", lis.Addr().String()).Msg("listening")

	loader := managerclient.NewLoader(proto.NewManagerServiceClient(managerConn), logger)

	ctx := context.Background()
	workerID, err := loader.Register(ctx, lis.Addr().String())
	if err != nil {
		return fmt.Errorf("registering with manager: %w", err)
	}
	logger = log.WithWorkerID(uint32(workerID)).With().Str("component", "worker").Str("instance_id", instanceID).Logger()
	logger.Info().Msg("assigned worker id")

	g, m, err := loader.ReceiveGraph(ctx, workerID)
	if err != nil {
		return fmt.Errorf("receiving graph partition: %w", err)
	}
	logger.Info().Int("node_count", g.Len()).Msg("graph partition loaded")

	service := worker.NewService(g, m, logger)

	grpcServer := grpc.NewServer(proto.ServerOptions()...)
	proto.RegisterWorkerServiceServer(grpcServer, service)

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
